package resultfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golestat/prediction-league/internal/platform/logging"
	"github.com/golestat/prediction-league/internal/platform/resilience"
)

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Token:          "secret-token",
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestFetchFinishedResults_FiltersUnfinishedRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/results/seasons/100") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_token") != "secret-token" {
			t.Fatalf("expected api token query param")
		}
		_, _ = w.Write([]byte(`{"data":[
			{"week":1,"home_team":"Galatasaray","away_team":"Fenerbahçe","home_score":2,"away_score":1,"status":"FT"},
			{"week":1,"home_team":"Beşiktaş","away_team":"Trabzonspor","status":"LIVE"},
			{"week":2,"home_team":"","away_team":"Trabzonspor","home_score":1,"away_score":0,"status":"FT"},
			{"week":0,"home_team":"A","away_team":"B","home_score":1,"away_score":0,"status":"FT"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	results, err := client.FetchFinishedResults(context.Background(), 100)
	if err != nil {
		t.Fatalf("fetch results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 finished result, got %d", len(results))
	}
	if results[0].HomeTeam != "Galatasaray" || results[0].HomeScore != 2 || results[0].AwayScore != 1 {
		t.Fatalf("unexpected result: %+v", results[0])
	}
}

func TestFetchFinishedResults_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	if _, err := client.FetchFinishedResults(context.Background(), 100); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestFetchFinishedResults_DoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	if _, err := client.FetchFinishedResults(context.Background(), 100); err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call without retries, got %d", calls.Load())
	}
}

func TestFetchFinishedResults_RejectsInvalidSeasonID(t *testing.T) {
	client := newTestClient("http://localhost:0", 0)
	if _, err := client.FetchFinishedResults(context.Background(), 0); err == nil {
		t.Fatalf("expected error for non-positive season id")
	}
}
