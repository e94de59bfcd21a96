package jobqueue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golestat/prediction-league/internal/platform/logging"
	"github.com/golestat/prediction-league/internal/platform/resilience"
)

func TestEnqueue_SetsUpstashHeaders(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://prediction-league.fly.dev",
		Retries:          2,
		InternalJobToken: "internal-token",
		Timeout:          2 * time.Second,
		CircuitBreaker:   resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/result-sync", map[string]any{"dispatch_id": "d-1"}, 10*time.Minute, "result-sync-all-1")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if captured == nil {
		t.Fatalf("expected publish request")
	}
	if !strings.HasSuffix(captured.URL.Path, "/v2/publish/https://prediction-league.fly.dev/v1/internal/jobs/result-sync") {
		t.Fatalf("unexpected publish path: %s", captured.URL.Path)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer qstash-token" {
		t.Fatalf("unexpected authorization header: %q", got)
	}
	if got := captured.Header.Get("Upstash-Retries"); got != "2" {
		t.Fatalf("unexpected retries header: %q", got)
	}
	if got := captured.Header.Get("Upstash-Delay"); got != "600s" {
		t.Fatalf("unexpected delay header: %q", got)
	}
	if got := captured.Header.Get("Upstash-Deduplication-Id"); got != "result-sync-all-1" {
		t.Fatalf("unexpected deduplication header: %q", got)
	}
	if got := captured.Header.Get("Upstash-Forward-X-Internal-Job-Token"); got != "internal-token" {
		t.Fatalf("unexpected forwarded token header: %q", got)
	}
}

func TestEnqueue_RequiresJobPath(t *testing.T) {
	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "https://qstash.upstash.io",
		Token:         "qstash-token",
		TargetBaseURL: "https://prediction-league.fly.dev",
	}, logging.NewNop())

	if err := publisher.Enqueue(context.Background(), "  ", nil, 0, ""); err == nil {
		t.Fatalf("expected error for empty job path")
	}
}

func TestEnqueue_RejectsBadTargetBaseURL(t *testing.T) {
	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "https://qstash.upstash.io",
		Token:         "qstash-token",
		TargetBaseURL: "ftp://example.com",
	}, logging.NewNop())

	if err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/result-sync", nil, 0, ""); err == nil {
		t.Fatalf("expected error for unsupported target scheme")
	}
}

func TestNormalizeDelay(t *testing.T) {
	if got := normalizeDelay(0); got != "0s" {
		t.Fatalf("unexpected zero delay: %q", got)
	}
	if got := normalizeDelay(90 * time.Second); got != "90s" {
		t.Fatalf("unexpected delay: %q", got)
	}
}
