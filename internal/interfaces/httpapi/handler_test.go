package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/golestat/prediction-league/internal/domain/scoring"
	"github.com/golestat/prediction-league/internal/infrastructure/repository/memory"
	"github.com/golestat/prediction-league/internal/platform/logging"
	"github.com/golestat/prediction-league/internal/usecase"
)

const testJobToken = "test-job-token"

// newTestRouter wires the full stack over the seeded in-memory repositories,
// then rebuilds every aggregate so the leaderboard routes have data.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matches := memory.NewMatchRepository(memory.SeedMatches())
	predictions := memory.NewPredictionRepository(memory.SeedPredictions())
	questions := memory.NewQuestionRepository(memory.SeedQuestions(), memory.SeedAnswers())
	users := memory.NewUserRepository(memory.SeedUsers())
	seasons := memory.NewSeasonRepository(memory.SeedSeasons())
	standings := memory.NewStandingsRepository()
	scoringRepo := memory.NewScoringRepository(predictions, questions)

	rules := scoring.DefaultRules()
	logger := logging.NewNop()

	scorer := usecase.NewMatchScoringService(matches, predictions, questions, scoringRepo, rules)
	aggregator := usecase.NewAggregationService(matches, predictions, questions, users, standings, rules)
	recalc := usecase.NewRecalculationService(seasons, matches, questions, scorer, aggregator, logger)
	admin := usecase.NewAdminService(matches, questions, recalc, logger)
	rankings := usecase.NewRankingsService(seasons, standings)

	if _, err := recalc.RecalculateAll(context.Background()); err != nil {
		t.Fatalf("seed recalculation failed: %v", err)
	}

	handler := NewHandler(rankings, admin, recalc, nil, logger)
	return NewRouter(handler, logger, false, []string{"*"}, testJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_SeasonRankings(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/seasons/"+memory.SeasonIDSuperLig+"/rankings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	entries, ok := data["entries"].([]any)
	if !ok || len(entries) == 0 {
		t.Fatalf("expected ranked entries, got %v", data["entries"])
	}

	first, _ := entries[0].(map[string]any)
	if got, _ := first["rank"].(float64); got != 1 {
		t.Fatalf("expected leader rank 1, got %v", first["rank"])
	}
}

func TestRouter_WeekRankings_UnknownSeason(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/seasons/no-such-season/rankings/weeks/1", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_InternalRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/recalculations", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/internal/recalculations", nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SetMatchResult(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"homeScore":3,"awayScore":1}`
	req := httptest.NewRequest(http.MethodPut,
		"/v1/internal/matches/mt-001/result", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["seasonId"].(string); got != memory.SeasonIDSuperLig {
		t.Fatalf("expected season %s, got %v", memory.SeasonIDSuperLig, data["seasonId"])
	}
}

func TestRouter_SetMatchResult_MissingScore(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut,
		"/v1/internal/matches/mt-001/result", strings.NewReader(`{"homeScore":3}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SyncResults_FeedNotConfigured(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost,
		"/v1/internal/sync/results/seasons/"+memory.SeasonIDSuperLig, nil)
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without a configured feed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SetCorrectAnswer_UnknownQuestion(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut,
		"/v1/internal/questions/no-such-question/answer", strings.NewReader(`{"correctAnswer":"YES"}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
