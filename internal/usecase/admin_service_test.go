package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golestat/prediction-league/internal/domain/match"
)

func TestAdminService_SetMatchResult_Finalize(t *testing.T) {
	t.Parallel()

	fx := twoWeekFixtures()
	fx.matches[1].Status = match.StatusLive
	fx.matches[1].HomeScore = nil
	fx.matches[1].AwayScore = nil
	fx.matches[1].FinishedAt = nil
	env := newTestEnv(fx)
	ctx := context.Background()

	result, err := env.admin.SetMatchResult(ctx, SetMatchResultInput{
		MatchID:   "m2",
		HomeScore: 0,
		AwayScore: 0,
	})
	if err != nil {
		t.Fatalf("SetMatchResult error: %v", err)
	}
	if result.SeasonID != "s1" || result.Week != 2 {
		t.Fatalf("unexpected attribution: %+v", result)
	}

	m, _, _ := env.matches.GetByID(ctx, "m2")
	if !m.IsScoreable() {
		t.Fatalf("match not finalized: %+v", m)
	}

	rows, _ := env.standings.ListWeekScores(ctx, "s1", 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 weekly rows after finalize, got %d", len(rows))
	}
}

func TestAdminService_SetMatchResult_CorrectionReflowsAggregates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.recalc.RecalculateSeason(ctx, "s1"); err != nil {
		t.Fatalf("RecalculateSeason error: %v", err)
	}

	// Correct m1 from 2-1 to 1-1: cara's 1-1 becomes the exact prediction.
	if _, err := env.admin.SetMatchResult(ctx, SetMatchResultInput{
		MatchID:   "m1",
		HomeScore: 1,
		AwayScore: 1,
	}); err != nil {
		t.Fatalf("correction error: %v", err)
	}

	rows, _ := env.standings.ListWeekScores(ctx, "s1", 1)
	byUser := make(map[string]int)
	for _, row := range rows {
		byUser[row.UserID] = row.TotalPoints
	}
	// alice keeps only the question points, bob drops to zero, cara gets the
	// exact score award.
	if byUser["u1"] != 2 || byUser["u2"] != 0 || byUser["u3"] != 3 {
		t.Fatalf("correction not reflected: %+v", byUser)
	}
}

func TestAdminService_SetMatchResult_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.admin.SetMatchResult(ctx, SetMatchResultInput{MatchID: "", HomeScore: 1, AwayScore: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
	if _, err := env.admin.SetMatchResult(ctx, SetMatchResultInput{MatchID: "m1", HomeScore: -1, AwayScore: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative score, got %v", err)
	}
	if _, err := env.admin.SetMatchResult(ctx, SetMatchResultInput{MatchID: "missing", HomeScore: 1, AwayScore: 0}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdminService_SetMatchResult_RejectsCancelledMatch(t *testing.T) {
	t.Parallel()

	fx := twoWeekFixtures()
	fx.matches[1].Status = match.StatusCancelled
	env := newTestEnv(fx)

	_, err := env.admin.SetMatchResult(context.Background(), SetMatchResultInput{
		MatchID:   "m2",
		HomeScore: 1,
		AwayScore: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cancelled match, got %v", err)
	}
}

func TestAdminService_SetCorrectAnswer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	result, err := env.admin.SetCorrectAnswer(ctx, SetCorrectAnswerInput{
		QuestionID:    "q2",
		CorrectAnswer: "Icardi",
	})
	if err != nil {
		t.Fatalf("SetCorrectAnswer error: %v", err)
	}
	if result.SeasonID != "s1" || result.Week != 2 || result.PointsDistributed != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}

	a3, _, _ := env.questions.GetAnswerByID(ctx, "a3")
	if a3.Points != 3 {
		t.Fatalf("answer points not written: got=%d want=3", a3.Points)
	}
}

func TestAdminService_SetCorrectAnswer_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.admin.SetCorrectAnswer(ctx, SetCorrectAnswerInput{QuestionID: "q2", CorrectAnswer: ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty answer, got %v", err)
	}
	if _, err := env.admin.SetCorrectAnswer(ctx, SetCorrectAnswerInput{QuestionID: "missing", CorrectAnswer: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// "Haaland" is not one of q2's options.
	if _, err := env.admin.SetCorrectAnswer(ctx, SetCorrectAnswerInput{QuestionID: "q2", CorrectAnswer: "Haaland"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown option, got %v", err)
	}
	// q1 is yes/no.
	if _, err := env.admin.SetCorrectAnswer(ctx, SetCorrectAnswerInput{QuestionID: "q1", CorrectAnswer: "MAYBE"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non yes/no value, got %v", err)
	}
}
