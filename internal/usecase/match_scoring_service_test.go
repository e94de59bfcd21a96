package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
)

func TestMatchScoringService_ScoreMatch_WritesPoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	batch, err := env.scorer.ScoreMatch(ctx, "m1")
	if err != nil {
		t.Fatalf("ScoreMatch error: %v", err)
	}
	if len(batch.Predictions) != 3 {
		t.Fatalf("expected 3 scored predictions, got %d", len(batch.Predictions))
	}
	if len(batch.Answers) != 2 {
		t.Fatalf("expected 2 scored answers, got %d", len(batch.Answers))
	}
	// 3 (exact) + 1 (outcome) + 0 + 2 (correct answer) + 0
	if batch.TotalPoints() != 6 {
		t.Fatalf("unexpected total points: got=%d want=6", batch.TotalPoints())
	}

	p1, _, _ := env.predictions.GetByID(ctx, "p1")
	if p1.Points != 3 {
		t.Fatalf("exact score prediction points: got=%d want=3", p1.Points)
	}
	p2, _, _ := env.predictions.GetByID(ctx, "p2")
	if p2.Points != 1 {
		t.Fatalf("outcome prediction points: got=%d want=1", p2.Points)
	}
	p3, _, _ := env.predictions.GetByID(ctx, "p3")
	if p3.Points != 0 {
		t.Fatalf("wrong prediction points: got=%d want=0", p3.Points)
	}
	a1, _, _ := env.questions.GetAnswerByID(ctx, "a1")
	if a1.Points != 2 {
		t.Fatalf("correct answer points: got=%d want=2", a1.Points)
	}
	a2, _, _ := env.questions.GetAnswerByID(ctx, "a2")
	if a2.Points != 0 {
		t.Fatalf("wrong answer points: got=%d want=0", a2.Points)
	}
}

func TestMatchScoringService_ScoreMatch_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())

	_, err := env.scorer.ScoreMatch(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchScoringService_ScoreMatch_NotReady(t *testing.T) {
	t.Parallel()

	fx := twoWeekFixtures()
	fx.matches = append(fx.matches, match.Match{
		ID: "m3", SeasonID: "s1", Week: 3,
		HomeTeam: "Home C", AwayTeam: "Away C",
		Status:    match.StatusScheduled,
		KickoffAt: time.Date(2025, 8, 24, 19, 0, 0, 0, time.UTC),
	})
	env := newTestEnv(fx)

	_, err := env.scorer.ScoreMatch(context.Background(), "m3")
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestMatchScoringService_ScoreMatch_RescoreAfterCorrection(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.scorer.ScoreMatch(ctx, "m1"); err != nil {
		t.Fatalf("first ScoreMatch error: %v", err)
	}

	// Correct the result from 2-1 to 1-1: cara's 1-1 becomes exact, alice's
	// 2-1 drops to zero, bob's 1-0 drops to zero.
	if err := env.matches.SetResult(ctx, "m1", 1, 1, time.Now().UTC()); err != nil {
		t.Fatalf("SetResult error: %v", err)
	}
	if _, err := env.scorer.ScoreMatch(ctx, "m1"); err != nil {
		t.Fatalf("rescore error: %v", err)
	}

	p1, _, _ := env.predictions.GetByID(ctx, "p1")
	p3, _, _ := env.predictions.GetByID(ctx, "p3")
	if p1.Points != 0 || p3.Points != 3 {
		t.Fatalf("correction not applied: p1=%d want=0, p3=%d want=3", p1.Points, p3.Points)
	}
}

func TestMatchScoringService_ScoreMatch_SkipsUngradedQuestions(t *testing.T) {
	t.Parallel()

	fx := twoWeekFixtures()
	// Remove q1's correct answer so the match question is ungraded, but give
	// its answer a previously written point value that must survive.
	fx.questions[0].CorrectAnswer = nil
	fx.answers[0].Points = 2
	env := newTestEnv(fx)
	ctx := context.Background()

	batch, err := env.scorer.ScoreMatch(ctx, "m1")
	if err != nil {
		t.Fatalf("ScoreMatch error: %v", err)
	}
	if len(batch.Answers) != 0 {
		t.Fatalf("expected no scored answers for ungraded question, got %d", len(batch.Answers))
	}

	a1, _, _ := env.questions.GetAnswerByID(ctx, "a1")
	if a1.Points != 2 {
		t.Fatalf("ungraded question answer points changed: got=%d want=2", a1.Points)
	}
}

func TestMatchScoringService_ScoreQuestion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, _, err := env.scorer.ScoreQuestion(ctx, "q2"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady for ungraded question, got %v", err)
	}

	if err := env.questions.SetCorrectAnswer(ctx, "q2", "Icardi"); err != nil {
		t.Fatalf("SetCorrectAnswer error: %v", err)
	}

	batch, q, err := env.scorer.ScoreQuestion(ctx, "q2")
	if err != nil {
		t.Fatalf("ScoreQuestion error: %v", err)
	}
	if q.SeasonID != "s1" || q.Week != 2 {
		t.Fatalf("unexpected question attribution: season=%s week=%d", q.SeasonID, q.Week)
	}
	if batch.TotalPoints() != 3 {
		t.Fatalf("unexpected question points: got=%d want=3", batch.TotalPoints())
	}

	a3, _, _ := env.questions.GetAnswerByID(ctx, "a3")
	if a3.Points != 3 {
		t.Fatalf("answer points not written: got=%d want=3", a3.Points)
	}
}
