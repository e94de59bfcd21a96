package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golestat/prediction-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo dataset into an empty database. It is a
// no-op once any season exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSeasons() {
		if err := seedExec(ctx, tx, `
INSERT INTO seasons (public_id, name, current_week, is_active)
VALUES (:public_id, :name, :current_week, :is_active)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    s.ID,
			"name":         s.Name,
			"current_week": s.CurrentWeek,
			"is_active":    s.IsActive,
		}); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, u := range memory.SeedUsers() {
		if err := seedExec(ctx, tx, `
INSERT INTO users (user_id, display_name)
VALUES (:user_id, :display_name)
ON CONFLICT (user_id) DO NOTHING`, map[string]any{
			"user_id":      u.ID,
			"display_name": u.DisplayName,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, m := range memory.SeedMatches() {
		if err := seedExec(ctx, tx, `
INSERT INTO matches (public_id, season_public_id, week, home_team, away_team, home_score, away_score, status, kickoff_at, finished_at)
VALUES (:public_id, :season_public_id, :week, :home_team, :away_team, :home_score, :away_score, :status, :kickoff_at, :finished_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        m.ID,
			"season_public_id": m.SeasonID,
			"week":             m.Week,
			"home_team":        m.HomeTeam,
			"away_team":        m.AwayTeam,
			"home_score":       intPtrToInt64Ptr(m.HomeScore),
			"away_score":       intPtrToInt64Ptr(m.AwayScore),
			"status":           m.Status,
			"kickoff_at":       timeToUnix(m.KickoffAt),
			"finished_at":      timePtrToUnixPtr(m.FinishedAt),
		}); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPredictions() {
		if err := seedExec(ctx, tx, `
INSERT INTO predictions (public_id, match_public_id, user_id, home_score, away_score, winner, points)
VALUES (:public_id, :match_public_id, :user_id, :home_score, :away_score, :winner, :points)
ON CONFLICT (match_public_id, user_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":       p.ID,
			"match_public_id": p.MatchID,
			"user_id":         p.UserID,
			"home_score":      p.HomeScore,
			"away_score":      p.AwayScore,
			"winner":          string(p.PredictedOutcome()),
			"points":          p.Points,
		}); err != nil {
			return fmt.Errorf("seed prediction %s: %w", p.ID, err)
		}
	}

	for _, q := range memory.SeedQuestions() {
		if err := seedExec(ctx, tx, `
INSERT INTO questions (public_id, season_public_id, match_public_id, week, question_type, question_text, options, points, correct_answer, deadline)
VALUES (:public_id, :season_public_id, :match_public_id, :week, :question_type, :question_text, :options, :points, :correct_answer, :deadline)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        q.ID,
			"season_public_id": q.SeasonID,
			"match_public_id":  q.MatchID,
			"week":             q.Week,
			"question_type":    q.Type,
			"question_text":    q.Text,
			"options":          pqStringArray(q.Options),
			"points":           q.Points,
			"correct_answer":   q.CorrectAnswer,
			"deadline":         timePtrToUnixPtr(q.Deadline),
		}); err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}

	for _, a := range memory.SeedAnswers() {
		if err := seedExec(ctx, tx, `
INSERT INTO question_answers (public_id, question_public_id, user_id, answer, points)
VALUES (:public_id, :question_public_id, :user_id, :answer, :points)
ON CONFLICT (question_public_id, user_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":          a.ID,
			"question_public_id": a.QuestionID,
			"user_id":            a.UserID,
			"answer":             a.Answer,
			"points":             a.Points,
		}); err != nil {
			return fmt.Errorf("seed answer %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func seedExec(ctx context.Context, tx *sqlx.Tx, query string, args map[string]any) error {
	sqlQuery, bound, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind seed query: %w", err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	if _, err := tx.ExecContext(ctx, sqlQuery, bound...); err != nil {
		return err
	}
	return nil
}
