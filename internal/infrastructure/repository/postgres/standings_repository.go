package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golestat/prediction-league/internal/domain/standings"
	qb "github.com/golestat/prediction-league/internal/platform/querybuilder"
)

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) ListWeekScores(ctx context.Context, seasonID string, week int) ([]standings.WeeklyScore, error) {
	query, args, err := qb.Select("*").From("weekly_scores").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("total_points DESC", "display_name", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list week scores query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list week scores: %w", err)
	}

	out := make([]standings.WeeklyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingsRepository) ListWeeklyScoresBySeason(ctx context.Context, seasonID string) ([]standings.WeeklyScore, error) {
	query, args, err := qb.Select("*").From("weekly_scores").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "total_points DESC", "display_name", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly scores by season query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly scores by season: %w", err)
	}

	out := make([]standings.WeeklyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingsRepository) ListSeasonScores(ctx context.Context, seasonID string) ([]standings.SeasonScore, error) {
	query, args, err := qb.Select("*").From("season_scores").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("rank", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season scores query: %w", err)
	}

	var rows []seasonScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season scores: %w", err)
	}

	out := make([]standings.SeasonScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceWeekScores soft-deletes the current row set for the (season, week)
// key and upserts the recomputed rows in one transaction.
func (r *StandingsRepository) ReplaceWeekScores(ctx context.Context, seasonID string, week int, rows []standings.WeeklyScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace week scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("weekly_scores").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear week scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear week scores: %w", err)
	}

	for _, item := range rows {
		insertModel := weeklyScoreInsertModel{
			SeasonID:              seasonID,
			Week:                  week,
			UserID:                item.UserID,
			DisplayName:           item.DisplayName,
			TotalPoints:           item.TotalPoints,
			CorrectScores:         item.CorrectScores,
			CorrectResults:        item.CorrectResults,
			SpecialQuestionPoints: item.SpecialQuestionPoints,
			CalculatedAt:          timeToUnix(item.CalculatedAt),
		}
		query, args, err := qb.InsertModel("weekly_scores", insertModel, `ON CONFLICT (season_public_id, week, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    total_points = EXCLUDED.total_points,
    correct_scores = EXCLUDED.correct_scores,
    correct_results = EXCLUDED.correct_results,
    special_question_points = EXCLUDED.special_question_points,
    calculated_at = EXCLUDED.calculated_at,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert week score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert week score user=%s: %w", item.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace week scores tx: %w", err)
	}
	return nil
}

// ReplaceSeasonScores soft-deletes the season's row set and upserts the
// recomputed, ranked rows in one transaction.
func (r *StandingsRepository) ReplaceSeasonScores(ctx context.Context, seasonID string, rows []standings.SeasonScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace season scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("season_scores").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear season scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear season scores: %w", err)
	}

	for _, item := range rows {
		insertModel := seasonScoreInsertModel{
			SeasonID:              seasonID,
			UserID:                item.UserID,
			DisplayName:           item.DisplayName,
			TotalPoints:           item.TotalPoints,
			CorrectScores:         item.CorrectScores,
			CorrectResults:        item.CorrectResults,
			SpecialQuestionPoints: item.SpecialQuestionPoints,
			Rank:                  item.Rank,
			CalculatedAt:          timeToUnix(item.CalculatedAt),
		}
		query, args, err := qb.InsertModel("season_scores", insertModel, `ON CONFLICT (season_public_id, user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    total_points = EXCLUDED.total_points,
    correct_scores = EXCLUDED.correct_scores,
    correct_results = EXCLUDED.correct_results,
    special_question_points = EXCLUDED.special_question_points,
    rank = EXCLUDED.rank,
    calculated_at = EXCLUDED.calculated_at,
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert season score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert season score user=%s: %w", item.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace season scores tx: %w", err)
	}
	return nil
}
