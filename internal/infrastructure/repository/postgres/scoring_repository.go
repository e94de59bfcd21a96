package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golestat/prediction-league/internal/domain/scoring"
	qb "github.com/golestat/prediction-league/internal/platform/querybuilder"
)

// ScoringRepository applies computed point batches. Each batch commits in a
// single transaction so a rescore never leaves a match half-updated.
type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) ApplyMatchPoints(ctx context.Context, batch scoring.MatchPointsBatch) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply match points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	calculatedAt := timeToUnix(batch.CalculatedAt)
	for _, row := range batch.Predictions {
		query, args, err := qb.Update("predictions").
			Set("points", row.Points).
			Set("scored_at", calculatedAt).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", row.PredictionID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update prediction points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update prediction points prediction=%s: %w", row.PredictionID, err)
		}
	}

	if err := applyAnswerPoints(ctx, tx, batch.Answers, calculatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply match points tx: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ApplyQuestionPoints(ctx context.Context, batch scoring.QuestionPointsBatch) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply question points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := applyAnswerPoints(ctx, tx, batch.Answers, timeToUnix(batch.CalculatedAt)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply question points tx: %w", err)
	}
	return nil
}

func applyAnswerPoints(ctx context.Context, tx *sqlx.Tx, rows []scoring.AnswerPoints, calculatedAt int64) error {
	for _, row := range rows {
		query, args, err := qb.Update("question_answers").
			Set("points", row.Points).
			Set("scored_at", calculatedAt).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", row.AnswerID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update answer points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update answer points answer=%s: %w", row.AnswerID, err)
		}
	}
	return nil
}
