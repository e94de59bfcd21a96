package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golestat/prediction-league/internal/domain/prediction"
	qb "github.com/golestat/prediction-league/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by match query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by match: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PredictionRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]prediction.Prediction, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.In("match_public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by matches query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions by matches: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
