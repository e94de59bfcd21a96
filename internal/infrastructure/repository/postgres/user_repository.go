package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/golestat/prediction-league/internal/domain/user"
	qb "github.com/golestat/prediction-league/internal/platform/querybuilder"
)

type userTableModel struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	DisplayName string     `db:"display_name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListByIDs(ctx context.Context, userIDs []string) ([]user.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("users").
		Where(
			qb.In("user_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.User{
			ID:          row.UserID,
			DisplayName: row.DisplayName,
		})
	}
	return out, nil
}
