package postgres

import (
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
)

type predictionTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	MatchID   string     `db:"match_public_id"`
	UserID    string     `db:"user_id"`
	HomeScore int        `db:"home_score"`
	AwayScore int        `db:"away_score"`
	Winner    string     `db:"winner"`
	Points    int        `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (row predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:        row.PublicID,
		MatchID:   row.MatchID,
		UserID:    row.UserID,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		Winner:    match.Outcome(row.Winner),
		Points:    row.Points,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
