package postgres

import (
	"database/sql"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
)

type matchTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	SeasonID   string        `db:"season_public_id"`
	Week       int           `db:"week"`
	HomeTeam   string        `db:"home_team"`
	AwayTeam   string        `db:"away_team"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
	KickoffAt  int64         `db:"kickoff_at"`
	FinishedAt sql.NullInt64 `db:"finished_at"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}

func (row matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         row.PublicID,
		SeasonID:   row.SeasonID,
		Week:       row.Week,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		HomeScore:  nullInt64ToIntPtr(row.HomeScore),
		AwayScore:  nullInt64ToIntPtr(row.AwayScore),
		Status:     match.NormalizeStatus(row.Status),
		KickoffAt:  unixToTime(row.KickoffAt),
		FinishedAt: nullUnixToTimePtr(row.FinishedAt),
	}
}
