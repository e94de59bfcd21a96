package standings

import "context"

// Repository persists the denormalized aggregates. The Replace operations
// swap the full row set for their key in one transaction, which is what
// makes recomputation idempotent and removes stale rows after corrections.
type Repository interface {
	ListWeekScores(ctx context.Context, seasonID string, week int) ([]WeeklyScore, error)
	ListWeeklyScoresBySeason(ctx context.Context, seasonID string) ([]WeeklyScore, error)
	ListSeasonScores(ctx context.Context, seasonID string) ([]SeasonScore, error)
	ReplaceWeekScores(ctx context.Context, seasonID string, week int, rows []WeeklyScore) error
	ReplaceSeasonScores(ctx context.Context, seasonID string, rows []SeasonScore) error
}
