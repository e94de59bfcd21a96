package match

import (
	"context"
	"time"
)

// Repository exposes match read operations plus the result correction path.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	ListBySeasonWeek(ctx context.Context, seasonID string, week int) ([]Match, error)
	// SetResult finalizes a match or corrects a previously finalized result.
	// Callers are expected to trigger rescoring afterwards.
	SetResult(ctx context.Context, matchID string, homeScore, awayScore int, finishedAt time.Time) error
}
