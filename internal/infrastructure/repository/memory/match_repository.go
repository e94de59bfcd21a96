package memory

import (
	"context"
	"sync"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
	// bySeason keeps insertion order per season for deterministic listings.
	bySeason map[string][]string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	bySeason := make(map[string][]string)
	for _, m := range matches {
		items[m.ID] = m
		bySeason[m.SeasonID] = append(bySeason[m.SeasonID], m.ID)
	}

	return &MatchRepository{
		items:    items,
		bySeason: bySeason,
	}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return m, true, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySeason[seasonID]
	out := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MatchRepository) ListBySeasonWeek(_ context.Context, seasonID string, week int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySeason[seasonID]
	out := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		if m := r.items[id]; m.Week == week {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MatchRepository) SetResult(_ context.Context, matchID string, homeScore, awayScore int, finishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return nil
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.Status = match.StatusFinished
	m.FinishedAt = &finishedAt
	r.items[matchID] = m
	return nil
}
