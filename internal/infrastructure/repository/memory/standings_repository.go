package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/golestat/prediction-league/internal/domain/standings"
)

type StandingsRepository struct {
	mu     sync.RWMutex
	weekly map[string][]standings.WeeklyScore
	season map[string][]standings.SeasonScore
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{
		weekly: make(map[string][]standings.WeeklyScore),
		season: make(map[string][]standings.SeasonScore),
	}
}

func weeklyKey(seasonID string, week int) string {
	return seasonID + ":" + strconv.Itoa(week)
}

func (r *StandingsRepository) ListWeekScores(_ context.Context, seasonID string, week int) ([]standings.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.weekly[weeklyKey(seasonID, week)]
	out := make([]standings.WeeklyScore, len(rows))
	copy(out, rows)
	return out, nil
}

func (r *StandingsRepository) ListWeeklyScoresBySeason(_ context.Context, seasonID string) ([]standings.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.WeeklyScore, 0)
	for _, rows := range r.weekly {
		for _, row := range rows {
			if row.SeasonID == seasonID {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (r *StandingsRepository) ListSeasonScores(_ context.Context, seasonID string) ([]standings.SeasonScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.season[seasonID]
	out := make([]standings.SeasonScore, len(rows))
	copy(out, rows)
	return out, nil
}

func (r *StandingsRepository) ReplaceWeekScores(_ context.Context, seasonID string, week int, rows []standings.WeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := weeklyKey(seasonID, week)
	if len(rows) == 0 {
		delete(r.weekly, key)
		return nil
	}
	stored := make([]standings.WeeklyScore, len(rows))
	copy(stored, rows)
	r.weekly[key] = stored
	return nil
}

func (r *StandingsRepository) ReplaceSeasonScores(_ context.Context, seasonID string, rows []standings.SeasonScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(rows) == 0 {
		delete(r.season, seasonID)
		return nil
	}
	stored := make([]standings.SeasonScore, len(rows))
	copy(stored, rows)
	r.season[seasonID] = stored
	return nil
}
