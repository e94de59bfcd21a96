package cache

import (
	"context"
	"strconv"

	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/domain/standings"
	basecache "github.com/golestat/prediction-league/internal/platform/cache"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]season.Season)
	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	key := "season:id:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeasonByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeasonByID)
	return cached.value, cached.exists, nil
}

type cachedSeasonByID struct {
	value  season.Season
	exists bool
}

// StandingsRepository caches the ranking reads and drops the affected keys
// whenever a Replace rewrites a row set. Reads dominate writes here: every
// rankings request hits the standings tables, while writes only happen on
// finalization, grading and recalculation.
type StandingsRepository struct {
	next  standings.Repository
	cache *basecache.Store
}

func NewStandingsRepository(next standings.Repository, cache *basecache.Store) *StandingsRepository {
	return &StandingsRepository{next: next, cache: cache}
}

func (r *StandingsRepository) ListWeekScores(ctx context.Context, seasonID string, week int) ([]standings.WeeklyScore, error) {
	key := weekScoresKey(seasonID, week)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListWeekScores(ctx, seasonID, week)
		if err != nil {
			return nil, err
		}
		return append([]standings.WeeklyScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standings.WeeklyScore)
	return append([]standings.WeeklyScore(nil), items...), nil
}

func (r *StandingsRepository) ListWeeklyScoresBySeason(ctx context.Context, seasonID string) ([]standings.WeeklyScore, error) {
	key := "standings:weekly:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListWeeklyScoresBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]standings.WeeklyScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standings.WeeklyScore)
	return append([]standings.WeeklyScore(nil), items...), nil
}

func (r *StandingsRepository) ListSeasonScores(ctx context.Context, seasonID string) ([]standings.SeasonScore, error) {
	key := seasonScoresKey(seasonID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListSeasonScores(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]standings.SeasonScore(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standings.SeasonScore)
	return append([]standings.SeasonScore(nil), items...), nil
}

func (r *StandingsRepository) ReplaceWeekScores(ctx context.Context, seasonID string, week int, rows []standings.WeeklyScore) error {
	if err := r.next.ReplaceWeekScores(ctx, seasonID, week, rows); err != nil {
		return err
	}
	r.cache.Delete(ctx, weekScoresKey(seasonID, week))
	r.cache.Delete(ctx, "standings:weekly:season:"+seasonID)
	return nil
}

func (r *StandingsRepository) ReplaceSeasonScores(ctx context.Context, seasonID string, rows []standings.SeasonScore) error {
	if err := r.next.ReplaceSeasonScores(ctx, seasonID, rows); err != nil {
		return err
	}
	r.cache.Delete(ctx, seasonScoresKey(seasonID))
	return nil
}

func weekScoresKey(seasonID string, week int) string {
	return "standings:week:" + seasonID + ":" + strconv.Itoa(week)
}

func seasonScoresKey(seasonID string) string {
	return "standings:season:" + seasonID
}
