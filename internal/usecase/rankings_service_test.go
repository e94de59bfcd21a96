package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestRankingsService_GetSeasonRankings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.recalc.RecalculateSeason(ctx, "s1"); err != nil {
		t.Fatalf("RecalculateSeason error: %v", err)
	}

	result, err := env.rankings.GetSeasonRankings(ctx, RankingsQuery{SeasonID: "s1"})
	if err != nil {
		t.Fatalf("GetSeasonRankings error: %v", err)
	}
	if result.Total != 3 || len(result.Entries) != 3 {
		t.Fatalf("unexpected result size: total=%d entries=%d", result.Total, len(result.Entries))
	}
	if result.Entries[0].UserID != "u1" || result.Entries[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", result.Entries[0])
	}
}

func TestRankingsService_GetSeasonRankings_SearchKeepsGlobalRank(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.recalc.RecalculateSeason(ctx, "s1"); err != nil {
		t.Fatalf("RecalculateSeason error: %v", err)
	}

	result, err := env.rankings.GetSeasonRankings(ctx, RankingsQuery{SeasonID: "s1", Search: "bob"})
	if err != nil {
		t.Fatalf("GetSeasonRankings error: %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("unexpected filtered size: total=%d entries=%d", result.Total, len(result.Entries))
	}
	if result.Entries[0].UserID != "u2" || result.Entries[0].Rank != 2 {
		t.Fatalf("filtered entry must keep its global rank: %+v", result.Entries[0])
	}
}

func TestRankingsService_GetSeasonRankings_Pagination(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.recalc.RecalculateSeason(ctx, "s1"); err != nil {
		t.Fatalf("RecalculateSeason error: %v", err)
	}

	result, err := env.rankings.GetSeasonRankings(ctx, RankingsQuery{SeasonID: "s1", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("GetSeasonRankings error: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("total must count all rows: got=%d", result.Total)
	}
	if len(result.Entries) != 1 || result.Entries[0].Rank != 3 {
		t.Fatalf("unexpected page: %+v", result.Entries)
	}

	empty, err := env.rankings.GetSeasonRankings(ctx, RankingsQuery{SeasonID: "s1", Offset: 10})
	if err != nil {
		t.Fatalf("GetSeasonRankings error: %v", err)
	}
	if len(empty.Entries) != 0 {
		t.Fatalf("expected empty page past the end, got %d entries", len(empty.Entries))
	}
}

func TestRankingsService_GetWeekRankings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.recalc.RecalculateSeason(ctx, "s1"); err != nil {
		t.Fatalf("RecalculateSeason error: %v", err)
	}

	result, err := env.rankings.GetWeekRankings(ctx, RankingsQuery{SeasonID: "s1", Week: 2})
	if err != nil {
		t.Fatalf("GetWeekRankings error: %v", err)
	}
	if result.Week != 2 || result.Total != 2 {
		t.Fatalf("unexpected result: week=%d total=%d", result.Week, result.Total)
	}
	if result.Entries[0].UserID != "u2" || result.Entries[0].TotalPoints != 3 {
		t.Fatalf("unexpected week leader: %+v", result.Entries[0])
	}
}

func TestRankingsService_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if _, err := env.rankings.GetSeasonRankings(ctx, RankingsQuery{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing season, got %v", err)
	}
	if _, err := env.rankings.GetSeasonRankings(ctx, RankingsQuery{SeasonID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown season, got %v", err)
	}
	if _, err := env.rankings.GetWeekRankings(ctx, RankingsQuery{SeasonID: "s1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing week, got %v", err)
	}
	if _, err := env.rankings.GetWeekRankings(ctx, RankingsQuery{SeasonID: "s1", Week: 1, Limit: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
}
