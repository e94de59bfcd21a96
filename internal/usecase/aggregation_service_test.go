package usecase

import (
	"context"
	"testing"

	"github.com/golestat/prediction-league/internal/domain/standings"
)

func TestAggregationService_AggregateWeek_Breakdown(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if err := env.aggregator.AggregateWeek(ctx, "s1", 1); err != nil {
		t.Fatalf("AggregateWeek error: %v", err)
	}

	rows, err := env.standings.ListWeekScores(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("ListWeekScores error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// alice: exact (3) + correct answer (2); bob: outcome (1); cara: 0.
	if rows[0].UserID != "u1" || rows[0].TotalPoints != 5 || rows[0].CorrectScores != 1 || rows[0].SpecialQuestionPoints != 2 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].UserID != "u2" || rows[1].TotalPoints != 1 || rows[1].CorrectResults != 1 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].UserID != "u3" || rows[2].TotalPoints != 0 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}

func TestAggregationService_AggregateWeek_NoActivityRemovesRows(t *testing.T) {
	t.Parallel()

	fx := twoWeekFixtures()
	env := newTestEnv(fx)
	ctx := context.Background()

	if err := env.aggregator.AggregateWeek(ctx, "s1", 1); err != nil {
		t.Fatalf("AggregateWeek error: %v", err)
	}

	// Drop every prediction and answer from the source data, then
	// re-aggregate into the same standings store: the stored rows must
	// disappear rather than linger.
	fx.predictions = nil
	fx.answers = nil
	fresh := newTestEnv(fx)
	fresh.aggregator.standingsRepo = env.standings

	if err := fresh.aggregator.AggregateWeek(ctx, "s1", 1); err != nil {
		t.Fatalf("re-aggregate error: %v", err)
	}

	rows, err := env.standings.ListWeekScores(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("ListWeekScores error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows after activity removed, got %d", len(rows))
	}
}

func TestAggregationService_AggregateWeek_Idempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	if err := env.aggregator.AggregateWeek(ctx, "s1", 1); err != nil {
		t.Fatalf("first AggregateWeek error: %v", err)
	}
	first, _ := env.standings.ListWeekScores(ctx, "s1", 1)

	if err := env.aggregator.AggregateWeek(ctx, "s1", 1); err != nil {
		t.Fatalf("second AggregateWeek error: %v", err)
	}
	second, _ := env.standings.ListWeekScores(ctx, "s1", 1)

	if len(first) != len(second) {
		t.Fatalf("row count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].UserID != second[i].UserID || first[i].TotalPoints != second[i].TotalPoints {
			t.Fatalf("row %d changed between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAggregationService_AggregateSeason_Conservation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	for _, week := range []int{1, 2} {
		if err := env.aggregator.AggregateWeek(ctx, "s1", week); err != nil {
			t.Fatalf("AggregateWeek %d error: %v", week, err)
		}
	}
	if err := env.aggregator.AggregateSeason(ctx, "s1"); err != nil {
		t.Fatalf("AggregateSeason error: %v", err)
	}

	weekly, _ := env.standings.ListWeeklyScoresBySeason(ctx, "s1")
	seasonRows, _ := env.standings.ListSeasonScores(ctx, "s1")

	weeklySums := make(map[string]int)
	for _, row := range weekly {
		weeklySums[row.UserID] += row.TotalPoints
	}
	if len(seasonRows) != len(weeklySums) {
		t.Fatalf("season row count %d does not match %d users with weekly rows", len(seasonRows), len(weeklySums))
	}
	for _, row := range seasonRows {
		if row.TotalPoints != weeklySums[row.UserID] {
			t.Fatalf("user %s season total %d != weekly sum %d", row.UserID, row.TotalPoints, weeklySums[row.UserID])
		}
	}
}

func TestAggregationService_AggregateSeason_RanksAndTieBreak(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())
	ctx := context.Background()

	for _, week := range []int{1, 2} {
		if err := env.aggregator.AggregateWeek(ctx, "s1", week); err != nil {
			t.Fatalf("AggregateWeek %d error: %v", week, err)
		}
	}
	if err := env.aggregator.AggregateSeason(ctx, "s1"); err != nil {
		t.Fatalf("AggregateSeason error: %v", err)
	}

	rows, _ := env.standings.ListSeasonScores(ctx, "s1")
	if len(rows) != 3 {
		t.Fatalf("expected 3 season rows, got %d", len(rows))
	}

	// alice 5, bob 4, cara 1.
	wantOrder := []struct {
		userID string
		points int
		rank   int
	}{
		{"u1", 5, 1},
		{"u2", 4, 2},
		{"u3", 1, 3},
	}
	for i, want := range wantOrder {
		if rows[i].UserID != want.userID || rows[i].TotalPoints != want.points || rows[i].Rank != want.rank {
			t.Fatalf("row %d: got user=%s points=%d rank=%d, want %+v", i, rows[i].UserID, rows[i].TotalPoints, rows[i].Rank, want)
		}
	}
}

func TestRankSeasonScores_EqualPointsGetDistinctRanks(t *testing.T) {
	t.Parallel()

	rows := []standings.SeasonScore{
		{UserID: "u9", DisplayName: "zoe", TotalPoints: 10},
		{UserID: "u2", DisplayName: "bob", TotalPoints: 10},
		{UserID: "u1", DisplayName: "bob", TotalPoints: 10},
		{UserID: "u5", DisplayName: "eve", TotalPoints: 12},
	}
	rankSeasonScores(rows)

	wantOrder := []struct {
		userID string
		rank   int
	}{
		{"u5", 1},
		{"u1", 2}, // "bob" ties broken by user id
		{"u2", 3},
		{"u9", 4},
	}
	for i, want := range wantOrder {
		if rows[i].UserID != want.userID || rows[i].Rank != want.rank {
			t.Fatalf("row %d: got user=%s rank=%d, want user=%s rank=%d",
				i, rows[i].UserID, rows[i].Rank, want.userID, want.rank)
		}
	}
}
