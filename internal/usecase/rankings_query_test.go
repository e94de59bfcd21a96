package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRankingsQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      RankingsQuery
		wantSeason string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{
			name:       "applies default limit",
			query:      RankingsQuery{SeasonID: "s1"},
			wantSeason: "s1",
			wantLimit:  defaultRankingsLimit,
		},
		{
			name:       "trims season id",
			query:      RankingsQuery{SeasonID: "  s1  ", Limit: 10, Offset: 5},
			wantSeason: "s1",
			wantLimit:  10,
			wantOffset: 5,
		},
		{
			name:       "caps limit at the maximum",
			query:      RankingsQuery{SeasonID: "s1", Limit: 10_000},
			wantSeason: "s1",
			wantLimit:  maxRankingsLimit,
		},
		{
			name:    "rejects blank season id",
			query:   RankingsQuery{SeasonID: "   "},
			wantErr: true,
		},
		{
			name:    "rejects negative offset",
			query:   RankingsQuery{SeasonID: "s1", Offset: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			seasonID, limit, offset, err := normalizeRankingsQuery(tt.query)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeason, seasonID)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestPageRows(t *testing.T) {
	t.Parallel()

	rows := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, pageRows(rows, 2, 0))
	assert.Equal(t, []int{4, 5}, pageRows(rows, 10, 3))
	assert.Nil(t, pageRows(rows, 2, 5))
	assert.Nil(t, pageRows([]int(nil), 2, 0))
}

func TestRankingsService_ListSeasons(t *testing.T) {
	t.Parallel()

	env := newTestEnv(twoWeekFixtures())

	seasons, err := env.rankings.ListSeasons(context.Background())
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, "s1", seasons[0].ID)
}
