package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/domain/standings"
)

// RankingsService serves the leaderboard read paths. It only reads the
// denormalized aggregate rows; filtering and pagination happen in memory on
// the already-ranked set so a filtered page keeps the global ranks.
type RankingsService struct {
	seasonRepo    season.Repository
	standingsRepo standings.Repository
}

func NewRankingsService(seasonRepo season.Repository, standingsRepo standings.Repository) *RankingsService {
	return &RankingsService{
		seasonRepo:    seasonRepo,
		standingsRepo: standingsRepo,
	}
}

type RankingsQuery struct {
	SeasonID string
	Week     int
	Search   string
	Limit    int
	Offset   int
}

const (
	defaultRankingsLimit = 50
	maxRankingsLimit     = 200
)

type SeasonRankingsResult struct {
	SeasonID string                  `json:"season_id"`
	Total    int                     `json:"total"`
	Entries  []standings.SeasonScore `json:"entries"`
}

type WeekRankingsResult struct {
	SeasonID string                  `json:"season_id"`
	Week     int                     `json:"week"`
	Total    int                     `json:"total"`
	Entries  []standings.WeeklyScore `json:"entries"`
}

// GetSeasonRankings returns the season leaderboard, optionally filtered by a
// fuzzy display name search and paginated. Ranks are the stored global
// ranks, not positions within the filtered page.
func (s *RankingsService) GetSeasonRankings(ctx context.Context, query RankingsQuery) (SeasonRankingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingsService.GetSeasonRankings")
	defer span.End()

	seasonID, limit, offset, err := normalizeRankingsQuery(query)
	if err != nil {
		return SeasonRankingsResult{}, err
	}
	if err := s.requireSeason(ctx, seasonID); err != nil {
		return SeasonRankingsResult{}, err
	}

	rows, err := s.standingsRepo.ListSeasonScores(ctx, seasonID)
	if err != nil {
		return SeasonRankingsResult{}, fmt.Errorf("list season scores season=%s: %w", seasonID, err)
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if fuzzy.MatchNormalizedFold(search, row.DisplayName) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	result := SeasonRankingsResult{
		SeasonID: seasonID,
		Total:    len(rows),
	}
	result.Entries = pageRows(rows, limit, offset)
	return result, nil
}

// GetWeekRankings returns one week's leaderboard. Weekly rows carry no
// stored rank; they are served in the stored order (points descending with
// the deterministic tie-break).
func (s *RankingsService) GetWeekRankings(ctx context.Context, query RankingsQuery) (WeekRankingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingsService.GetWeekRankings")
	defer span.End()

	seasonID, limit, offset, err := normalizeRankingsQuery(query)
	if err != nil {
		return WeekRankingsResult{}, err
	}
	if query.Week <= 0 {
		return WeekRankingsResult{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}
	if err := s.requireSeason(ctx, seasonID); err != nil {
		return WeekRankingsResult{}, err
	}

	rows, err := s.standingsRepo.ListWeekScores(ctx, seasonID, query.Week)
	if err != nil {
		return WeekRankingsResult{}, fmt.Errorf("list week scores season=%s week=%d: %w", seasonID, query.Week, err)
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if fuzzy.MatchNormalizedFold(search, row.DisplayName) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	result := WeekRankingsResult{
		SeasonID: seasonID,
		Week:     query.Week,
		Total:    len(rows),
	}
	result.Entries = pageRows(rows, limit, offset)
	return result, nil
}

// ListSeasons returns the known seasons so clients can discover valid
// ranking scopes.
func (s *RankingsService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingsService.ListSeasons")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

func (s *RankingsService) requireSeason(ctx context.Context, seasonID string) error {
	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("get season for rankings: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return nil
}

func normalizeRankingsQuery(query RankingsQuery) (string, int, int, error) {
	seasonID := strings.TrimSpace(query.SeasonID)
	if seasonID == "" {
		return "", 0, 0, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if query.Limit < 0 || query.Offset < 0 {
		return "", 0, 0, fmt.Errorf("%w: limit and offset cannot be negative", ErrInvalidInput)
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultRankingsLimit
	}
	if limit > maxRankingsLimit {
		limit = maxRankingsLimit
	}
	return seasonID, limit, query.Offset, nil
}

func pageRows[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
