package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/domain/standings"
	"github.com/golestat/prediction-league/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.rankingsService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeasonRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonRankings")
	defer span.End()

	query, err := rankingsQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rankingsService.GetSeasonRankings(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "get season rankings failed", "season_id", query.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]seasonRankingDTO, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, seasonScoreToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, seasonRankingsDTO{
		SeasonID: result.SeasonID,
		Total:    result.Total,
		Entries:  entries,
	})
}

func (h *Handler) GetWeekRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekRankings")
	defer span.End()

	query, err := rankingsQueryFromRequest(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput))
		return
	}
	query.Week = week

	result, err := h.rankingsService.GetWeekRankings(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "get week rankings failed",
			"season_id", query.SeasonID, "week", query.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries := make([]weekRankingDTO, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, weeklyScoreToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, weekRankingsDTO{
		SeasonID: result.SeasonID,
		Week:     result.Week,
		Total:    result.Total,
		Entries:  entries,
	})
}

func rankingsQueryFromRequest(ctx context.Context, r *http.Request) (usecase.RankingsQuery, error) {
	_, span := startSpan(ctx, "httpapi.rankingsQueryFromRequest")
	defer span.End()

	query := usecase.RankingsQuery{
		SeasonID: strings.TrimSpace(r.PathValue("seasonID")),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		return usecase.RankingsQuery{}, err
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		return usecase.RankingsQuery{}, err
	}
	query.Limit = limit
	query.Offset = offset
	return query, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

type seasonDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CurrentWeek int    `json:"currentWeek"`
	IsActive    bool   `json:"isActive"`
}

type seasonRankingsDTO struct {
	SeasonID string             `json:"seasonId"`
	Total    int                `json:"total"`
	Entries  []seasonRankingDTO `json:"entries"`
}

type seasonRankingDTO struct {
	Rank                  int    `json:"rank"`
	UserID                string `json:"userId"`
	DisplayName           string `json:"displayName"`
	TotalPoints           int    `json:"totalPoints"`
	CorrectScores         int    `json:"correctScores"`
	CorrectResults        int    `json:"correctResults"`
	SpecialQuestionPoints int    `json:"specialQuestionPoints"`
	CalculatedAt          string `json:"calculatedAt"`
}

type weekRankingsDTO struct {
	SeasonID string           `json:"seasonId"`
	Week     int              `json:"week"`
	Total    int              `json:"total"`
	Entries  []weekRankingDTO `json:"entries"`
}

type weekRankingDTO struct {
	UserID                string `json:"userId"`
	DisplayName           string `json:"displayName"`
	TotalPoints           int    `json:"totalPoints"`
	CorrectScores         int    `json:"correctScores"`
	CorrectResults        int    `json:"correctResults"`
	SpecialQuestionPoints int    `json:"specialQuestionPoints"`
	CalculatedAt          string `json:"calculatedAt"`
}

func seasonToDTO(ctx context.Context, v season.Season) seasonDTO {
	_, span := startSpan(ctx, "httpapi.seasonToDTO")
	defer span.End()

	return seasonDTO{
		ID:          v.ID,
		Name:        v.Name,
		CurrentWeek: v.CurrentWeek,
		IsActive:    v.IsActive,
	}
}

func seasonScoreToDTO(ctx context.Context, v standings.SeasonScore) seasonRankingDTO {
	_, span := startSpan(ctx, "httpapi.seasonScoreToDTO")
	defer span.End()

	return seasonRankingDTO{
		Rank:                  v.Rank,
		UserID:                v.UserID,
		DisplayName:           v.DisplayName,
		TotalPoints:           v.TotalPoints,
		CorrectScores:         v.CorrectScores,
		CorrectResults:        v.CorrectResults,
		SpecialQuestionPoints: v.SpecialQuestionPoints,
		CalculatedAt:          v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}

func weeklyScoreToDTO(ctx context.Context, v standings.WeeklyScore) weekRankingDTO {
	_, span := startSpan(ctx, "httpapi.weeklyScoreToDTO")
	defer span.End()

	return weekRankingDTO{
		UserID:                v.UserID,
		DisplayName:           v.DisplayName,
		TotalPoints:           v.TotalPoints,
		CorrectScores:         v.CorrectScores,
		CorrectResults:        v.CorrectResults,
		SpecialQuestionPoints: v.SpecialQuestionPoints,
		CalculatedAt:          v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}
