package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/golestat/prediction-league/internal/usecase"
)

func (h *Handler) SetMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchResult")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req setMatchResultRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.adminService.SetMatchResult(ctx, usecase.SetMatchResultInput{
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeResultToDTO(result))
}

func (h *Handler) SetCorrectAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCorrectAnswer")
	defer span.End()

	questionID := strings.TrimSpace(r.PathValue("questionID"))
	var req setCorrectAnswerRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.adminService.SetCorrectAnswer(ctx, usecase.SetCorrectAnswerInput{
		QuestionID:    questionID,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set correct answer failed", "question_id", questionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeResultToDTO(result))
}

// Scores arrive as pointers so a missing field fails validation instead of
// silently finalizing a 0-0.
type setMatchResultRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,gte=0"`
	AwayScore *int `json:"awayScore" validate:"required,gte=0"`
}

type setCorrectAnswerRequest struct {
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
}

type finalizeResultDTO struct {
	SeasonID          string `json:"seasonId"`
	Week              int    `json:"week"`
	PointsDistributed int    `json:"pointsDistributed"`
}

func finalizeResultToDTO(v usecase.FinalizeResult) finalizeResultDTO {
	return finalizeResultDTO{
		SeasonID:          v.SeasonID,
		Week:              v.Week,
		PointsDistributed: v.PointsDistributed,
	}
}
