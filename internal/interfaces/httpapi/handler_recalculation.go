package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golestat/prediction-league/internal/usecase"
)

func (h *Handler) RecalculateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	summary, err := h.recalcService.RecalculateSeason(ctx, seasonID)
	if err != nil {
		// A partial failure still carries a usable summary: report the
		// completed units with a multi-status instead of discarding them.
		if errors.Is(err, usecase.ErrPartialBatchFailure) {
			h.logger.WarnContext(ctx, "season recalculation partially failed",
				"season_id", seasonID,
				"failed_matches", len(summary.FailedMatches),
				"failed_questions", len(summary.FailedQuestions),
			)
			writeSuccess(ctx, w, http.StatusMultiStatus, summary)
			return
		}

		h.logger.ErrorContext(ctx, "season recalculation failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) RecalculateAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateAll")
	defer span.End()

	summary, err := h.recalcService.RecalculateAll(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrPartialBatchFailure) {
			h.logger.WarnContext(ctx, "full recalculation partially failed",
				"season_count", summary.SeasonCount,
				"failed_count", summary.FailedCount,
			)
			writeSuccess(ctx, w, http.StatusMultiStatus, summary)
			return
		}

		h.logger.ErrorContext(ctx, "full recalculation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
