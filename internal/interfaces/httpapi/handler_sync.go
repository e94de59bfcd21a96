package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golestat/prediction-league/internal/usecase"
)

func (h *Handler) SyncSeasonResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncSeasonResults")
	defer span.End()

	if h.resultSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: result feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	summary, err := h.resultSyncService.SyncSeason(ctx, seasonID)
	if err != nil {
		if errors.Is(err, usecase.ErrPartialBatchFailure) {
			h.logger.WarnContext(ctx, "season result sync partially failed",
				"season_id", seasonID,
				"failed", summary.Failed,
			)
			writeSuccess(ctx, w, http.StatusMultiStatus, summary)
			return
		}

		h.logger.ErrorContext(ctx, "season result sync failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) RunResultSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResultSyncJob")
	defer span.End()

	if h.resultSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: result feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	batch, err := h.resultSyncService.RunScheduled(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrPartialBatchFailure) {
			h.logger.WarnContext(ctx, "scheduled result sync partially failed",
				"season_count", batch.SeasonCount,
				"failed_count", batch.FailedCount,
			)
			writeSuccess(ctx, w, http.StatusMultiStatus, batch)
			return
		}

		h.logger.ErrorContext(ctx, "scheduled result sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, batch)
}
