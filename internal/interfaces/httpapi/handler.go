package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/golestat/prediction-league/internal/platform/logging"
	"github.com/golestat/prediction-league/internal/usecase"
)

type Handler struct {
	rankingsService   *usecase.RankingsService
	adminService      *usecase.AdminService
	recalcService     *usecase.RecalculationService
	resultSyncService *usecase.ResultSyncService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	rankingsService *usecase.RankingsService,
	adminService *usecase.AdminService,
	recalcService *usecase.RecalculationService,
	resultSyncService *usecase.ResultSyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rankingsService:   rankingsService,
		adminService:      adminService,
		recalcService:     recalcService,
		resultSyncService: resultSyncService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
