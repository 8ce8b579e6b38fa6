package sweep_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	sweepExpired "github.com/m04kA/SMC-VisitScheduler/internal/usecase/sweep_expired_reservations"
)

type Handler struct {
	useCase SweepUseCase
	logger  Logger
}

func NewHandler(useCase SweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/reservations/sweep
// Права администратора проверяет middleware AdminOnly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &sweepExpired.Request{})
	if err != nil {
		h.logger.Error("POST /admin/reservations/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/reservations/sweep - Released=%d, failed=%d", result.Released, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
