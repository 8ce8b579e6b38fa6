package get_interested_visits

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits"
)

const (
	msgInvalidInterestedID = "некорректный ID клиента"
	msgInvalidStatus       = "некорректный статус визита"
	msgNotFound            = "клиент не найден"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service VisitService
	logger  Logger
}

func NewHandler(service VisitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/interested/{interestedId}/visits?status=scheduled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	interestedID, err := handlers.PathID(r, "interestedId")
	if err != nil {
		h.logger.Warn("GET /interested/{id}/visits - Invalid interested ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterestedID)
		return
	}

	// Получаем status из query параметров (опционально)
	var status *domain.VisitStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.VisitStatus(raw)
		status = &s
	}

	result, err := h.service.GetByInterested(r.Context(), interestedID, status, actor)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, visits.ErrInterestedNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, visits.ErrAccessDenied):
			h.logger.Warn("GET /interested/{id}/visits - Access denied: interested_id=%d, user_id=%d",
				interestedID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /interested/{id}/visits - Failed to get visits: interested_id=%d, error=%v",
				interestedID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /interested/{id}/visits - Visits retrieved: interested_id=%d, count=%d", interestedID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
