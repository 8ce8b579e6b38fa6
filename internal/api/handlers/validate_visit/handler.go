package validate_visit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPropertyNotFound   = "объект не найден"
	msgInterestedNotFound = "клиент не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/visits/validate
// Отказ валидатора - это 200 с valid=false, а не ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ValidateVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	candidate, slotOK, err := req.ToCandidate()
	if err != nil {
		h.logger.Warn("POST /visits/validate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if !slotOK {
		handlers.RespondJSON(w, http.StatusOK, rejected(schedule.KindInvalidSlot))
		return
	}

	result, err := h.service.Validate(r.Context(), candidate, req.VisitID, actor)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrPropertyNotFound):
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, visits.ErrInterestedNotFound):
			handlers.RespondNotFound(w, msgInterestedNotFound)

		case errors.Is(err, visits.ErrAccessDenied):
			h.logger.Warn("POST /visits/validate - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /visits/validate - Failed to validate: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromValidationResult(result))
}
