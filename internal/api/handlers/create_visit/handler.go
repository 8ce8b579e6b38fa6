package create_visit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits"
	createVisit "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_visit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrSlot  = "некорректная дата или слот, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные визита"
	msgPropertyNotFound   = "объект не найден"
	msgInterestedNotFound = "клиент не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateVisitUseCase
	logger  Logger
}

func NewHandler(useCase CreateVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /visits - Failed to parse request: %v", err)
		if !handlers.RespondScheduleError(w, err) {
			handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondScheduleError(w, err) {
			h.logger.Warn("POST /visits - Rejected: property_id=%d, interested_id=%d, error=%v",
				req.PropertyID, req.InterestedID, err)
			return
		}

		switch {
		case errors.Is(err, createVisit.ErrInvalidInput):
			h.logger.Warn("POST /visits - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createVisit.ErrPropertyNotFound), errors.Is(err, visits.ErrPropertyNotFound):
			h.logger.Warn("POST /visits - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createVisit.ErrInterestedNotFound), errors.Is(err, visits.ErrInterestedNotFound):
			h.logger.Warn("POST /visits - Interested not found: interested_id=%d", req.InterestedID)
			handlers.RespondNotFound(w, msgInterestedNotFound)

		case errors.Is(err, visits.ErrAccessDenied):
			h.logger.Warn("POST /visits - Access denied: user_id=%d, property_id=%d", actor.UserID, req.PropertyID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /visits - Failed to create visit: property_id=%d, error=%v", req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /visits - Visit created: visit_id=%d, property_id=%d, date=%s, slot=%s",
		result.ID, result.PropertyID, result.Date, result.Slot)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
