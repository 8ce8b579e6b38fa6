package update_visit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits"
	updateVisit "github.com/m04kA/SMC-VisitScheduler/internal/usecase/update_visit"
)

const (
	msgInvalidVisitID     = "некорректный ID визита"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrSlot  = "некорректная дата или слот, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные визита"
	msgVisitNotFound      = "визит не найден"
	msgNotEditable        = "завершённый или отменённый визит нельзя изменить"
	msgPropertyNotFound   = "объект не найден"
	msgInterestedNotFound = "клиент не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase UpdateVisitUseCase
	logger  Logger
}

func NewHandler(useCase UpdateVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/visits/{visitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	visitID, err := handlers.PathID(r, "visitId")
	if err != nil {
		h.logger.Warn("PUT /visits/{id} - Invalid visit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVisitID)
		return
	}

	var req UpdateVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /visits/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(visitID, actor)
	if err != nil {
		h.logger.Warn("PUT /visits/{id} - Failed to parse request: %v", err)
		if !handlers.RespondScheduleError(w, err) {
			handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondScheduleError(w, err) {
			h.logger.Warn("PUT /visits/{id} - Rejected: visit_id=%d, error=%v", visitID, err)
			return
		}

		switch {
		case errors.Is(err, updateVisit.ErrInvalidInput):
			h.logger.Warn("PUT /visits/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateVisit.ErrVisitNotFound):
			h.logger.Warn("PUT /visits/{id} - Visit not found: visit_id=%d", visitID)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, updateVisit.ErrVisitNotEditable):
			h.logger.Warn("PUT /visits/{id} - Visit not editable: visit_id=%d", visitID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, updateVisit.ErrPropertyNotFound), errors.Is(err, visits.ErrPropertyNotFound):
			h.logger.Warn("PUT /visits/{id} - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, updateVisit.ErrInterestedNotFound), errors.Is(err, visits.ErrInterestedNotFound):
			h.logger.Warn("PUT /visits/{id} - Interested not found: interested_id=%d", req.InterestedID)
			handlers.RespondNotFound(w, msgInterestedNotFound)

		case errors.Is(err, visits.ErrAccessDenied):
			h.logger.Warn("PUT /visits/{id} - Access denied: visit_id=%d, user_id=%d", visitID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /visits/{id} - Failed to update visit: visit_id=%d, error=%v", visitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /visits/{id} - Visit updated: visit_id=%d, date=%s, slot=%s", visitID, result.Date, result.Slot)
	handlers.RespondJSON(w, http.StatusOK, result)
}
