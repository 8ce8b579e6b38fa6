package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные резервации"
	msgPropertyNotFound   = "объект не найден"
	msgInterestedNotFound = "клиент не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrReservationConflict):
			h.logger.Warn("POST /reservations - Active reservation exists: property_id=%d", req.PropertyID)
			handlers.RespondReservationError(w, handlers.CodeReservationConflict)

		case errors.Is(err, createReservation.ErrContractConflict):
			h.logger.Warn("POST /reservations - Vigent contract exists: property_id=%d", req.PropertyID)
			handlers.RespondReservationError(w, handlers.CodeContractConflict)

		case errors.Is(err, createReservation.ErrMissingExpiry):
			handlers.RespondReservationError(w, handlers.CodeMissingExpiry)

		case errors.Is(err, createReservation.ErrExpiryNotFuture):
			h.logger.Warn("POST /reservations - Expiry not in the future: property_id=%d", req.PropertyID)
			handlers.RespondReservationError(w, handlers.CodeExpiryNotFuture)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrPropertyNotFound):
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, createReservation.ErrInterestedNotFound):
			handlers.RespondNotFound(w, msgInterestedNotFound)

		case errors.Is(err, createReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations - Access denied: user_id=%d, property_id=%d", actor.UserID, req.PropertyID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: property_id=%d, error=%v",
				req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, property_id=%d",
		result.ID, result.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
