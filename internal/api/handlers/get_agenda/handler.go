package get_agenda

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	getAgenda "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_agenda"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
)

type Handler struct {
	useCase GetAgendaUseCase
	logger  Logger
}

func NewHandler(useCase GetAgendaUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/agenda?start=YYYY-MM-DD&days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID, err := handlers.PathID(r, "propertyId")
	if err != nil {
		h.logger.Warn("GET /properties/{id}/agenda - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(propertyID, r.URL.Query()))
	if err != nil {
		switch {
		case errors.Is(err, getAgenda.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/agenda - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)

		default:
			h.logger.Error("GET /properties/{id}/agenda - Failed to build agenda: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/agenda - Agenda built: property_id=%d, days=%d", propertyID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
