package list_holidays

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/holidays"
)

const (
	msgInvalidRange = "некорректный диапазон дат, ожидается YYYY-MM-DD"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/holidays?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := handlers.ParseOptionalDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /holidays - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.ParseOptionalDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /holidays - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, holidays.ErrInvalidInput):
			h.logger.Warn("GET /holidays - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /holidays - Failed to list holidays: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /holidays - Holidays retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
