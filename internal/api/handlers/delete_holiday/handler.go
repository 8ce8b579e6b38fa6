package delete_holiday

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/holidays"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound      = "праздник не найден"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle DELETE /api/v1/holidays/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	rawDate := mux.Vars(r)["date"]
	date, err := handlers.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("DELETE /holidays/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Delete(r.Context(), date, actor); err != nil {
		switch {
		case errors.Is(err, holidays.ErrHolidayNotFound):
			h.logger.Warn("DELETE /holidays/{date} - Not found: date=%s", rawDate)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, holidays.ErrAccessDenied):
			h.logger.Warn("DELETE /holidays/{date} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /holidays/{date} - Failed to delete holiday: date=%s, error=%v", rawDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holidays/{date} - Holiday deleted: date=%s, user_id=%d", rawDate, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
