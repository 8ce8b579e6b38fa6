package get_agenda

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	getAgenda "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_agenda"
)

// AgendaDay HTTP модель дня агенды
type AgendaDay struct {
	Date    string   `json:"date"`
	Weekday int      `json:"weekday"` // 0 = понедельник
	Slots   []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAgenda.Response) []AgendaDay {
	days := make([]AgendaDay, len(resp.Days))
	for i, d := range resp.Days {
		slots := make([]string, len(d.Slots))
		for j, slot := range d.Slots {
			slots[j] = slot.String()
		}
		days[i] = AgendaDay{
			Date:    d.Date.Format(domain.DateFormat),
			Weekday: d.Weekday,
			Slots:   slots,
		}
	}
	return days
}

// ToUseCaseRequest создает запрос use case
// Некорректный start означает сегодня, некорректный days - значение по умолчанию
func ToUseCaseRequest(propertyID int64, query url.Values) *getAgenda.Request {
	req := &getAgenda.Request{PropertyID: propertyID}

	if start, err := handlers.ParseOptionalDate(query.Get("start")); err == nil {
		req.Start = start
	}

	if raw := query.Get("days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil {
			req.Days = &days
		}
	}

	return req
}
