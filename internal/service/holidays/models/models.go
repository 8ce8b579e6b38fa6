package models

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// CreateHolidayRequest запрос на добавление праздника
type CreateHolidayRequest struct {
	Date  time.Time
	Label string
}

// HolidayResponse ответ с данными праздника
type HolidayResponse struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}
	return &HolidayResponse{
		Date:      h.Date.Format(domain.DateFormat),
		Label:     h.Label,
		CreatedAt: h.CreatedAt,
	}
}

// FromDomainHolidays конвертирует список праздников
func FromDomainHolidays(holidays []*domain.Holiday) []*HolidayResponse {
	result := make([]*HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, FromDomainHoliday(h))
	}
	return result
}
