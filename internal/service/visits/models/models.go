package models

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// VisitResponse ответ с данными визита
type VisitResponse struct {
	ID           int64     `json:"id"`
	PropertyID   int64     `json:"propertyId"`
	InterestedID int64     `json:"interestedId"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Slot         string    `json:"slot"` // HH:MM
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidationResult результат пробной проверки визита
type ValidationResult struct {
	Valid bool
	Kind  string // пусто, если Valid
}

// FromDomainVisit конвертирует domain модель в DTO
func FromDomainVisit(v *domain.Visit) *VisitResponse {
	if v == nil {
		return nil
	}
	return &VisitResponse{
		ID:           v.ID,
		PropertyID:   v.PropertyID,
		InterestedID: v.InterestedID,
		Date:         v.Date.Format(domain.DateFormat),
		Slot:         v.Slot.String(),
		Status:       string(v.Status),
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// FromDomainVisits конвертирует список визитов
func FromDomainVisits(visits []*domain.Visit) []*VisitResponse {
	result := make([]*VisitResponse, 0, len(visits))
	for _, v := range visits {
		result = append(result, FromDomainVisit(v))
	}
	return result
}
