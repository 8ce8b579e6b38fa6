package models

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID           int64      `json:"id"`
	PropertyID   int64      `json:"propertyId"`
	InterestedID int64      `json:"interestedId"`
	CreatedBy    int64      `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Deposit      string     `json:"deposit"` // десятичная строка, например "150000.00"
	Notes        *string    `json:"notes,omitempty"`
	Active       bool       `json:"active"`
	State        string     `json:"state"` // ACTIVE, EXPIRED, CANCELLED, CLOSED
	ClosedReason *string    `json:"closedReason,omitempty"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
}

// FromDomainReservation конвертирует domain модель в DTO; состояние вычисляется на момент now
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		InterestedID: r.InterestedID,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		ExpiresAt:    r.ExpiresAt,
		Deposit:      r.Deposit.StringFixed(2),
		Notes:        r.Notes,
		Active:       r.Active,
		State:        string(r.State(now)),
		ClosedAt:     r.ClosedAt,
	}

	if r.ClosedReason != nil {
		reason := string(*r.ClosedReason)
		resp.ClosedReason = &reason
	}

	return resp
}
