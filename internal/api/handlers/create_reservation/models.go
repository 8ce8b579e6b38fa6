package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	createReservation "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP модель запроса на резервацию
type CreateReservationRequest struct {
	PropertyID   int64            `json:"propertyId"`
	InterestedID int64            `json:"interestedId"`
	ExpiresAt    *time.Time       `json:"expiresAt,omitempty"` // RFC 3339; без него - срок по умолчанию
	Deposit      *decimal.Decimal `json:"deposit,omitempty"`   // строка или число, например "150000.00"
	Notes        *string          `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(actor domain.Actor) *createReservation.Request {
	deposit := decimal.Zero
	if r.Deposit != nil {
		deposit = *r.Deposit
	}

	return &createReservation.Request{
		Actor:        actor,
		PropertyID:   r.PropertyID,
		InterestedID: r.InterestedID,
		ExpiresAt:    r.ExpiresAt,
		Deposit:      deposit,
		Notes:        r.Notes,
	}
}
