package create_visit

import (
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	createVisit "github.com/m04kA/SMC-VisitScheduler/internal/usecase/create_visit"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// CreateVisitRequest HTTP модель запроса на запись
type CreateVisitRequest struct {
	PropertyID   int64   `json:"propertyId"`
	InterestedID int64   `json:"interestedId"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Slot         string  `json:"slot"` // HH:MM
	Notes        *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateVisitRequest) ToUseCaseRequest(actor domain.Actor) (*createVisit.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	// время вне формата HH:MM не может быть слотом каталога
	slot, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schedule.ErrInvalidSlot, err)
	}

	return &createVisit.Request{
		Actor:        actor,
		PropertyID:   r.PropertyID,
		InterestedID: r.InterestedID,
		Date:         date,
		Slot:         slot,
		Notes:        r.Notes,
	}, nil
}
