package update_visit

import (
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	updateVisit "github.com/m04kA/SMC-VisitScheduler/internal/usecase/update_visit"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// UpdateVisitRequest HTTP модель запроса; поля заменяются целиком
type UpdateVisitRequest struct {
	PropertyID   int64   `json:"propertyId"`
	InterestedID int64   `json:"interestedId"`
	Date         string  `json:"date"`
	Slot         string  `json:"slot"`
	Notes        *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateVisitRequest) ToUseCaseRequest(visitID int64, actor domain.Actor) (*updateVisit.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	// время вне формата HH:MM не может быть слотом каталога
	slot, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schedule.ErrInvalidSlot, err)
	}

	return &updateVisit.Request{
		Actor:        actor,
		VisitID:      visitID,
		PropertyID:   r.PropertyID,
		InterestedID: r.InterestedID,
		Date:         date,
		Slot:         slot,
		Notes:        r.Notes,
	}, nil
}
