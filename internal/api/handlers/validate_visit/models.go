package validate_visit

import (
	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// ValidateVisitRequest HTTP модель пробной проверки
// VisitID указывается при проверке изменения существующего визита
type ValidateVisitRequest struct {
	VisitID      *int64 `json:"visitId,omitempty"`
	PropertyID   int64  `json:"propertyId"`
	InterestedID int64  `json:"interestedId"`
	Date         string `json:"date"`
	Slot         string `json:"slot"`
}

// ValidateVisitResponse результат проверки
type ValidateVisitResponse struct {
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToCandidate собирает кандидата для валидатора
// Второе значение false, если слот не в формате HH:MM
func (r *ValidateVisitRequest) ToCandidate() (schedule.Candidate, bool, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return schedule.Candidate{}, false, err
	}

	c := schedule.Candidate{
		PropertyID:   r.PropertyID,
		InterestedID: r.InterestedID,
		Date:         date,
	}

	slot, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return c, false, nil
	}
	c.Slot = slot
	return c, true, nil
}

// FromValidationResult конвертирует результат сервиса в HTTP response
func FromValidationResult(res *models.ValidationResult) *ValidateVisitResponse {
	if res.Valid {
		return &ValidateVisitResponse{Valid: true}
	}
	return rejected(res.Kind)
}

func rejected(kind string) *ValidateVisitResponse {
	return &ValidateVisitResponse{
		Valid:   false,
		Kind:    kind,
		Message: handlers.ScheduleMessage(kind),
	}
}
