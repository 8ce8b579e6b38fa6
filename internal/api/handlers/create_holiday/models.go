package create_holiday

import (
	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/holidays/models"
)

// CreateHolidayRequest HTTP модель запроса
type CreateHolidayRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Label string `json:"label"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateHolidayRequest) ToServiceRequest() (*models.CreateHolidayRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &models.CreateHolidayRequest{
		Date:  date,
		Label: r.Label,
	}, nil
}
