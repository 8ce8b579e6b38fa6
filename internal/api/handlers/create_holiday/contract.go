package create_holiday

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/holidays/models"
)

type HolidayService interface {
	Create(ctx context.Context, req *models.CreateHolidayRequest, actor domain.Actor) (*models.HolidayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
