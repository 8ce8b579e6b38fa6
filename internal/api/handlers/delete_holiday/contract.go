package delete_holiday

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

type HolidayService interface {
	Delete(ctx context.Context, date time.Time, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
