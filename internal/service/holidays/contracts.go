package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	List(ctx context.Context, from, to *time.Time) ([]*domain.Holiday, error)
	Create(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	Delete(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
