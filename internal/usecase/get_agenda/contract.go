package get_agenda

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// HolidayRepository интерфейс чтения праздников
type HolidayRepository interface {
	GetSet(ctx context.Context, from, to time.Time) (domain.HolidaySet, error)
}

// VisitRepository интерфейс чтения визитов объекта за период
type VisitRepository interface {
	GetByPropertyAndRange(ctx context.Context, propertyID int64, from, to time.Time) ([]*domain.Visit, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
