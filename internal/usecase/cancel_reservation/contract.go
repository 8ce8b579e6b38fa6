package cancel_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Deactivate(ctx context.Context, id int64, reason domain.ClosedReason, at time.Time) (bool, error)
}

// PropertyRepository интерфейс блокировки объекта
type PropertyRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Property, error)
}

// PropertyReconciler возвращает объекту статус "available", когда его ничто не держит
type PropertyReconciler interface {
	ReconcileProperty(ctx context.Context, propertyID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
