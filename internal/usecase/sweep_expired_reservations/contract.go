package sweep_expired_reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	ListExpired(ctx context.Context, now time.Time, after *domain.ExpiryCursor, limit int) ([]*domain.Reservation, error)
	Deactivate(ctx context.Context, id int64, reason domain.ClosedReason, at time.Time) (bool, error)
}

// PropertyReconciler возвращает объекту статус "available", когда его ничто не держит
type PropertyReconciler interface {
	ReconcileProperty(ctx context.Context, propertyID int64) (bool, error)
}

// Announcer уведомления об истечении резервации
type Announcer interface {
	NotifyExpired(ctx context.Context, reservation *domain.Reservation)
}

// Metrics счётчики освобождения резерваций
type Metrics interface {
	AddReservationsReleased(n int)
	IncSweepFailure()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
