package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ExistsActiveByProperty(ctx context.Context, propertyID int64, excludeID *int64) (bool, error)
}

// ContractRepository интерфейс чтения договоров
type ContractRepository interface {
	ExistsVigentByProperty(ctx context.Context, propertyID int64) (bool, error)
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Property, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error
}

// InterestedRepository интерфейс чтения клиентов
type InterestedRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InterestedParty, error)
}

// Announcer уведомления о новой резервации
type Announcer interface {
	NotifyCreated(ctx context.Context, reservation *domain.Reservation)
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
