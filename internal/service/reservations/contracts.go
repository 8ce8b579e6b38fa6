package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ExistsActiveByProperty(ctx context.Context, propertyID int64, excludeID *int64) (bool, error)
}

// ContractRepository интерфейс чтения договоров
type ContractRepository interface {
	ExistsVigentByProperty(ctx context.Context, propertyID int64) (bool, error)
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error
}

// InterestedRepository интерфейс чтения клиентов
type InterestedRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InterestedParty, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, title, message string, category domain.NotificationCategory) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
