package visits

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Visit, error)
	GetByFilter(ctx context.Context, filter domain.VisitsFilter) ([]*domain.Visit, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.VisitStatus) error
}

// PropertyRepository интерфейс чтения объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// InterestedRepository интерфейс чтения клиентов
type InterestedRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InterestedParty, error)
}

// Validator проверка допустимости визита
type Validator interface {
	Validate(ctx context.Context, c schedule.Candidate, excludeID *int64, now time.Time) error
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
