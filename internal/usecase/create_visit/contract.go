package create_visit

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
}

// PropertyRepository интерфейс блокировки объекта
type PropertyRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Property, error)
}

// InterestedRepository интерфейс чтения клиентов
type InterestedRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InterestedParty, error)
}

// Validator проверка допустимости визита
type Validator interface {
	Validate(ctx context.Context, c schedule.Candidate, excludeID *int64, now time.Time) error
}

// AccessChecker проверка прав пользователя на визит
type AccessChecker interface {
	CheckAccess(ctx context.Context, actor domain.Actor, propertyID, interestedID int64) error
}

// Metrics счётчик отказов валидатора
type Metrics interface {
	IncVisitRejected(kind string)
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
