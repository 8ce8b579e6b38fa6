package visits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	visitRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/visit"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
)

// Service сервис чтения визитов, смены статуса и пробной проверки
type Service struct {
	visitRepo      VisitRepository
	propertyRepo   PropertyRepository
	interestedRepo InterestedRepository
	validator      Validator
	notifier       Notifier
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(
	visitRepo VisitRepository,
	propertyRepo PropertyRepository,
	interestedRepo InterestedRepository,
	validator Validator,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		visitRepo:      visitRepo,
		propertyRepo:   propertyRepo,
		interestedRepo: interestedRepo,
		validator:      validator,
		notifier:       notifier,
		timeProvider:   &realTimeProvider{},
		logger:         logger,
	}
}

type realTimeProvider struct{}

func (p *realTimeProvider) Now() time.Time {
	return time.Now()
}

// GetByID получает визит по ID
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.VisitResponse, error) {
	s.logger.Info("GetByID: fetching visit id=%d for user=%d", id, actor.UserID)

	visit, err := s.getVisit(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.CheckAccess(ctx, actor, visit.PropertyID, visit.InterestedID); err != nil {
		return nil, err
	}

	return models.FromDomainVisit(visit), nil
}

// GetByInterested получает визиты клиента, опционально только с указанным статусом
func (s *Service) GetByInterested(ctx context.Context, interestedID int64, status *domain.VisitStatus, actor domain.Actor) ([]*models.VisitResponse, error) {
	s.logger.Info("GetByInterested: fetching visits for interested=%d by user=%d", interestedID, actor.UserID)

	// 1. Проверка статуса
	if status != nil && !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	// 2. Владелец объектов не видит все визиты клиента, только админ и сам клиент
	if !actor.IsAdmin() {
		party, err := s.interestedRepo.GetByID(ctx, interestedID)
		if err != nil {
			if errors.Is(err, interestedRepo.ErrInterestedNotFound) {
				return nil, ErrInterestedNotFound
			}
			s.logger.Error("GetByInterested: failed to get interested id=%d: %v", interestedID, err)
			return nil, fmt.Errorf("%w: GetByInterested - repository error: %v", ErrInternal, err)
		}
		if party.UserID == nil || *party.UserID != actor.UserID {
			s.logger.Warn("GetByInterested: user=%d has no access to interested=%d", actor.UserID, interestedID)
			return nil, ErrAccessDenied
		}
	}

	// 3. Получаем визиты
	filter := domain.VisitsFilter{InterestedID: &interestedID}
	if status != nil {
		filter.Statuses = []domain.VisitStatus{*status}
	}

	visits, err := s.visitRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByInterested: repository error for interested=%d: %v", interestedID, err)
		return nil, fmt.Errorf("%w: GetByInterested - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByInterested: found %d visits for interested=%d", len(visits), interestedID)
	return models.FromDomainVisits(visits), nil
}

// UpdateStatus меняет статус визита по жизненному циклу
// scheduled -> confirmed -> done, scheduled|confirmed -> cancelled.
// Клиент может только отменить свой визит.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.VisitStatus, actor domain.Actor) (*models.VisitResponse, error) {
	s.logger.Info("UpdateStatus: visit id=%d -> %s by user=%d", id, status, actor.UserID)

	// 1. Проверка статуса
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	// 2. Получаем визит
	visit, err := s.getVisit(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	// 3. Проверка прав
	if err := s.CheckAccess(ctx, actor, visit.PropertyID, visit.InterestedID); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClient && status != domain.VisitStatusCancelled {
		s.logger.Warn("UpdateStatus: client user=%d may only cancel visit id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	// 4. Проверка перехода
	if !visit.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for visit id=%d", visit.Status, status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, visit.Status, status)
	}

	// 5. Сохраняем только если статус не поменялся с момента чтения
	if err := s.visitRepo.UpdateStatus(ctx, id, visit.Status, status); err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			return nil, ErrVisitNotFound
		}
		if errors.Is(err, visitRepo.ErrStatusChanged) {
			s.logger.Warn("UpdateStatus: visit id=%d changed concurrently, was %s", id, visit.Status)
			return nil, fmt.Errorf("%w: visit status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("UpdateStatus: repository error for visit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	visit.Status = status
	visit.UpdatedAt = s.timeProvider.Now()

	// 6. Уведомляем клиента
	s.notifyStatusChanged(ctx, visit)

	s.logger.Info("UpdateStatus: visit id=%d is now %s", id, status)
	return models.FromDomainVisit(visit), nil
}

// Validate пробная проверка визита без записи.
// Отказ валидатора - это Valid=false с кодом, а не ошибка.
func (s *Service) Validate(ctx context.Context, c schedule.Candidate, excludeID *int64, actor domain.Actor) (*models.ValidationResult, error) {
	s.logger.Info("Validate: property=%d interested=%d date=%s slot=%s",
		c.PropertyID, c.InterestedID, c.Date.Format(domain.DateFormat), c.Slot)

	if err := s.CheckAccess(ctx, actor, c.PropertyID, c.InterestedID); err != nil {
		return nil, err
	}

	err := s.validator.Validate(ctx, c, excludeID, s.timeProvider.Now())
	if err == nil {
		return &models.ValidationResult{Valid: true}, nil
	}

	kind, ok := schedule.KindOf(err)
	if !ok {
		s.logger.Error("Validate: validator failed: %v", err)
		return nil, fmt.Errorf("%w: Validate - validator error: %v", ErrInternal, err)
	}

	return &models.ValidationResult{Valid: false, Kind: kind}, nil
}

func (s *Service) getVisit(ctx context.Context, op string, id int64) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("%s: visit id=%d not found", op, id)
			return nil, ErrVisitNotFound
		}
		s.logger.Error("%s: repository error for visit id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return visit, nil
}

// notifyStatusChanged уведомляет клиента о подтверждении или отмене визита
func (s *Service) notifyStatusChanged(ctx context.Context, visit *domain.Visit) {
	var title string
	switch visit.Status {
	case domain.VisitStatusConfirmed:
		title = "Визит подтверждён"
	case domain.VisitStatusCancelled:
		title = "Визит отменён"
	default:
		return
	}

	party, err := s.interestedRepo.GetByID(ctx, visit.InterestedID)
	if err != nil || party.UserID == nil {
		return
	}

	message := fmt.Sprintf("Визит %s в %s: статус «%s».",
		visit.Date.Format(domain.DateFormat), visit.Slot, visit.Status)
	if err := s.notifier.Notify(ctx, *party.UserID, title, message, domain.NotificationCategoryVisit); err != nil {
		s.logger.Warn("notifyStatusChanged: failed to notify user=%d: %v", *party.UserID, err)
	}
}
