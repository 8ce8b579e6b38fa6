package update_visit

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	visitRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/visit"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/visits/models"
)

// UseCase use case для изменения визита
type UseCase struct {
	visitRepo      VisitRepository
	propertyRepo   PropertyRepository
	interestedRepo InterestedRepository
	validator      Validator
	access         AccessChecker
	metrics        Metrics
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	visitRepo VisitRepository,
	propertyRepo PropertyRepository,
	interestedRepo InterestedRepository,
	validator Validator,
	access AccessChecker,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		visitRepo:      visitRepo,
		propertyRepo:   propertyRepo,
		interestedRepo: interestedRepo,
		validator:      validator,
		access:         access,
		metrics:        metrics,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case изменения визита
// Новые значения проходят тот же валидатор, что и при создании; сам визит из проверок исключается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.VisitResponse, error) {
	uc.logger.Info("UpdateVisit: user=%d, visit=%d, property=%d, interested=%d, date=%s, slot=%s",
		req.Actor.UserID, req.VisitID, req.PropertyID, req.InterestedID, req.Date.Format(domain.DateFormat), req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateVisit: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Visit

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now()

		// 2.1. Получаем визит (FOR UPDATE)
		visit, err := uc.visitRepo.GetByID(txCtx, req.VisitID)
		if err != nil {
			if errors.Is(err, visitRepo.ErrVisitNotFound) {
				uc.logger.Warn("UpdateVisit: visit id=%d not found", req.VisitID)
				return ErrVisitNotFound
			}
			uc.logger.Error("UpdateVisit: failed to get visit id=%d: %v", req.VisitID, err)
			return fmt.Errorf("%w: failed to get visit: %v", ErrInternal, err)
		}

		// 2.2. Права на текущий визит и на новые значения
		if err := uc.access.CheckAccess(txCtx, req.Actor, visit.PropertyID, visit.InterestedID); err != nil {
			return err
		}
		if visit.PropertyID != req.PropertyID || visit.InterestedID != req.InterestedID {
			if err := uc.access.CheckAccess(txCtx, req.Actor, req.PropertyID, req.InterestedID); err != nil {
				return err
			}
		}

		// 2.3. Завершённые и отменённые визиты не меняются
		if !visit.IsActive() {
			uc.logger.Warn("UpdateVisit: visit id=%d has status %s", visit.ID, visit.Status)
			return ErrVisitNotEditable
		}

		// 2.4. Блокируем объекты в порядке возрастания ID
		for _, propertyID := range lockOrder(visit.PropertyID, req.PropertyID) {
			if _, err := uc.propertyRepo.LockByID(txCtx, propertyID); err != nil {
				if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
					uc.logger.Warn("UpdateVisit: property id=%d not found", propertyID)
					return ErrPropertyNotFound
				}
				uc.logger.Error("UpdateVisit: failed to lock property id=%d: %v", propertyID, err)
				return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
			}
		}

		// 2.5. Проверяем нового клиента
		if visit.InterestedID != req.InterestedID {
			if _, err := uc.interestedRepo.GetByID(txCtx, req.InterestedID); err != nil {
				if errors.Is(err, interestedRepo.ErrInterestedNotFound) {
					return ErrInterestedNotFound
				}
				return fmt.Errorf("%w: failed to get interested party: %v", ErrInternal, err)
			}
		}

		// 2.6. Валидатор, визит исключён из проверок занятости и лимитов
		candidate := schedule.Candidate{
			PropertyID:   req.PropertyID,
			InterestedID: req.InterestedID,
			Date:         req.Date,
			Slot:         req.Slot,
		}
		if err := uc.validator.Validate(txCtx, candidate, &visit.ID, now); err != nil {
			if schedule.IsValidationError(err) {
				return err
			}
			uc.logger.Error("UpdateVisit: validator failed: %v", err)
			return fmt.Errorf("%w: validator: %v", ErrInternal, err)
		}

		// 2.7. Сохраняем
		visit.PropertyID = req.PropertyID
		visit.InterestedID = req.InterestedID
		visit.Date = req.Date
		visit.Slot = req.Slot
		visit.Notes = req.Notes

		updated, err := uc.visitRepo.Update(txCtx, visit)
		if err != nil {
			if errors.Is(err, visitRepo.ErrSlotTaken) {
				return schedule.ErrSlotTaken
			}
			if errors.Is(err, visitRepo.ErrVisitNotFound) {
				return ErrVisitNotFound
			}
			uc.logger.Error("UpdateVisit: failed to update visit id=%d: %v", visit.ID, err)
			return fmt.Errorf("%w: failed to update visit: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if kind, ok := schedule.KindOf(err); ok {
			uc.logger.Warn("UpdateVisit: rejected: %s", kind)
			uc.metrics.IncVisitRejected(kind)
		}
		return nil, err
	}

	uc.logger.Info("UpdateVisit: successfully updated visit id=%d", result.ID)
	return models.FromDomainVisit(result), nil
}
