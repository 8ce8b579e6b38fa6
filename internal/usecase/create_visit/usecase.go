package create_visit

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

// UseCase use case для записи на визит
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

// Execute выполняет use case записи на визит
// Проверка и вставка идут в одной сериализуемой транзакции под блокировкой объекта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.VisitResponse, error) {
	uc.logger.Info("CreateVisit: user=%d, property=%d, interested=%d, date=%s, slot=%s",
		req.Actor.UserID, req.PropertyID, req.InterestedID, req.Date.Format(domain.DateFormat), req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateVisit: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав
	if err := uc.access.CheckAccess(ctx, req.Actor, req.PropertyID, req.InterestedID); err != nil {
		uc.logger.Warn("CreateVisit: access check failed for user=%d: %v", req.Actor.UserID, err)
		return nil, err
	}

	var result *domain.Visit

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Время берём на каждой попытке заново
		now := uc.timeProvider.Now()

		// 3.1. Блокируем объект (FOR UPDATE)
		if _, err := uc.propertyRepo.LockByID(txCtx, req.PropertyID); err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				uc.logger.Warn("CreateVisit: property id=%d not found", req.PropertyID)
				return ErrPropertyNotFound
			}
			uc.logger.Error("CreateVisit: failed to lock property id=%d: %v", req.PropertyID, err)
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}

		// 3.2. Проверяем клиента
		if _, err := uc.interestedRepo.GetByID(txCtx, req.InterestedID); err != nil {
			if errors.Is(err, interestedRepo.ErrInterestedNotFound) {
				uc.logger.Warn("CreateVisit: interested id=%d not found", req.InterestedID)
				return ErrInterestedNotFound
			}
			uc.logger.Error("CreateVisit: failed to get interested id=%d: %v", req.InterestedID, err)
			return fmt.Errorf("%w: failed to get interested party: %v", ErrInternal, err)
		}

		// 3.3. Правила календаря, занятость и лимиты клиента
		candidate := schedule.Candidate{
			PropertyID:   req.PropertyID,
			InterestedID: req.InterestedID,
			Date:         req.Date,
			Slot:         req.Slot,
		}
		if err := uc.validator.Validate(txCtx, candidate, nil, now); err != nil {
			if schedule.IsValidationError(err) {
				return err
			}
			uc.logger.Error("CreateVisit: validator failed: %v", err)
			return fmt.Errorf("%w: validator: %v", ErrInternal, err)
		}

		// 3.4. Сохраняем визит
		created, err := uc.visitRepo.Create(txCtx, &domain.Visit{
			PropertyID:   req.PropertyID,
			InterestedID: req.InterestedID,
			Date:         req.Date,
			Slot:         req.Slot,
			Status:       domain.VisitStatusScheduled,
			Notes:        req.Notes,
		})
		if err != nil {
			if errors.Is(err, visitRepo.ErrSlotTaken) {
				return schedule.ErrSlotTaken
			}
			uc.logger.Error("CreateVisit: failed to create visit: %v", err)
			return fmt.Errorf("%w: failed to create visit: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if kind, ok := schedule.KindOf(err); ok {
			uc.logger.Warn("CreateVisit: rejected: %s", kind)
			uc.metrics.IncVisitRejected(kind)
		}
		return nil, err
	}

	uc.logger.Info("CreateVisit: successfully created visit id=%d", result.ID)
	return models.FromDomainVisit(result), nil
}
