package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
	reservationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/reservations/models"
)

// UseCase use case для создания резервации объекта
type UseCase struct {
	reservationRepo ReservationRepository
	contractRepo    ContractRepository
	propertyRepo    PropertyRepository
	interestedRepo  InterestedRepository
	announcer       Announcer
	txManager       TransactionManager
	defaultTTL      time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// defaultTTL - срок резервации, если в запросе он не указан
func NewUseCase(
	reservationRepo ReservationRepository,
	contractRepo ContractRepository,
	propertyRepo PropertyRepository,
	interestedRepo InterestedRepository,
	announcer Announcer,
	txManager TransactionManager,
	defaultTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		contractRepo:    contractRepo,
		propertyRepo:    propertyRepo,
		interestedRepo:  interestedRepo,
		announcer:       announcer,
		txManager:       txManager,
		defaultTTL:      defaultTTL,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания резервации
// Объект блокируется, проверяются активные резервации и договоры, объект переводится в "reserved".
// Уведомления отправляются только после фиксации транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: user=%d, property=%d, interested=%d",
		req.Actor.UserID, req.PropertyID, req.InterestedID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.Reservation
		now    time.Time
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now = uc.timeProvider.Now()

		// 2.1. Блокируем объект (FOR UPDATE)
		property, err := uc.propertyRepo.LockByID(txCtx, req.PropertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				uc.logger.Warn("CreateReservation: property id=%d not found", req.PropertyID)
				return ErrPropertyNotFound
			}
			uc.logger.Error("CreateReservation: failed to lock property id=%d: %v", req.PropertyID, err)
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}

		// 2.2. Резервирует администратор или владелец объекта
		if !req.Actor.IsAdmin() && !property.IsOwnedBy(req.Actor.UserID) {
			uc.logger.Warn("CreateReservation: user=%d may not reserve property=%d", req.Actor.UserID, req.PropertyID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем клиента
		if _, err := uc.interestedRepo.GetByID(txCtx, req.InterestedID); err != nil {
			if errors.Is(err, interestedRepo.ErrInterestedNotFound) {
				uc.logger.Warn("CreateReservation: interested id=%d not found", req.InterestedID)
				return ErrInterestedNotFound
			}
			uc.logger.Error("CreateReservation: failed to get interested id=%d: %v", req.InterestedID, err)
			return fmt.Errorf("%w: failed to get interested party: %v", ErrInternal, err)
		}

		// 2.4. Не больше одной активной резервации на объект
		hasActive, err := uc.reservationRepo.ExistsActiveByProperty(txCtx, req.PropertyID, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check active reservations: %v", err)
			return fmt.Errorf("%w: failed to check active reservations: %v", ErrInternal, err)
		}
		if hasActive {
			uc.logger.Warn("CreateReservation: property=%d already has an active reservation", req.PropertyID)
			return ErrReservationConflict
		}

		// 2.5. Объект с действующим договором не резервируется
		hasContract, err := uc.contractRepo.ExistsVigentByProperty(txCtx, req.PropertyID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check contracts: %v", err)
			return fmt.Errorf("%w: failed to check contracts: %v", ErrInternal, err)
		}
		if hasContract {
			uc.logger.Warn("CreateReservation: property=%d has a vigent contract", req.PropertyID)
			return ErrContractConflict
		}

		// 2.6. Собираем резервацию и проверяем срок
		reservation := &domain.Reservation{
			PropertyID:   req.PropertyID,
			InterestedID: req.InterestedID,
			CreatedBy:    req.Actor.UserID,
			ExpiresAt:    req.ExpiresAt,
			Deposit:      req.Deposit,
			Notes:        req.Notes,
			Active:       true,
		}
		if reservation.ExpiresAt == nil && uc.defaultTTL > 0 {
			expiresAt := now.Add(uc.defaultTTL)
			reservation.ExpiresAt = &expiresAt
		}
		if err := reservation.ValidateForCreate(now); err != nil {
			uc.logger.Warn("CreateReservation: expiry check failed: %v", err)
			return mapExpiryError(err)
		}

		// 2.7. Сохраняем; частичный уникальный индекс страхует от гонки
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrActiveExists) {
				return ErrReservationConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 2.8. Объект переходит в статус "reserved"
		if err := uc.propertyRepo.UpdateStatus(txCtx, req.PropertyID, domain.PropertyStatusReserved); err != nil {
			uc.logger.Error("CreateReservation: failed to update property status: %v", err)
			return fmt.Errorf("%w: failed to update property status: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d for property=%d",
		result.ID, result.PropertyID)

	// 3. Уведомляем владельца и клиента
	uc.announcer.NotifyCreated(ctx, result)

	return models.FromDomainReservation(result, now), nil
}
