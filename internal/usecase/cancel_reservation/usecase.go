package cancel_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	reservationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/reservations/models"
)

// UseCase use case для отмены резервации
type UseCase struct {
	reservationRepo ReservationRepository
	propertyRepo    PropertyRepository
	reconciler      PropertyReconciler
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	propertyRepo PropertyRepository,
	reconciler PropertyReconciler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		propertyRepo:    propertyRepo,
		reconciler:      reconciler,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены резервации
// Отменить можно только активную резервацию до истечения срока.
// После отмены объект освобождается по тем же правилам, что и при истечении.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CancelReservation: user=%d, reservation=%d", req.Actor.UserID, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.Reservation
		now    time.Time
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now = uc.timeProvider.Now()

		// 2.1. Получаем резервацию
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Блокируем объект и проверяем права
		property, err := uc.propertyRepo.LockByID(txCtx, reservation.PropertyID)
		if err != nil {
			uc.logger.Error("CancelReservation: failed to lock property id=%d: %v", reservation.PropertyID, err)
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}
		if !canCancel(req.Actor, property) {
			uc.logger.Warn("CancelReservation: user=%d may not cancel reservation id=%d", req.Actor.UserID, reservation.ID)
			return ErrAccessDenied
		}

		// 2.3. Только активная и не истёкшая
		if !reservation.CanBeCancelled(now) {
			uc.logger.Warn("CancelReservation: reservation id=%d is %s", reservation.ID, reservation.State(now))
			return ErrCancelWindowClosed
		}

		// 2.4. Деактивируем
		released, err := uc.reservationRepo.Deactivate(txCtx, reservation.ID, domain.ClosedReasonCancelled, now)
		if err != nil {
			uc.logger.Error("CancelReservation: failed to deactivate reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to deactivate reservation: %v", ErrInternal, err)
		}
		if !released {
			return ErrCancelWindowClosed
		}

		// 2.5. Освобождаем объект, если его больше ничто не держит
		if _, err := uc.reconciler.ReconcileProperty(txCtx, reservation.PropertyID); err != nil {
			uc.logger.Error("CancelReservation: failed to reconcile property id=%d: %v", reservation.PropertyID, err)
			return fmt.Errorf("%w: failed to reconcile property: %v", ErrInternal, err)
		}

		reason, closedAt := domain.ClosedReasonCancelled, now
		reservation.Active = false
		reservation.ClosedReason = &reason
		reservation.ClosedAt = &closedAt
		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: reservation id=%d cancelled", result.ID)
	return models.FromDomainReservation(result, now), nil
}
