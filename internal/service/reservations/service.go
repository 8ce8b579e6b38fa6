package reservations

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

const expiryLayout = "02.01.2006 15:04"

// Service сервис резерваций: чтение, согласование статуса объекта и уведомления
type Service struct {
	reservationRepo ReservationRepository
	contractRepo    ContractRepository
	propertyRepo    PropertyRepository
	interestedRepo  InterestedRepository
	notifier        Notifier
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
// location - часовой пояс, в котором срок резервации выводится в уведомлениях
func NewService(
	reservationRepo ReservationRepository,
	contractRepo ContractRepository,
	propertyRepo PropertyRepository,
	interestedRepo InterestedRepository,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		contractRepo:    contractRepo,
		propertyRepo:    propertyRepo,
		interestedRepo:  interestedRepo,
		notifier:        notifier,
		location:        location,
		timeProvider:    &realTimeProvider{},
		logger:          logger,
	}
}

type realTimeProvider struct{}

func (p *realTimeProvider) Now() time.Time {
	return time.Now()
}

// GetByID получает резервацию по ID
// Доступ: администратор, владелец объекта или сам клиент
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, reservation, actor); err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// checkAccess проверяет, что пользователь может видеть резервацию
func (s *Service) checkAccess(ctx context.Context, reservation *domain.Reservation, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	property, err := s.propertyRepo.GetByID(ctx, reservation.PropertyID)
	if err != nil {
		s.logger.Error("checkAccess: failed to get property id=%d: %v", reservation.PropertyID, err)
		return fmt.Errorf("%w: checkAccess - failed to get property: %v", ErrInternal, err)
	}
	if property.IsOwnedBy(actor.UserID) {
		return nil
	}

	party, err := s.interestedRepo.GetByID(ctx, reservation.InterestedID)
	if err != nil && !errors.Is(err, interestedRepo.ErrInterestedNotFound) {
		s.logger.Error("checkAccess: failed to get interested id=%d: %v", reservation.InterestedID, err)
		return fmt.Errorf("%w: checkAccess - failed to get interested party: %v", ErrInternal, err)
	}
	if party != nil && party.UserID != nil && *party.UserID == actor.UserID {
		return nil
	}

	s.logger.Warn("checkAccess: user=%d has no access to reservation id=%d", actor.UserID, reservation.ID)
	return ErrAccessDenied
}

// ReconcileProperty возвращает объекту статус "available", если на него больше нет
// активных резерваций и действующих договоров. Возвращает true, если статус изменён.
// Вызывается в той же транзакции, что и деактивация резервации.
func (s *Service) ReconcileProperty(ctx context.Context, propertyID int64) (bool, error) {
	// 1. Есть ли другая активная резервация
	hasActive, err := s.reservationRepo.ExistsActiveByProperty(ctx, propertyID, nil)
	if err != nil {
		return false, fmt.Errorf("%w: ReconcileProperty - check active reservations: %v", ErrInternal, err)
	}
	if hasActive {
		s.logger.Info("ReconcileProperty: property=%d still has an active reservation", propertyID)
		return false, nil
	}

	// 2. Есть ли действующий договор
	hasContract, err := s.contractRepo.ExistsVigentByProperty(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("%w: ReconcileProperty - check vigent contracts: %v", ErrInternal, err)
	}
	if hasContract {
		s.logger.Info("ReconcileProperty: property=%d has a vigent contract", propertyID)
		return false, nil
	}

	// 3. Освобождаем объект
	if err := s.propertyRepo.UpdateStatus(ctx, propertyID, domain.PropertyStatusAvailable); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("ReconcileProperty: property=%d not found", propertyID)
			return false, nil
		}
		return false, fmt.Errorf("%w: ReconcileProperty - update property status: %v", ErrInternal, err)
	}

	s.logger.Info("ReconcileProperty: property=%d is available again", propertyID)
	return true, nil
}
