package reservations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// recipients пользователи, которых уведомляем о резервации
type recipients struct {
	property    *domain.Property
	party       *domain.InterestedParty
	ownerUserID *int64
	clientUser  *int64
}

// NotifyCreated уведомляет владельца и клиента о новой резервации
// Ошибки доставки логируются и не возвращаются
func (s *Service) NotifyCreated(ctx context.Context, reservation *domain.Reservation) {
	rcpt, ok := s.resolve(ctx, reservation)
	if !ok {
		return
	}

	expires := s.formatExpiry(reservation)

	s.send(ctx, rcpt.ownerUserID,
		"Новая резервация вашего объекта",
		fmt.Sprintf("Объект «%s» зарезервирован клиентом %s. Резервация действует до %s.",
			rcpt.property.Title, rcpt.party.FullName, expires))

	s.send(ctx, rcpt.clientUser,
		"Резервация создана",
		fmt.Sprintf("Вы зарезервировали «%s». Резервация действует до %s.", rcpt.property.Title, expires))
}

// NotifyExpired уведомляет владельца и клиента об истечении резервации
func (s *Service) NotifyExpired(ctx context.Context, reservation *domain.Reservation) {
	rcpt, ok := s.resolve(ctx, reservation)
	if !ok {
		return
	}

	s.send(ctx, rcpt.ownerUserID,
		"Резервация истекла",
		fmt.Sprintf("Резервация объекта «%s» истекла и снята.", rcpt.property.Title))

	s.send(ctx, rcpt.clientUser,
		"Ваша резервация истекла",
		fmt.Sprintf("Истёк срок резервации объекта «%s».", rcpt.property.Title))
}

func (s *Service) resolve(ctx context.Context, reservation *domain.Reservation) (recipients, bool) {
	property, err := s.propertyRepo.GetByID(ctx, reservation.PropertyID)
	if err != nil {
		s.logger.Error("notify: reservation=%d: failed to get property id=%d: %v",
			reservation.ID, reservation.PropertyID, err)
		return recipients{}, false
	}

	party, err := s.interestedRepo.GetByID(ctx, reservation.InterestedID)
	if err != nil {
		s.logger.Error("notify: reservation=%d: failed to get interested id=%d: %v",
			reservation.ID, reservation.InterestedID, err)
		return recipients{}, false
	}

	return recipients{
		property:    property,
		party:       party,
		ownerUserID: property.OwnerUserID,
		clientUser:  party.UserID,
	}, true
}

func (s *Service) send(ctx context.Context, userID *int64, title, message string) {
	if userID == nil {
		return
	}
	if err := s.notifier.Notify(ctx, *userID, title, message, domain.NotificationCategoryReservation); err != nil {
		s.logger.Warn("notify: failed to notify user=%d: %v", *userID, err)
	}
}

func (s *Service) formatExpiry(reservation *domain.Reservation) string {
	if reservation.ExpiresAt == nil {
		return "-"
	}
	return reservation.ExpiresAt.In(s.location).Format(expiryLayout)
}
