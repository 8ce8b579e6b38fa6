package visits

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	interestedRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/interested"
	propertyRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/property"
)

// CheckAccess проверяет, что пользователь может управлять визитом клиента на объект:
// администратор - всегда, владелец - только на свои объекты,
// клиент - только от своего имени.
func (s *Service) CheckAccess(ctx context.Context, actor domain.Actor, propertyID, interestedID int64) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil

	case domain.RoleOwner:
		property, err := s.propertyRepo.GetByID(ctx, propertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("%w: CheckAccess - failed to get property: %v", ErrInternal, err)
		}
		if property.IsOwnedBy(actor.UserID) {
			return nil
		}

	case domain.RoleClient:
		party, err := s.interestedRepo.GetByID(ctx, interestedID)
		if err != nil {
			if errors.Is(err, interestedRepo.ErrInterestedNotFound) {
				return ErrInterestedNotFound
			}
			return fmt.Errorf("%w: CheckAccess - failed to get interested party: %v", ErrInternal, err)
		}
		if party.UserID != nil && *party.UserID == actor.UserID {
			return nil
		}
	}

	s.logger.Warn("CheckAccess: user=%d role=%s denied for property=%d interested=%d",
		actor.UserID, actor.Role, propertyID, interestedID)
	return ErrAccessDenied
}
