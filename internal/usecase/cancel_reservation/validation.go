package cancel_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	return nil
}

// canCancel отменять может администратор или владелец объекта
func canCancel(actor domain.Actor, property *domain.Property) bool {
	return actor.IsAdmin() || property.IsOwnedBy(actor.UserID)
}
