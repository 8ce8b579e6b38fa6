package cancel_reservation

import "github.com/m04kA/SMC-VisitScheduler/internal/domain"

// Request модель запроса на отмену резервации
type Request struct {
	Actor         domain.Actor // Кто отменяет
	ReservationID int64        // ID резервации
}
