package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// Request модель запроса на создание резервации
type Request struct {
	Actor        domain.Actor    // Кто резервирует
	PropertyID   int64           // ID объекта
	InterestedID int64           // ID клиента
	ExpiresAt    *time.Time      // Срок (nil - сейчас + срок по умолчанию)
	Deposit      decimal.Decimal // Сумма залога
	Notes        *string         // Заметки (опционально)
}
