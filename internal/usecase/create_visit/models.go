package create_visit

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Request модель запроса на запись на визит
type Request struct {
	Actor        domain.Actor     // Кто записывает
	PropertyID   int64            // ID объекта
	InterestedID int64            // ID клиента
	Date         time.Time        // Дата визита (без времени)
	Slot         types.TimeString // Слот, например "10:00"
	Notes        *string          // Заметки (опционально)
}
