package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Request модель запроса свободных слотов
// Нулевые PropertyID или Date означают запрос без контекста: возвращается весь каталог
type Request struct {
	PropertyID int64     // ID объекта
	Date       time.Time // Дата визита (без времени)
}

// Response модель ответа со свободными слотами в каноническом порядке
type Response struct {
	PropertyID int64
	Date       time.Time
	Slots      []types.TimeString
}
