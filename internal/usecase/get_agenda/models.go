package get_agenda

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Request модель запроса агенды
type Request struct {
	PropertyID int64      // ID объекта
	Start      *time.Time // Первая дата (nil - сегодня)
	Days       *int       // Сколько дней вернуть (nil - значение по умолчанию)
}

// Day рабочий день со свободными слотами
type Day struct {
	Date    time.Time
	Weekday int // 0 = понедельник
	Slots   []types.TimeString
}

// Response модель ответа агенды
type Response struct {
	PropertyID int64
	Days       []Day
}
