package schedule

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// AgendaDay рабочий день, в котором есть хотя бы один свободный слот
type AgendaDay struct {
	Date    time.Time
	Weekday int // 0 = понедельник ... 4 = пятница
	Slots   []types.TimeString
}

// ClampDays нормализует размер страницы агенды:
// nil - значение по умолчанию, иначе ограничение в [1, MaxAgendaDays]
func (r *Rules) ClampDays(days *int) int {
	if days == nil {
		return r.cfg.DefaultAgendaDays
	}
	if *days < 1 {
		return 1
	}
	if *days > r.cfg.MaxAgendaDays {
		return r.cfg.MaxAgendaDays
	}
	return *days
}

// AgendaRange диапазон дат, который обходит агенда: от max(start, сегодня)
// до сегодня + MaxFutureDays включительно. ok=false, если диапазон пуст.
func (r *Rules) AgendaRange(start *time.Time, now time.Time) (from, to time.Time, ok bool) {
	today := r.Today(now)
	from = today
	if start != nil && !start.IsZero() {
		if s := r.DateOf(*start); s.After(today) {
			from = s
		}
	}
	to = r.WindowEnd(today)
	return from, to, daysBetween(from, to) >= 0
}

// BuildAgenda обходит даты по возрастанию и возвращает не более days рабочих дней
// со свободными слотами. Состояния между вызовами нет: следующая страница
// запрашивается с более поздним start.
func (r *Rules) BuildAgenda(
	start *time.Time,
	days int,
	now time.Time,
	holidays domain.HolidaySet,
	occupancy Occupancy,
) []AgendaDay {
	result := make([]AgendaDay, 0)

	from, to, ok := r.AgendaRange(start, now)
	if !ok || days < 1 {
		return result
	}

	span := daysBetween(from, to)
	for i := 0; i <= span && len(result) < days; i++ {
		date := r.DateOf(from.AddDate(0, 0, i))
		if !r.IsBusinessDay(date, holidays) {
			continue
		}

		free := r.FreeSlots(date, now, occupancy.At(date))
		if len(free) == 0 {
			continue
		}

		result = append(result, AgendaDay{
			Date:    date,
			Weekday: mondayBasedWeekday(date),
			Slots:   free,
		})
	}

	return result
}

func mondayBasedWeekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
