package schedule

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Rules правила календаря: какие дату и время вообще можно забронировать,
// без учёта занятости. Все методы чистые, текущее время передаётся параметром.
type Rules struct {
	cfg domain.CalendarConfig
}

// NewRules создаёт правила поверх неизменяемой конфигурации
func NewRules(cfg domain.CalendarConfig) *Rules {
	if cfg.Location == nil {
		cfg = cfg.WithLocation(time.UTC)
	}
	return &Rules{cfg: cfg.WithMaxFutureDays(cfg.MaxFutureDays)}
}

// Config возвращает копию конфигурации
func (r *Rules) Config() domain.CalendarConfig {
	return r.cfg.WithMaxFutureDays(r.cfg.MaxFutureDays)
}

// Location часовой пояс, в котором считаются даты
func (r *Rules) Location() *time.Location {
	return r.cfg.Location
}

// Slots каталог слотов в каноническом порядке (копия)
func (r *Rules) Slots() []types.TimeString {
	return r.cfg.CopySlots()
}

// DateOf приводит дату к полуночи в часовом поясе календаря.
// Берутся год, месяц и день самого значения, без перевода в другой пояс.
func (r *Rules) DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.cfg.Location)
}

// Today текущая дата в часовом поясе календаря
func (r *Rules) Today(now time.Time) time.Time {
	return r.DateOf(now.In(r.cfg.Location))
}

// WindowEnd последняя дата, доступная для бронирования
func (r *Rules) WindowEnd(today time.Time) time.Time {
	return r.DateOf(today).AddDate(0, 0, r.cfg.MaxFutureDays)
}

// IsWeekday true для понедельника - пятницы
func (r *Rules) IsWeekday(date time.Time) bool {
	wd := date.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// IsBusinessDay true для будних дней, не входящих в набор праздников
func (r *Rules) IsBusinessDay(date time.Time, holidays domain.HolidaySet) bool {
	return r.IsWeekday(date) && !holidays.Contains(date)
}

// IsWithinFutureWindow true, если 0 <= (date - today) <= MaxFutureDays в днях
func (r *Rules) IsWithinFutureWindow(date, today time.Time) bool {
	diff := daysBetween(today, date)
	return diff >= 0 && diff <= r.cfg.MaxFutureDays
}

// IsAllowedSlot true, если время входит в каталог
func (r *Rules) IsAllowedSlot(t types.TimeString) bool {
	for _, slot := range r.cfg.Slots {
		if slot == t {
			return true
		}
	}
	return false
}

// IsNotPast false для прошедших дат, true для будущих;
// для сегодняшней даты слот должен начинаться не раньше now + LeadMinutes
func (r *Rules) IsNotPast(date time.Time, t types.TimeString, now time.Time) bool {
	localNow := now.In(r.cfg.Location)
	diff := daysBetween(r.DateOf(localNow), date)
	if diff < 0 {
		return false
	}
	if diff > 0 {
		return true
	}

	slotStart, err := t.OnDate(r.DateOf(date))
	if err != nil {
		return false
	}
	cutoff := localNow.Add(time.Duration(r.cfg.LeadMinutes) * time.Minute)
	return !slotStart.Before(cutoff)
}

// daysBetween количество календарных дней от a до b (по полям год/месяц/день)
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
