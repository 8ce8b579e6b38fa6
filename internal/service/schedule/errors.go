package schedule

import "errors"

var (
	// ErrOutOfWindow дата вне окна [сегодня, сегодня+MaxFutureDays]
	ErrOutOfWindow = errors.New("schedule: date is outside the booking window")

	// ErrNonBusinessDay дата выпадает на выходной
	ErrNonBusinessDay = errors.New("schedule: date is not a business day")

	// ErrHoliday дата является праздником
	ErrHoliday = errors.New("schedule: date is a holiday")

	// ErrInvalidSlot время не входит в каталог слотов
	ErrInvalidSlot = errors.New("schedule: time is not an allowed slot")

	// ErrPastOrTooSoon слот в прошлом или раньше минимального времени до визита
	ErrPastOrTooSoon = errors.New("schedule: slot is in the past or too soon")

	// ErrSlotTaken слот уже занят другим визитом на этот объект
	ErrSlotTaken = errors.New("schedule: slot is already taken")

	// ErrClientQuotaExceeded у клиента слишком много активных будущих визитов
	ErrClientQuotaExceeded = errors.New("schedule: client has too many active visits")

	// ErrDailyQuotaExceeded у клиента слишком много активных визитов в этот день
	ErrDailyQuotaExceeded = errors.New("schedule: client has too many visits on this date")

	// ErrReadState ошибка чтения визитов или праздников
	ErrReadState = errors.New("schedule: failed to read schedule state")
)

// Коды ошибок, отдаются клиенту и используются как метка метрик
const (
	KindOutOfWindow         = "OutOfWindow"
	KindNonBusinessDay      = "NonBusinessDay"
	KindHoliday             = "Holiday"
	KindInvalidSlot         = "InvalidSlot"
	KindPastOrTooSoon       = "PastOrTooSoon"
	KindSlotTaken           = "SlotTaken"
	KindClientQuotaExceeded = "ClientQuotaExceeded"
	KindDailyQuotaExceeded  = "DailyQuotaExceeded"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrOutOfWindow, KindOutOfWindow},
	{ErrNonBusinessDay, KindNonBusinessDay},
	{ErrHoliday, KindHoliday},
	{ErrInvalidSlot, KindInvalidSlot},
	{ErrPastOrTooSoon, KindPastOrTooSoon},
	{ErrSlotTaken, KindSlotTaken},
	{ErrClientQuotaExceeded, KindClientQuotaExceeded},
	{ErrDailyQuotaExceeded, KindDailyQuotaExceeded},
}

// KindOf возвращает код ошибки валидации визита
// Второе значение false, если err не является ошибкой валидации
func KindOf(err error) (string, bool) {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind, true
		}
	}
	return "", false
}

// IsValidationError сообщает, является ли err отказом валидатора (а не внутренней ошибкой)
func IsValidationError(err error) bool {
	_, ok := KindOf(err)
	return ok
}
