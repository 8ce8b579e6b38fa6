package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// VisitReader чтение визитов, нужное валидатору
type VisitReader interface {
	// ExistsInSlot есть ли визит (в любом статусе) на объект в эту дату и слот
	ExistsInSlot(ctx context.Context, propertyID int64, date time.Time, slot types.TimeString, excludeID *int64) (bool, error)
	// CountActiveByInterested активные визиты клиента с датой >= fromDate
	CountActiveByInterested(ctx context.Context, interestedID int64, fromDate time.Time, excludeID *int64) (int, error)
	// CountActiveByInterestedOnDate активные визиты клиента в конкретную дату
	CountActiveByInterestedOnDate(ctx context.Context, interestedID int64, date time.Time, excludeID *int64) (int, error)
}

// HolidayReader проверка праздничных дней
type HolidayReader interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// Candidate визит, который собираются создать или изменить
type Candidate struct {
	PropertyID   int64
	InterestedID int64
	Date         time.Time
	Slot         types.TimeString
}

// Validator единая проверка допустимости визита для всех путей записи
// (создание, изменение, пробная проверка)
type Validator struct {
	rules    *Rules
	visits   VisitReader
	holidays HolidayReader
}

// NewValidator создает валидатор визитов
func NewValidator(rules *Rules, visits VisitReader, holidays HolidayReader) *Validator {
	return &Validator{
		rules:    rules,
		visits:   visits,
		holidays: holidays,
	}
}

// Rules правила календаря валидатора
func (v *Validator) Rules() *Rules {
	return v.rules
}

// Validate проверяет визит; первая неудачная проверка определяет ошибку.
// excludeID - ID самого визита при изменении, чтобы он не конфликтовал сам с собой.
// Побочных эффектов нет; для защиты от гонок вызывать внутри транзакции,
// в которой затем сохраняется визит.
func (v *Validator) Validate(ctx context.Context, c Candidate, excludeID *int64, now time.Time) error {
	today := v.rules.Today(now)
	date := v.rules.DateOf(c.Date)

	// 1. Окно бронирования
	if !v.rules.IsWithinFutureWindow(date, today) {
		return ErrOutOfWindow
	}

	// 2. Будний день
	if !v.rules.IsWeekday(date) {
		return ErrNonBusinessDay
	}

	// 3. Праздник
	holiday, err := v.holidays.IsHoliday(ctx, date)
	if err != nil {
		return fmt.Errorf("%w: holiday lookup: %v", ErrReadState, err)
	}
	if holiday {
		return ErrHoliday
	}

	// 4. Слот из каталога
	if !v.rules.IsAllowedSlot(c.Slot) {
		return ErrInvalidSlot
	}

	// 5. Слот не в прошлом и не слишком близко
	if !v.rules.IsNotPast(date, c.Slot, now) {
		return ErrPastOrTooSoon
	}

	// 6. Слот свободен (учитываются визиты в любом статусе)
	taken, err := v.visits.ExistsInSlot(ctx, c.PropertyID, date, c.Slot, excludeID)
	if err != nil {
		return fmt.Errorf("%w: slot lookup: %v", ErrReadState, err)
	}
	if taken {
		return ErrSlotTaken
	}

	cfg := v.rules.cfg

	// 7. Лимит активных будущих визитов клиента
	active, err := v.visits.CountActiveByInterested(ctx, c.InterestedID, today, excludeID)
	if err != nil {
		return fmt.Errorf("%w: client quota lookup: %v", ErrReadState, err)
	}
	if active >= cfg.MaxActiveVisitsPerClient {
		return ErrClientQuotaExceeded
	}

	// 8. Лимит активных визитов клиента в этот день
	sameDay, err := v.visits.CountActiveByInterestedOnDate(ctx, c.InterestedID, date, excludeID)
	if err != nil {
		return fmt.Errorf("%w: daily quota lookup: %v", ErrReadState, err)
	}
	if sameDay >= cfg.MaxVisitsPerDay {
		return ErrDailyQuotaExceeded
	}

	return nil
}
