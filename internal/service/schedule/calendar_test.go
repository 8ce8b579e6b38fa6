package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

func TestRules_IsWithinFutureWindow(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())
	today := rules.Today(testNow)

	assert.True(t, rules.IsWithinFutureWindow(day(0), today))
	assert.True(t, rules.IsWithinFutureWindow(day(30), today))
	assert.False(t, rules.IsWithinFutureWindow(day(31), today))
	assert.False(t, rules.IsWithinFutureWindow(day(-1), today))

	short := NewRules(domain.DefaultCalendarConfig().WithMaxFutureDays(2))
	assert.True(t, short.IsWithinFutureWindow(day(2), today))
	assert.False(t, short.IsWithinFutureWindow(day(3), today))
}

func TestRules_IsBusinessDay(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())
	holidays := domain.NewHolidaySet([]*domain.Holiday{{Date: day(2), Label: "Feriado"}})

	assert.True(t, rules.IsBusinessDay(day(0), holidays))  // monday
	assert.False(t, rules.IsBusinessDay(day(2), holidays)) // holiday wednesday
	assert.True(t, rules.IsBusinessDay(day(4), holidays))  // friday
	assert.False(t, rules.IsBusinessDay(day(5), holidays)) // saturday
	assert.False(t, rules.IsBusinessDay(day(6), holidays)) // sunday
}

func TestRules_IsAllowedSlot(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	for _, slot := range domain.DefaultSlotCatalog {
		assert.True(t, rules.IsAllowedSlot(slot), slot)
	}
	for _, slot := range []types.TimeString{"08:00", "09:30", "14:00", "15:00", "19:00", ""} {
		assert.False(t, rules.IsAllowedSlot(slot), slot)
	}
}

func TestRules_IsNotPast(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	assert.False(t, rules.IsNotPast(day(-1), "18:00", testNow))
	assert.True(t, rules.IsNotPast(day(1), "09:00", testNow))

	assert.False(t, rules.IsNotPast(day(0), "09:00", testNow))
	assert.True(t, rules.IsNotPast(day(0), "10:00", testNow), "slot starting exactly now is allowed")
	assert.True(t, rules.IsNotPast(day(0), "11:00", testNow))

	lead := NewRules(domain.DefaultCalendarConfig().WithLeadMinutes(90))
	assert.False(t, lead.IsNotPast(day(0), "11:00", testNow))
	assert.True(t, lead.IsNotPast(day(0), "12:00", testNow))
}

func TestRules_TimeZone(t *testing.T) {
	zone := time.FixedZone("CLT", -3*60*60)
	rules := NewRules(domain.DefaultCalendarConfig().WithLocation(zone))

	// 02:00 UTC on tuesday is still monday 23:00 in the calendar zone
	now := time.Date(2025, 3, 4, 2, 0, 0, 0, time.UTC)
	today := rules.Today(now)

	assert.Equal(t, "2025-03-03", today.Format(domain.DateFormat))
	assert.False(t, rules.IsNotPast(day(0), "18:00", now))
	assert.True(t, rules.IsNotPast(day(1), "09:00", now))
}

func TestRules_SlotsIsCopy(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	slots := rules.Slots()
	slots[0] = "07:00"

	assert.Equal(t, types.TimeString("09:00"), rules.Slots()[0])
}
