package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

func TestRules_ClampDays(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	assert.Equal(t, 14, rules.ClampDays(nil))
	assert.Equal(t, 1, rules.ClampDays(ptr.Ptr(0)))
	assert.Equal(t, 1, rules.ClampDays(ptr.Ptr(-5)))
	assert.Equal(t, 7, rules.ClampDays(ptr.Ptr(7)))
	assert.Equal(t, 31, rules.ClampDays(ptr.Ptr(40)))
}

func TestRules_BuildAgenda_BusinessDaysOnly(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	agenda := rules.BuildAgenda(nil, 6, testNow, domain.HolidaySet{}, Occupancy{})

	require.Len(t, agenda, 6)
	// monday..friday, then next monday
	wantDates := []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07", "2025-03-10"}
	wantWeekdays := []int{0, 1, 2, 3, 4, 0}
	for i, d := range agenda {
		assert.Equal(t, wantDates[i], d.Date.Format(domain.DateFormat))
		assert.Equal(t, wantWeekdays[i], d.Weekday)
	}
	// today starts at the current hour
	assert.Equal(t, types.TimeString("10:00"), agenda[0].Slots[0])
	assert.Equal(t, domain.DefaultSlotCatalog, agenda[1].Slots)
}

func TestRules_BuildAgenda_RoundTrip(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())
	holidays := domain.NewHolidaySet([]*domain.Holiday{{Date: day(3), Label: "Feriado"}})

	var visits []*domain.Visit
	// tuesday fully booked, one of them cancelled: still occupies
	for _, slot := range domain.DefaultSlotCatalog {
		visits = append(visits, &domain.Visit{PropertyID: 1, Date: day(1), Slot: slot, Status: domain.VisitStatusCancelled})
	}
	// wednesday has exactly one free slot
	for _, slot := range domain.DefaultSlotCatalog[1:] {
		visits = append(visits, &domain.Visit{PropertyID: 1, Date: day(2), Slot: slot, Status: domain.VisitStatusScheduled})
	}

	agenda := rules.BuildAgenda(nil, 31, testNow, holidays, NewOccupancy(visits))

	dates := make(map[string][]types.TimeString)
	for _, d := range agenda {
		dates[d.Date.Format(domain.DateFormat)] = d.Slots
	}

	assert.NotContains(t, dates, "2025-03-04", "date without free slots never appears")
	assert.Equal(t, []types.TimeString{"09:00"}, dates["2025-03-05"], "date with a free slot appears")
	assert.NotContains(t, dates, "2025-03-06", "holiday is skipped")
	assert.NotContains(t, dates, "2025-03-08", "saturday is skipped")
}

func TestRules_BuildAgenda_WindowBound(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())
	windowEnd := rules.WindowEnd(rules.Today(testNow))

	agenda := rules.BuildAgenda(ptr.Ptr(day(0)), rules.ClampDays(ptr.Ptr(40)), testNow, domain.HolidaySet{}, Occupancy{})

	assert.LessOrEqual(t, len(agenda), 31)
	assert.NotEmpty(t, agenda)
	for _, d := range agenda {
		assert.False(t, d.Date.After(windowEnd), d.Date.Format(domain.DateFormat))
	}
	// 2025-03-03 .. 2025-04-02: 23 weekdays
	assert.Len(t, agenda, 23)
	assert.Equal(t, "2025-04-02", agenda[len(agenda)-1].Date.Format(domain.DateFormat))
}

func TestRules_BuildAgenda_Pagination(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	first := rules.BuildAgenda(nil, 3, testNow, domain.HolidaySet{}, Occupancy{})
	require.Len(t, first, 3)

	next := first[len(first)-1].Date.AddDate(0, 0, 1)
	second := rules.BuildAgenda(&next, 3, testNow, domain.HolidaySet{}, Occupancy{})
	require.Len(t, second, 3)

	assert.True(t, second[0].Date.After(first[2].Date))
	assert.Equal(t, "2025-03-06", second[0].Date.Format(domain.DateFormat))
}

func TestRules_BuildAgenda_StartBeyondWindow(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())

	agenda := rules.BuildAgenda(ptr.Ptr(day(31)), 14, testNow, domain.HolidaySet{}, Occupancy{})

	assert.Empty(t, agenda)
}

func TestRules_AgendaRange_PastStartClampedToToday(t *testing.T) {
	rules := NewRules(domain.DefaultCalendarConfig())
	today := rules.Today(testNow)

	from, to, ok := rules.AgendaRange(ptr.Ptr(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)), testNow)

	require.True(t, ok)
	assert.True(t, from.Equal(today))
	assert.True(t, to.Equal(rules.WindowEnd(today)))

	agenda := rules.BuildAgenda(ptr.Ptr(day(-10)), 3, testNow, domain.HolidaySet{}, Occupancy{})
	require.Len(t, agenda, 3)
	assert.Equal(t, "2025-03-03", agenda[0].Date.Format(domain.DateFormat))
}
