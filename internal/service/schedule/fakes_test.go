package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

type memVisits struct {
	visits []*domain.Visit
	err    error
}

func (m *memVisits) add(v domain.Visit) {
	v.ID = int64(len(m.visits) + 1)
	m.visits = append(m.visits, &v)
}

func sameDate(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

func excluded(v *domain.Visit, excludeID *int64) bool {
	return excludeID != nil && v.ID == *excludeID
}

func (m *memVisits) ExistsInSlot(_ context.Context, propertyID int64, date time.Time, slot types.TimeString, excludeID *int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, v := range m.visits {
		if v.PropertyID == propertyID && sameDate(v.Date, date) && v.Slot == slot && !excluded(v, excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memVisits) CountActiveByInterested(_ context.Context, interestedID int64, fromDate time.Time, excludeID *int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, v := range m.visits {
		if v.InterestedID == interestedID && v.IsActive() && !excluded(v, excludeID) &&
			v.Date.Format(domain.DateFormat) >= fromDate.Format(domain.DateFormat) {
			n++
		}
	}
	return n, nil
}

func (m *memVisits) CountActiveByInterestedOnDate(_ context.Context, interestedID int64, date time.Time, excludeID *int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, v := range m.visits {
		if v.InterestedID == interestedID && v.IsActive() && !excluded(v, excludeID) && sameDate(v.Date, date) {
			n++
		}
	}
	return n, nil
}

type memHolidays struct {
	set domain.HolidaySet
}

func (m *memHolidays) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	return m.set.Contains(date), nil
}

// monday 2025-03-03 10:00 UTC
var testNow = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2025, 3, 3+offset, 0, 0, 0, 0, time.UTC)
}
