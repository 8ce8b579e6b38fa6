package domain

import "time"

// Holiday a non-working date, unique by date
type Holiday struct {
	Date      time.Time
	Label     string
	CreatedAt time.Time
}

// HolidaySet holidays keyed by DateFormat
type HolidaySet map[string]string

// NewHolidaySet builds a set from a list of holidays
func NewHolidaySet(holidays []*Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format(DateFormat)] = h.Label
	}
	return set
}

// Contains reports whether the calendar date of date is a holiday
func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[date.Format(DateFormat)]
	return ok
}

// Label returns the holiday label for date
func (s HolidaySet) Label(date time.Time) (string, bool) {
	label, ok := s[date.Format(DateFormat)]
	return label, ok
}
