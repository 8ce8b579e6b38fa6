package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// CalendarConfig immutable scheduling rules.
// Build it with NewCalendarConfig; the With* methods return modified copies.
type CalendarConfig struct {
	Slots                    []types.TimeString // canonical order, ascending
	MaxFutureDays            int
	LeadMinutes              int
	MaxActiveVisitsPerClient int
	MaxVisitsPerDay          int
	DefaultAgendaDays        int
	MaxAgendaDays            int
	Location                 *time.Location
}

// DefaultCalendarConfig the stock rules in UTC
func DefaultCalendarConfig() CalendarConfig {
	cfg, _ := NewCalendarConfig(CalendarConfig{
		Slots:                    DefaultSlotCatalog,
		MaxFutureDays:            DefaultMaxFutureDays,
		LeadMinutes:              DefaultLeadMinutes,
		MaxActiveVisitsPerClient: DefaultMaxActiveVisitsPerClient,
		MaxVisitsPerDay:          DefaultMaxVisitsPerDay,
		DefaultAgendaDays:        DefaultAgendaDays,
		MaxAgendaDays:            DefaultMaxAgendaDays,
		Location:                 time.UTC,
	})
	return cfg
}

// NewCalendarConfig validates c and returns a normalized copy: slots are validated,
// deduplicated and sorted; a nil location means UTC.
func NewCalendarConfig(c CalendarConfig) (CalendarConfig, error) {
	if len(c.Slots) == 0 {
		return CalendarConfig{}, fmt.Errorf("%w: empty slot catalog", ErrInvalidCalendarConfig)
	}

	seen := make(map[types.TimeString]struct{}, len(c.Slots))
	slots := make([]types.TimeString, 0, len(c.Slots))
	for _, slot := range c.Slots {
		if err := slot.Validate(); err != nil {
			return CalendarConfig{}, fmt.Errorf("%w: %v", ErrInvalidCalendarConfig, err)
		}
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })

	switch {
	case c.MaxFutureDays < 0:
		return CalendarConfig{}, fmt.Errorf("%w: negative future window", ErrInvalidCalendarConfig)
	case c.LeadMinutes < 0:
		return CalendarConfig{}, fmt.Errorf("%w: negative lead minutes", ErrInvalidCalendarConfig)
	case c.MaxActiveVisitsPerClient < 1 || c.MaxVisitsPerDay < 1:
		return CalendarConfig{}, fmt.Errorf("%w: visit quotas must be positive", ErrInvalidCalendarConfig)
	case c.MaxAgendaDays < 1 || c.DefaultAgendaDays < 1 || c.DefaultAgendaDays > c.MaxAgendaDays:
		return CalendarConfig{}, fmt.Errorf("%w: agenda page size out of range", ErrInvalidCalendarConfig)
	}

	c.Slots = slots
	if c.Location == nil {
		c.Location = time.UTC
	}
	return c, nil
}

// WithMaxFutureDays returns a copy with a different future window
func (c CalendarConfig) WithMaxFutureDays(days int) CalendarConfig {
	c.Slots = c.CopySlots()
	c.MaxFutureDays = days
	return c
}

// WithLeadMinutes returns a copy with a different minimum lead time
func (c CalendarConfig) WithLeadMinutes(minutes int) CalendarConfig {
	c.Slots = c.CopySlots()
	c.LeadMinutes = minutes
	return c
}

// WithLocation returns a copy evaluated in loc
func (c CalendarConfig) WithLocation(loc *time.Location) CalendarConfig {
	c.Slots = c.CopySlots()
	c.Location = loc
	return c
}

// CopySlots returns the slot catalog as a fresh slice
func (c CalendarConfig) CopySlots() []types.TimeString {
	out := make([]types.TimeString, len(c.Slots))
	copy(out, c.Slots)
	return out
}
