package domain

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// VisitStatus represents the status of a property visit
type VisitStatus string

const (
	VisitStatusScheduled VisitStatus = "scheduled"
	VisitStatusConfirmed VisitStatus = "confirmed"
	VisitStatusDone      VisitStatus = "done"
	VisitStatusCancelled VisitStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s VisitStatus) IsValid() bool {
	switch s {
	case VisitStatusScheduled, VisitStatusConfirmed, VisitStatusDone, VisitStatusCancelled:
		return true
	}
	return false
}

// Visit an interested party's visit to a property in one slot.
// (PropertyID, Date, Slot) is unique among all visits regardless of status.
type Visit struct {
	ID           int64
	PropertyID   int64
	InterestedID int64
	Date         time.Time // calendar date, time part is ignored
	Slot         types.TimeString
	Status       VisitStatus
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the visit counts toward client quotas
func (v *Visit) IsActive() bool {
	return v.Status == VisitStatusScheduled || v.Status == VisitStatusConfirmed
}

// IsTerminal returns true if the status can no longer change
func (v *Visit) IsTerminal() bool {
	return v.Status == VisitStatusDone || v.Status == VisitStatusCancelled
}

// CanTransitionTo reports whether the visit may move to next:
// scheduled -> confirmed -> done, scheduled|confirmed -> cancelled
func (v *Visit) CanTransitionTo(next VisitStatus) bool {
	switch v.Status {
	case VisitStatusScheduled:
		return next == VisitStatusConfirmed || next == VisitStatusCancelled
	case VisitStatusConfirmed:
		return next == VisitStatusDone || next == VisitStatusCancelled
	default:
		return false
	}
}

// VisitsFilter filter for visit lookups
type VisitsFilter struct {
	PropertyID   *int64
	InterestedID *int64
	FromDate     *time.Time // inclusive
	ToDate       *time.Time // inclusive
	Statuses     []VisitStatus
	ExcludeID    *int64
}
