package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationState derived lifecycle state of a reservation
type ReservationState string

const (
	ReservationStateActive    ReservationState = "ACTIVE"
	ReservationStateExpired   ReservationState = "EXPIRED"
	ReservationStateCancelled ReservationState = "CANCELLED"
	ReservationStateClosed    ReservationState = "CLOSED"
)

// ClosedReason why an inactive reservation was deactivated
type ClosedReason string

const (
	ClosedReasonCancelled ClosedReason = "cancelled"
	ClosedReasonExpired   ClosedReason = "expired"
)

// Reservation exclusive hold over a property.
// At most one active reservation exists per property.
type Reservation struct {
	ID           int64
	PropertyID   int64
	InterestedID int64
	CreatedBy    int64
	CreatedAt    time.Time
	ExpiresAt    *time.Time
	Deposit      decimal.Decimal
	Notes        *string
	Active       bool
	ClosedReason *ClosedReason
	ClosedAt     *time.Time
}

// State derives the lifecycle state at now.
// An active reservation whose expiry is not after now is EXPIRED until the sweep closes it.
func (r *Reservation) State(now time.Time) ReservationState {
	if r.Active {
		if r.ExpiresAt != nil && !r.ExpiresAt.After(now) {
			return ReservationStateExpired
		}
		return ReservationStateActive
	}
	if r.ClosedReason != nil && *r.ClosedReason == ClosedReasonExpired {
		return ReservationStateClosed
	}
	return ReservationStateCancelled
}

// ValidateForCreate checks that an active reservation carries an expiry strictly after now
func (r *Reservation) ValidateForCreate(now time.Time) error {
	if !r.Active {
		return nil
	}
	if r.ExpiresAt == nil {
		return ErrMissingExpiry
	}
	if !r.ExpiresAt.After(now) {
		return ErrExpiryNotFuture
	}
	return nil
}

// CanBeCancelled returns true while the reservation is active and not yet expired
func (r *Reservation) CanBeCancelled(now time.Time) bool {
	return r.State(now) == ReservationStateActive
}

// IsExpiredAt returns true if the reservation is active and the sweep should release it at now
func (r *Reservation) IsExpiredAt(now time.Time) bool {
	return r.Active && r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}

// ExpiryCursor position in the (expires_at, id) order used to page expired reservations
type ExpiryCursor struct {
	ExpiresAt time.Time
	ID        int64
}

// CursorAfter cursor pointing just past r; ok is false when r has no expiry
func CursorAfter(r *Reservation) (ExpiryCursor, bool) {
	if r == nil || r.ExpiresAt == nil {
		return ExpiryCursor{}, false
	}
	return ExpiryCursor{ExpiresAt: *r.ExpiresAt, ID: r.ID}, true
}

// Before reports whether the cursor sorts before r in (expires_at, id) order
func (c ExpiryCursor) Before(r *Reservation) bool {
	if r.ExpiresAt == nil {
		return false
	}
	if r.ExpiresAt.Equal(c.ExpiresAt) {
		return c.ID < r.ID
	}
	return c.ExpiresAt.Before(*r.ExpiresAt)
}
