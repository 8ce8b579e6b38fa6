package domain

import "errors"

var (
	// ErrInvalidCalendarConfig returned by NewCalendarConfig for inconsistent settings
	ErrInvalidCalendarConfig = errors.New("domain: invalid calendar config")

	// ErrMissingExpiry an active reservation has no expiry timestamp
	ErrMissingExpiry = errors.New("domain: active reservation requires an expiry")

	// ErrExpiryNotFuture the expiry of an active reservation is not strictly in the future
	ErrExpiryNotFuture = errors.New("domain: reservation expiry must be in the future")
)
