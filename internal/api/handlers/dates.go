package handlers

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(domain.DateFormat, raw)
}

// ParseOptionalDate пустая строка - nil
func ParseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
