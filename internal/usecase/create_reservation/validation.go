package create_reservation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.InterestedID <= 0 {
		return fmt.Errorf("%w: interestedID must be positive", ErrInvalidInput)
	}

	if req.Deposit.IsNegative() {
		return fmt.Errorf("%w: deposit must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// mapExpiryError переводит ошибку проверки срока в ошибку usecase
func mapExpiryError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingExpiry):
		return ErrMissingExpiry
	case errors.Is(err, domain.ErrExpiryNotFuture):
		return ErrExpiryNotFuture
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
