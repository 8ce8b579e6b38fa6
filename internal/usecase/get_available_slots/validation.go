package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID < 0 {
		return fmt.Errorf("%w: propertyID must not be negative", ErrInvalidInput)
	}
	return nil
}

// isCatalogRequest запрос без объекта или даты
func isCatalogRequest(req *Request) bool {
	return req.PropertyID == 0 || req.Date.IsZero()
}
