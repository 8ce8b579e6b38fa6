package sweep_expired_reservations

import "errors"

var (
	// ErrInternal внутренняя ошибка при освобождении резерваций
	ErrInternal = errors.New("sweep_expired_reservations: internal error")
)
