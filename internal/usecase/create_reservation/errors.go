package create_reservation

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("create_reservation: property not found")

	// ErrInterestedNotFound возвращается, когда клиент не найден
	ErrInterestedNotFound = errors.New("create_reservation: interested party not found")

	// ErrAccessDenied возвращается, когда резервирует не администратор и не владелец объекта
	ErrAccessDenied = errors.New("create_reservation: access denied")

	// ErrReservationConflict возвращается, когда на объект уже есть активная резервация
	ErrReservationConflict = errors.New("create_reservation: property already has an active reservation")

	// ErrContractConflict возвращается, когда на объект есть действующий договор
	ErrContractConflict = errors.New("create_reservation: property has a vigent contract")

	// ErrMissingExpiry возвращается, когда у активной резервации нет срока
	ErrMissingExpiry = errors.New("create_reservation: expiry is required")

	// ErrExpiryNotFuture возвращается, когда срок резервации не в будущем
	ErrExpiryNotFuture = errors.New("create_reservation: expiry must be in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
