package create_visit

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("create_visit: property not found")

	// ErrInterestedNotFound возвращается, когда клиент не найден
	ErrInterestedNotFound = errors.New("create_visit: interested party not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_visit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_visit: internal error")
)
