package update_visit

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("update_visit: visit not found")

	// ErrVisitNotEditable возвращается при попытке изменить завершённый или отменённый визит
	ErrVisitNotEditable = errors.New("update_visit: visit is done or cancelled")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("update_visit: property not found")

	// ErrInterestedNotFound возвращается, когда клиент не найден
	ErrInterestedNotFound = errors.New("update_visit: interested party not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_visit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_visit: internal error")
)
