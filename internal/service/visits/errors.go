package visits

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visits: visit not found")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("visits: property not found")

	// ErrInterestedNotFound возвращается, когда клиент не найден
	ErrInterestedNotFound = errors.New("visits: interested party not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("visits: access denied")

	// ErrInvalidStatus возвращается при неизвестном статусе визита
	ErrInvalidStatus = errors.New("visits: invalid status")

	// ErrInvalidTransition возвращается, когда переход статуса запрещён
	ErrInvalidTransition = errors.New("visits: status transition is not allowed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("visits: internal error")
)
