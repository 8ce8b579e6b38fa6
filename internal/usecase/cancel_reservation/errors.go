package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда отменяет не владелец объекта и не администратор
	ErrAccessDenied = errors.New("cancel_reservation: access denied")

	// ErrCancelWindowClosed возвращается, когда резервация уже неактивна или её срок истёк
	ErrCancelWindowClosed = errors.New("cancel_reservation: reservation is no longer cancellable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
