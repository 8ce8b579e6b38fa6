package holidays

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("holidays: holiday not found")

	// ErrHolidayAlreadyExists возвращается при попытке добавить второй праздник на ту же дату
	ErrHolidayAlreadyExists = errors.New("holidays: holiday already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("holidays: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("holidays: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays: internal error")
)
