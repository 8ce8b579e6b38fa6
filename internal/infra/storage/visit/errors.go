package visit

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visit.repository: visit not found")

	// ErrStatusChanged возвращается, когда статус визита изменился с момента чтения
	ErrStatusChanged = errors.New("visit.repository: visit status changed concurrently")

	// ErrSlotTaken возвращается при нарушении уникальности (объект, дата, слот)
	ErrSlotTaken = errors.New("visit.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("visit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("visit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("visit.repository: failed to scan row")
)
