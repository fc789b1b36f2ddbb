package delivery

import "errors"

var (
	// ErrDeliveryNotFound возвращается, когда доставка не найдена
	ErrDeliveryNotFound = errors.New("delivery.repository: delivery not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("delivery.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("delivery.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("delivery.repository: failed to scan row")
)
