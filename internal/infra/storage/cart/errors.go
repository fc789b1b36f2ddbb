package cart

import "errors"

var (
	// ErrCartNotFound возвращается, когда корзина не найдена
	ErrCartNotFound = errors.New("cart.repository: cart not found")

	// ErrItemNotFound возвращается, когда позиция корзины не найдена
	ErrItemNotFound = errors.New("cart.repository: cart item not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cart.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cart.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cart.repository: failed to scan row")
)
