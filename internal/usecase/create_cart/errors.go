package create_cart

import "errors"

var (
	// ErrDeliveryNotFound возвращается, когда доставка не найдена
	ErrDeliveryNotFound = errors.New("create_cart: delivery not found")

	// ErrDeliveryFull возвращается, когда у доставки нет свободного слота.
	// Это не исключительная ситуация, а штатный результат: обработчик
	// сообщает покупателю, что доставка заполнена, ничего не изменяя
	ErrDeliveryFull = errors.New("create_cart: delivery is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_cart: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_cart: internal error")
)
