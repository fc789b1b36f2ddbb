package deliveries

import "errors"

var (
	// ErrDeliveryNotFound доставка не найдена
	ErrDeliveryNotFound = errors.New("service.deliveries: delivery not found")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("service.deliveries: internal error")
)
