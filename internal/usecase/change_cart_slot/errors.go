package change_cart_slot

import "errors"

var (
	// ErrCartNotFound возвращается, когда корзина не найдена
	ErrCartNotFound = errors.New("change_cart_slot: cart not found")

	// ErrSlotNotFound возвращается, когда запрошенный слот не найден
	ErrSlotNotFound = errors.New("change_cart_slot: slot not found")

	// ErrNotCartOwner возвращается, когда корзина принадлежит другому пользователю
	ErrNotCartOwner = errors.New("change_cart_slot: cart belongs to another user")

	// ErrCartFinalized возвращается для корзин в терминальном статусе
	ErrCartFinalized = errors.New("change_cart_slot: cart is already delivered or abandoned")

	// ErrSlotFull возвращается, когда запрошенный слот заполнен
	ErrSlotFull = errors.New("change_cart_slot: slot is full")

	// ErrWrongDelivery возвращается, когда слот принадлежит другой доставке
	ErrWrongDelivery = errors.New("change_cart_slot: slot belongs to another delivery")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_cart_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_cart_slot: internal error")
)
