package carts

import "errors"

var (
	// ErrCartNotFound корзина не найдена
	ErrCartNotFound = errors.New("service.carts: cart not found")

	// ErrItemNotFound позиция не найдена в корзине
	ErrItemNotFound = errors.New("service.carts: item not found")

	// ErrArticleNotFound товар не найден в каталоге
	ErrArticleNotFound = errors.New("service.carts: article not found")

	// ErrAccessDenied корзина принадлежит другому пользователю
	ErrAccessDenied = errors.New("service.carts: access denied")

	// ErrCartFinalized корзина в терминальном статусе, изменения запрещены
	ErrCartFinalized = errors.New("service.carts: cart is finalized")

	// ErrInvalidTransition действие недопустимо из текущего статуса
	ErrInvalidTransition = errors.New("service.carts: invalid status transition")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("service.carts: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("service.carts: internal error")
)
