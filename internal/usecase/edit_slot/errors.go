package edit_slot

import "errors"

var (
	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("edit_slot: slot not found")

	// ErrSlotFrozen в слоте есть корзины, границы менять нельзя
	ErrSlotFrozen = errors.New("edit_slot: slot has carts, bounds are frozen")

	// ErrInvalidRange начало окна позже его конца
	ErrInvalidRange = errors.New("edit_slot: start must not be after end")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("edit_slot: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("edit_slot: internal error")
)
