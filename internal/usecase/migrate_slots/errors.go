package migrate_slots

import "errors"

var (
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("migrate_slots: internal error")
)
