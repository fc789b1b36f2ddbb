package edit_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// SlotRepository интерфейс для работы с хранилищем слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Occupancy(ctx context.Context, slotID int64) (int, error)
	UpdateBounds(ctx context.Context, id int64, start, end time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
