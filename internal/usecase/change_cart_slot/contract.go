package change_cart_slot

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// CartRepository интерфейс репозитория корзин
type CartRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)
	UpdateSlot(ctx context.Context, id int64, slotID int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Occupancy(ctx context.Context, slotID int64) (int, error)
}

// DeliveryRepository интерфейс репозитория доставок
type DeliveryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
