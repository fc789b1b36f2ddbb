package migrate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	"github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
)

// DeliveryRepository интерфейс для работы с хранилищем доставок
type DeliveryRepository interface {
	ListLegacy(ctx context.Context) ([]domain.LegacyDelivery, error)
	ListIDs(ctx context.Context) ([]int64, error)
	ClearLegacyFields(ctx context.Context, id int64) error
	UpdateLegacyFields(ctx context.Context, id int64, legacy domain.LegacyInterval) error
}

// SlotRepository интерфейс для работы с хранилищем слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	ListByDelivery(ctx context.Context, deliveryID int64) ([]domain.Slot, error)
	DeleteByDelivery(ctx context.Context, deliveryID int64) error
}

// CartRepository интерфейс для работы с хранилищем корзин
type CartRepository interface {
	ListLegacyByDelivery(ctx context.Context, deliveryID int64) ([]cart.LegacyCart, error)
	ListSlottedByDelivery(ctx context.Context, deliveryID int64) ([]cart.SlottedCart, error)
	UpdateSlot(ctx context.Context, id int64, slotID int64) error
	UpdateLegacyFields(ctx context.Context, id int64, deliveryID int64, start time.Time) error
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
