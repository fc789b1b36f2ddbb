package deliveries

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// DeliveryRepository интерфейс для работы с хранилищем доставок
type DeliveryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]domain.DeliveryListing, error)
}

// SlotRepository интерфейс для работы с хранилищем слотов
type SlotRepository interface {
	ListOccupancyByDelivery(ctx context.Context, deliveryID int64) ([]domain.SlotOccupancy, error)
}

// CartRepository интерфейс для работы с хранилищем корзин
type CartRepository interface {
	ListActiveByDelivery(ctx context.Context, deliveryID int64) ([]*domain.Cart, error)
	ListActiveItemsByDelivery(ctx context.Context, deliveryID int64) ([]*domain.CartItem, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
