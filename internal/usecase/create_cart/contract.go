package create_cart

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// DeliveryRepository интерфейс репозитория доставок
type DeliveryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListOccupancyByDelivery(ctx context.Context, deliveryID int64) ([]domain.SlotOccupancy, error)
}

// CartRepository интерфейс репозитория корзин
type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
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
