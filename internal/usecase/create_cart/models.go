package create_cart

import (
	"time"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// Request модель запроса на создание корзины
type Request struct {
	UserID     int64 // ID покупателя
	DeliveryID int64 // ID доставки
}

// Response модель ответа с созданной корзиной и выбранным слотом
type Response struct {
	CartID    int64
	UserID    int64
	SlotID    int64
	SlotStart time.Time
	SlotEnd   time.Time
	Status    domain.CartStatus
	CreatedAt time.Time
}
