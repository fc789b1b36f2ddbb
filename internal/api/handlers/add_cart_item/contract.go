package add_cart_item

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

type CartService interface {
	AddItem(ctx context.Context, cartID int64, req *models.AddItemRequest) (*models.CartItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
