package get_cart

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

type CartService interface {
	GetByID(ctx context.Context, cartID int64, userID int64) (*models.CartResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
