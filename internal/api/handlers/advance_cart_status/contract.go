package advance_cart_status

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

type CartService interface {
	AdvanceStatus(ctx context.Context, cartID int64, req *models.AdvanceStatusRequest) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
