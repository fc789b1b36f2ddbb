package update_cart_annotation

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

type CartService interface {
	UpdateAnnotation(ctx context.Context, cartID int64, req *models.UpdateAnnotationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
