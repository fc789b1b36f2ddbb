package get_needed_quantities

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/service/deliveries/models"
)

type DeliveryService interface {
	NeededQuantities(ctx context.Context, deliveryID int64) (*models.NeededQuantitiesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
