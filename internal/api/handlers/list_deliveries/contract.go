package list_deliveries

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BasketService/internal/service/deliveries/models"
)

type DeliveryService interface {
	ListUpcoming(ctx context.Context, now time.Time) (*models.DeliveryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
