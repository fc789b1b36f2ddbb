package get_preparation_board

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/service/deliveries/models"
)

type DeliveryService interface {
	PreparationBoard(ctx context.Context, deliveryID int64) (*models.PreparationBoardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
