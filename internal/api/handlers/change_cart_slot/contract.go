package change_cart_slot

import (
	"context"

	changeCartSlot "github.com/m04kA/SMC-BasketService/internal/usecase/change_cart_slot"
)

type ChangeCartSlotUseCase interface {
	Execute(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
