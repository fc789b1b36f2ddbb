package edit_slot

import (
	"context"

	editSlot "github.com/m04kA/SMC-BasketService/internal/usecase/edit_slot"
)

type EditSlotUseCase interface {
	Execute(ctx context.Context, req *editSlot.Request) (*editSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
