package create_cart

import (
	"context"

	createCart "github.com/m04kA/SMC-BasketService/internal/usecase/create_cart"
)

type CreateCartUseCase interface {
	Execute(ctx context.Context, req *createCart.Request) (*createCart.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
