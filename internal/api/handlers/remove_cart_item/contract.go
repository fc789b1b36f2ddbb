package remove_cart_item

import "context"

type CartService interface {
	RemoveItem(ctx context.Context, cartID int64, itemID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
