package carts

import (
	"context"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// CartRepository интерфейс для работы с хранилищем корзин
type CartRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)
	ListItems(ctx context.Context, cartID int64) ([]*domain.CartItem, error)
	AddItem(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	UpdateAnnotation(ctx context.Context, id int64, annotation string) error
	UpdateStatus(ctx context.Context, id int64, status domain.CartStatus) error
}

// ArticleRepository интерфейс для работы с каталогом товаров
type ArticleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
