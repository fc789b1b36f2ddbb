package carts_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	"github.com/m04kA/SMC-BasketService/internal/service/carts"
	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

type mockCartRepo struct {
	getByIDFunc          func(ctx context.Context, id int64) (*domain.Cart, error)
	listItemsFunc        func(ctx context.Context, cartID int64) ([]*domain.CartItem, error)
	addItemFunc          func(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	deleteItemFunc       func(ctx context.Context, cartID, itemID int64) error
	updateAnnotationFunc func(ctx context.Context, id int64, annotation string) error
	updateStatusFunc     func(ctx context.Context, id int64, status domain.CartStatus) error
}

func (m *mockCartRepo) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCartRepo) ListItems(ctx context.Context, cartID int64) ([]*domain.CartItem, error) {
	return m.listItemsFunc(ctx, cartID)
}

func (m *mockCartRepo) AddItem(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	return m.addItemFunc(ctx, item)
}

func (m *mockCartRepo) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	return m.deleteItemFunc(ctx, cartID, itemID)
}

func (m *mockCartRepo) UpdateAnnotation(ctx context.Context, id int64, annotation string) error {
	return m.updateAnnotationFunc(ctx, id, annotation)
}

func (m *mockCartRepo) UpdateStatus(ctx context.Context, id int64, status domain.CartStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

type mockArticleRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Article, error)
}

func (m *mockArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return m.getByIDFunc(ctx, id)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ownedCart(status domain.CartStatus) *mockCartRepo {
	return &mockCartRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Cart, error) {
			return &domain.Cart{ID: id, UserID: 7, Status: status}, nil
		},
	}
}

func catalog() *mockArticleRepo {
	return &mockArticleRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
			return &domain.Article{
				ID:        id,
				Code:      100,
				Label:     "Apples",
				UnitPrice: decimal.RequireFromString("1.75"),
				UnitType:  domain.UnitTypeWeight,
			}, nil
		},
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("cart_with_items_and_total", func(t *testing.T) {
		repo := ownedCart(domain.StatusReceived)
		repo.listItemsFunc = func(ctx context.Context, cartID int64) ([]*domain.CartItem, error) {
			return []*domain.CartItem{
				{ID: 1, Label: "Apples", UnitPrice: decimal.RequireFromString("1.75"),
					UnitType: domain.UnitTypeWeight, Quantity: decimal.RequireFromString("2.000")},
				{ID: 2, Label: "Milk", UnitPrice: decimal.RequireFromString("0.90"),
					UnitType: domain.UnitTypeUnit, Quantity: decimal.RequireFromString("3")},
			}, nil
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		resp, err := svc.GetByID(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.Items[0].LineTotal.Equal(decimal.RequireFromString("3.50")))
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("6.20")))
		assert.Equal(t, "received", resp.Status)
	})

	t.Run("empty_cart_totals_zero", func(t *testing.T) {
		repo := ownedCart(domain.StatusReceived)
		repo.listItemsFunc = func(ctx context.Context, cartID int64) ([]*domain.CartItem, error) {
			return []*domain.CartItem{}, nil
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		resp, err := svc.GetByID(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.True(t, resp.Total.IsZero())
	})

	t.Run("foreign_cart_denied", func(t *testing.T) {
		svc := carts.NewService(ownedCart(domain.StatusReceived), catalog(), nopLogger{})

		_, err := svc.GetByID(context.Background(), 1, 8)
		assert.ErrorIs(t, err, carts.ErrAccessDenied)
	})

	t.Run("cart_not_found", func(t *testing.T) {
		repo := &mockCartRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Cart, error) {
				return nil, cartRepo.ErrCartNotFound
			},
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		_, err := svc.GetByID(context.Background(), 99, 7)
		assert.ErrorIs(t, err, carts.ErrCartNotFound)
	})
}

func TestService_AddItem(t *testing.T) {
	t.Run("snapshots_article_fields", func(t *testing.T) {
		var added *domain.CartItem
		repo := ownedCart(domain.StatusReceived)
		repo.addItemFunc = func(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
			added = item
			item.ID = 5
			return item, nil
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		resp, err := svc.AddItem(context.Background(), 1, &models.AddItemRequest{
			UserID:    7,
			ArticleID: 3,
			Quantity:  decimal.RequireFromString("0.500"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "Apples", added.Label)
		assert.Equal(t, domain.UnitTypeWeight, added.UnitType)
		assert.True(t, added.UnitPrice.Equal(decimal.RequireFromString("1.75")))
	})

	t.Run("zero_quantity_rejected", func(t *testing.T) {
		svc := carts.NewService(ownedCart(domain.StatusReceived), catalog(), nopLogger{})

		_, err := svc.AddItem(context.Background(), 1, &models.AddItemRequest{
			UserID: 7, ArticleID: 3, Quantity: decimal.Zero,
		})
		assert.ErrorIs(t, err, carts.ErrInvalidInput)
	})

	t.Run("finalized_cart_rejected", func(t *testing.T) {
		svc := carts.NewService(ownedCart(domain.StatusDelivered), catalog(), nopLogger{})

		_, err := svc.AddItem(context.Background(), 1, &models.AddItemRequest{
			UserID: 7, ArticleID: 3, Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, carts.ErrCartFinalized)
	})

	t.Run("unknown_article", func(t *testing.T) {
		articles := &mockArticleRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
				return nil, assert.AnError
			},
		}
		svc := carts.NewService(ownedCart(domain.StatusReceived), articles, nopLogger{})

		_, err := svc.AddItem(context.Background(), 1, &models.AddItemRequest{
			UserID: 7, ArticleID: 99, Quantity: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, carts.ErrArticleNotFound)
	})
}

func TestService_RemoveItem(t *testing.T) {
	t.Run("removes_item", func(t *testing.T) {
		repo := ownedCart(domain.StatusPreparing)
		repo.deleteItemFunc = func(ctx context.Context, cartID, itemID int64) error {
			return nil
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		err := svc.RemoveItem(context.Background(), 1, 5, 7)
		assert.NoError(t, err)
	})

	t.Run("missing_item", func(t *testing.T) {
		repo := ownedCart(domain.StatusPreparing)
		repo.deleteItemFunc = func(ctx context.Context, cartID, itemID int64) error {
			return cartRepo.ErrItemNotFound
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		err := svc.RemoveItem(context.Background(), 1, 5, 7)
		assert.ErrorIs(t, err, carts.ErrItemNotFound)
	})
}

func TestService_UpdateAnnotation(t *testing.T) {
	t.Run("updates_annotation", func(t *testing.T) {
		var saved string
		repo := ownedCart(domain.StatusReceived)
		repo.updateAnnotationFunc = func(ctx context.Context, id int64, annotation string) error {
			saved = annotation
			return nil
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})

		err := svc.UpdateAnnotation(context.Background(), 1, &models.UpdateAnnotationRequest{
			UserID: 7, Annotation: "ring the bell twice",
		})
		require.NoError(t, err)
		assert.Equal(t, "ring the bell twice", saved)
	})

	t.Run("too_long_annotation", func(t *testing.T) {
		svc := carts.NewService(ownedCart(domain.StatusReceived), catalog(), nopLogger{})

		err := svc.UpdateAnnotation(context.Background(), 1, &models.UpdateAnnotationRequest{
			UserID: 7, Annotation: strings.Repeat("x", domain.MaxAnnotationLength+1),
		})
		assert.ErrorIs(t, err, carts.ErrInvalidInput)
	})
}

func TestService_AdvanceStatus(t *testing.T) {
	advance := func(status domain.CartStatus, action string) (*models.StatusResponse, error) {
		repo := ownedCart(status)
		repo.updateStatusFunc = func(ctx context.Context, id int64, s domain.CartStatus) error {
			return nil
		}
		svc := carts.NewService(repo, catalog(), nopLogger{})
		return svc.AdvanceStatus(context.Background(), 1, &models.AdvanceStatusRequest{
			UserID: 7, Action: action,
		})
	}

	t.Run("start_preparing", func(t *testing.T) {
		resp, err := advance(domain.StatusReceived, "start")
		require.NoError(t, err)
		assert.Equal(t, "preparing", resp.Status)
		assert.Equal(t, "received", resp.PreviousStatus)
	})

	t.Run("postpone_back_to_received", func(t *testing.T) {
		resp, err := advance(domain.StatusPreparing, "postpone")
		require.NoError(t, err)
		assert.Equal(t, "received", resp.Status)
	})

	t.Run("deliver_only_from_prepared", func(t *testing.T) {
		_, err := advance(domain.StatusReceived, "delivered")
		assert.ErrorIs(t, err, carts.ErrInvalidTransition)

		resp, err := advance(domain.StatusPrepared, "delivered")
		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
	})

	t.Run("terminal_rejects_everything", func(t *testing.T) {
		for _, action := range []string{"start", "prepared", "postpone", "delivered", "abandon"} {
			_, err := advance(domain.StatusAbandoned, action)
			assert.ErrorIs(t, err, carts.ErrInvalidTransition, "action %s", action)
		}
	})

	t.Run("unknown_action", func(t *testing.T) {
		_, err := advance(domain.StatusReceived, "teleport")
		assert.ErrorIs(t, err, carts.ErrInvalidInput)
	})
}
