package change_cart_slot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	slotRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-BasketService/internal/usecase/change_cart_slot"
)

type mockCartRepo struct {
	getByIDFunc    func(ctx context.Context, id int64) (*domain.Cart, error)
	updateSlotFunc func(ctx context.Context, id int64, slotID int64) error
}

func (m *mockCartRepo) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCartRepo) UpdateSlot(ctx context.Context, id int64, slotID int64) error {
	return m.updateSlotFunc(ctx, id, slotID)
}

type mockSlotRepo struct {
	getByIDFunc   func(ctx context.Context, id int64) (*domain.Slot, error)
	occupancyFunc func(ctx context.Context, slotID int64) (int, error)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockSlotRepo) Occupancy(ctx context.Context, slotID int64) (int, error) {
	return m.occupancyFunc(ctx, slotID)
}

type mockDeliveryRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Delivery, error)
}

func (m *mockDeliveryRepo) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	return m.getByIDFunc(ctx, id)
}

type passTxManager struct{}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	slotA := &domain.Slot{ID: 1, DeliveryID: 1, Start: base, End: base.Add(time.Hour)}
	slotB := &domain.Slot{ID: 2, DeliveryID: 1, Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}
	foreignSlot := &domain.Slot{ID: 9, DeliveryID: 5, Start: base, End: base.Add(time.Hour)}

	slotsByID := func(slots ...*domain.Slot) func(ctx context.Context, id int64) (*domain.Slot, error) {
		return func(ctx context.Context, id int64) (*domain.Slot, error) {
			for _, s := range slots {
				if s.ID == id {
					return s, nil
				}
			}
			return nil, slotRepo.ErrSlotNotFound
		}
	}

	cartInSlot := func(slotID int64) *mockCartRepo {
		return &mockCartRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Cart, error) {
				return &domain.Cart{ID: id, UserID: 7, SlotID: &slotID, Status: domain.StatusReceived}, nil
			},
			updateSlotFunc: func(ctx context.Context, id int64, slotID int64) error {
				return nil
			},
		}
	}

	delivery := func(maxPerSlot int) *mockDeliveryRepo {
		return &mockDeliveryRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Delivery, error) {
				return &domain.Delivery{ID: id, MaxPerSlot: maxPerSlot}, nil
			},
		}
	}

	occ := func(count int) *mockSlotRepo {
		return &mockSlotRepo{
			getByIDFunc: slotsByID(slotA, slotB),
			occupancyFunc: func(ctx context.Context, slotID int64) (int, error) {
				return count, nil
			},
		}
	}

	t.Run("slot_with_room_ok", func(t *testing.T) {
		var movedTo int64
		carts := cartInSlot(1)
		carts.updateSlotFunc = func(ctx context.Context, id int64, slotID int64) error {
			movedTo = slotID
			return nil
		}
		uc := change_cart_slot.NewUseCase(carts, occ(1), delivery(2), passTxManager{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 2})
		require.NoError(t, err)
		assert.True(t, resp.Changed)
		assert.Equal(t, int64(2), resp.SlotID)
		assert.Equal(t, int64(2), movedTo)
	})

	t.Run("same_slot_noop_even_when_full", func(t *testing.T) {
		updated := false
		carts := cartInSlot(1)
		carts.updateSlotFunc = func(ctx context.Context, id int64, slotID int64) error {
			updated = true
			return nil
		}
		uc := change_cart_slot.NewUseCase(carts, occ(99), delivery(1), passTxManager{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 1})
		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Equal(t, int64(1), resp.SlotID)
		assert.False(t, updated, "re-submitting the current slot must not write anything")
	})

	t.Run("full_slot_rejected", func(t *testing.T) {
		uc := change_cart_slot.NewUseCase(cartInSlot(1), occ(2), delivery(2), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 2})
		assert.ErrorIs(t, err, change_cart_slot.ErrSlotFull)
	})

	t.Run("unlimited_ok", func(t *testing.T) {
		uc := change_cart_slot.NewUseCase(cartInSlot(1), occ(1000), delivery(0), passTxManager{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 2})
		require.NoError(t, err)
		assert.True(t, resp.Changed)
	})

	t.Run("wrong_delivery", func(t *testing.T) {
		slots := &mockSlotRepo{
			getByIDFunc: slotsByID(slotA, foreignSlot),
			occupancyFunc: func(ctx context.Context, slotID int64) (int, error) {
				return 0, nil
			},
		}
		uc := change_cart_slot.NewUseCase(cartInSlot(1), slots, delivery(0), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 9})
		assert.ErrorIs(t, err, change_cart_slot.ErrWrongDelivery)
	})

	t.Run("not_owner", func(t *testing.T) {
		uc := change_cart_slot.NewUseCase(cartInSlot(1), occ(0), delivery(0), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 8, CartID: 3, SlotID: 2})
		assert.ErrorIs(t, err, change_cart_slot.ErrNotCartOwner)
	})

	t.Run("finalized_cart", func(t *testing.T) {
		slotID := int64(1)
		carts := &mockCartRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Cart, error) {
				return &domain.Cart{ID: id, UserID: 7, SlotID: &slotID, Status: domain.StatusDelivered}, nil
			},
		}
		uc := change_cart_slot.NewUseCase(carts, occ(0), delivery(0), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 2})
		assert.ErrorIs(t, err, change_cart_slot.ErrCartFinalized)
	})

	t.Run("cart_not_found", func(t *testing.T) {
		carts := &mockCartRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*domain.Cart, error) {
				return nil, cartRepo.ErrCartNotFound
			},
		}
		uc := change_cart_slot.NewUseCase(carts, occ(0), delivery(0), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 99, SlotID: 2})
		assert.ErrorIs(t, err, change_cart_slot.ErrCartNotFound)
	})

	t.Run("slot_not_found", func(t *testing.T) {
		uc := change_cart_slot.NewUseCase(cartInSlot(1), occ(0), delivery(0), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 3, SlotID: 77})
		assert.ErrorIs(t, err, change_cart_slot.ErrSlotNotFound)
	})

	t.Run("invalid_input", func(t *testing.T) {
		uc := change_cart_slot.NewUseCase(cartInSlot(1), occ(0), delivery(0), passTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &change_cart_slot.Request{UserID: 7, CartID: 0, SlotID: 2})
		assert.ErrorIs(t, err, change_cart_slot.ErrInvalidInput)
	})
}
