package migrate_slots_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	"github.com/m04kA/SMC-BasketService/internal/usecase/migrate_slots"
)

// fixture is an in-memory stand-in for the three repositories, enough to
// run a migration forward and back and inspect the result.
type fixture struct {
	legacies map[int64]*domain.LegacyDelivery
	slots    map[int64]*domain.Slot
	carts    map[int64]*fixtureCart
	nextSlot int64
}

type fixtureCart struct {
	id               int64
	slotID           *int64
	legacyDeliveryID *int64
	legacyStart      *time.Time
}

func newFixture() *fixture {
	return &fixture{
		legacies: map[int64]*domain.LegacyDelivery{},
		slots:    map[int64]*domain.Slot{},
		carts:    map[int64]*fixtureCart{},
	}
}

func (f *fixture) ListLegacy(ctx context.Context) ([]domain.LegacyDelivery, error) {
	out := make([]domain.LegacyDelivery, 0, len(f.legacies))
	for id := int64(1); id <= int64(len(f.legacies))+100; id++ {
		if d, ok := f.legacies[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fixture) ListIDs(ctx context.Context) ([]int64, error) {
	ids := map[int64]bool{}
	for id := range f.legacies {
		ids[id] = true
	}
	for _, s := range f.slots {
		ids[s.DeliveryID] = true
	}
	out := make([]int64, 0, len(ids))
	for id := int64(1); id <= 100; id++ {
		if ids[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fixture) ClearLegacyFields(ctx context.Context, id int64) error {
	delete(f.legacies, id)
	return nil
}

func (f *fixture) UpdateLegacyFields(ctx context.Context, id int64, legacy domain.LegacyInterval) error {
	f.legacies[id] = &domain.LegacyDelivery{
		ID:              id,
		Start:           legacy.Start,
		End:             legacy.End,
		IntervalMinutes: legacy.IntervalMinutes,
	}
	return nil
}

func (f *fixture) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	f.nextSlot++
	s.ID = f.nextSlot
	copied := *s
	f.slots[s.ID] = &copied
	return s, nil
}

func (f *fixture) ListByDelivery(ctx context.Context, deliveryID int64) ([]domain.Slot, error) {
	out := make([]domain.Slot, 0)
	for id := int64(1); id <= f.nextSlot; id++ {
		if s, ok := f.slots[id]; ok && s.DeliveryID == deliveryID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fixture) DeleteByDelivery(ctx context.Context, deliveryID int64) error {
	for id, s := range f.slots {
		if s.DeliveryID == deliveryID {
			delete(f.slots, id)
			for _, c := range f.carts {
				if c.slotID != nil && *c.slotID == id {
					c.slotID = nil
				}
			}
		}
	}
	return nil
}

func (f *fixture) ListLegacyByDelivery(ctx context.Context, deliveryID int64) ([]cartRepo.LegacyCart, error) {
	out := make([]cartRepo.LegacyCart, 0)
	for id := int64(1); id <= 100; id++ {
		c, ok := f.carts[id]
		if !ok || c.legacyDeliveryID == nil || *c.legacyDeliveryID != deliveryID {
			continue
		}
		out = append(out, cartRepo.LegacyCart{ID: c.id, Start: *c.legacyStart})
	}
	return out, nil
}

func (f *fixture) ListSlottedByDelivery(ctx context.Context, deliveryID int64) ([]cartRepo.SlottedCart, error) {
	out := make([]cartRepo.SlottedCart, 0)
	for id := int64(1); id <= 100; id++ {
		c, ok := f.carts[id]
		if !ok || c.slotID == nil {
			continue
		}
		if s, ok := f.slots[*c.slotID]; ok && s.DeliveryID == deliveryID {
			out = append(out, cartRepo.SlottedCart{ID: c.id, SlotID: *c.slotID})
		}
	}
	return out, nil
}

func (f *fixture) UpdateSlot(ctx context.Context, id int64, slotID int64) error {
	f.carts[id].slotID = &slotID
	return nil
}

func (f *fixture) UpdateCartLegacyFields(ctx context.Context, id int64, deliveryID int64, start time.Time) error {
	c := f.carts[id]
	c.legacyDeliveryID = &deliveryID
	c.legacyStart = &start
	return nil
}

// cartStore narrows the fixture to the cart repository contract, whose
// UpdateLegacyFields signature collides with the delivery one.
type cartStore struct{ *fixture }

func (s cartStore) UpdateLegacyFields(ctx context.Context, id int64, deliveryID int64, start time.Time) error {
	return s.fixture.UpdateCartLegacyFields(ctx, id, deliveryID, start)
}

type passTxManager struct{}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func legacyCart(id, deliveryID int64, start time.Time) *fixtureCart {
	return &fixtureCart{id: id, legacyDeliveryID: &deliveryID, legacyStart: &start}
}

func TestUseCase_Execute(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	t.Run("derives_slots_and_attaches_carts", func(t *testing.T) {
		f := newFixture()
		f.legacies[1] = &domain.LegacyDelivery{
			ID: 1, Start: base, End: base.Add(2 * time.Hour), IntervalMinutes: 60,
		}
		f.carts[1] = legacyCart(1, 1, base.Add(15*time.Minute))
		f.carts[2] = legacyCart(2, 1, base.Add(90*time.Minute))

		uc := migrate_slots.NewUseCase(f, f, cartStore{f}, passTxManager{}, nopLogger{})
		report, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Deliveries)
		assert.Equal(t, 2, report.SlotsCreated)
		assert.Equal(t, 2, report.CartsMoved)
		assert.Equal(t, 0, report.Unattached)

		require.NotNil(t, f.carts[1].slotID)
		require.NotNil(t, f.carts[2].slotID)
		assert.NotEqual(t, *f.carts[1].slotID, *f.carts[2].slotID)
		assert.Empty(t, f.legacies, "migrated delivery must lose its legacy fields")
	})

	t.Run("out_of_window_cart_left_unattached", func(t *testing.T) {
		f := newFixture()
		f.legacies[1] = &domain.LegacyDelivery{
			ID: 1, Start: base, End: base.Add(time.Hour), IntervalMinutes: 60,
		}
		f.carts[1] = legacyCart(1, 1, base.Add(3*time.Hour))

		uc := migrate_slots.NewUseCase(f, f, cartStore{f}, passTxManager{}, nopLogger{})
		report, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Unattached)
		assert.Equal(t, 0, report.CartsMoved)
		assert.Nil(t, f.carts[1].slotID)
	})

	t.Run("zero_interval_single_slot", func(t *testing.T) {
		f := newFixture()
		f.legacies[1] = &domain.LegacyDelivery{
			ID: 1, Start: base, End: base.Add(4 * time.Hour), IntervalMinutes: 0,
		}
		f.carts[1] = legacyCart(1, 1, base.Add(3*time.Hour))

		uc := migrate_slots.NewUseCase(f, f, cartStore{f}, passTxManager{}, nopLogger{})
		report, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.SlotsCreated)
		assert.Equal(t, 1, report.CartsMoved)
	})

	t.Run("clipped_tail_slot", func(t *testing.T) {
		f := newFixture()
		f.legacies[1] = &domain.LegacyDelivery{
			ID: 1, Start: base, End: base.Add(2 * time.Hour), IntervalMinutes: 45,
		}

		uc := migrate_slots.NewUseCase(f, f, cartStore{f}, passTxManager{}, nopLogger{})
		report, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, report.SlotsCreated)
		slots, _ := f.ListByDelivery(context.Background(), 1)
		require.Len(t, slots, 3)
		assert.Equal(t, base.Add(2*time.Hour), slots[2].End, "last slot must be clipped to the window end")
	})
}

func TestUseCase_Rollback(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	t.Run("round_trip_restores_interval", func(t *testing.T) {
		f := newFixture()
		f.legacies[1] = &domain.LegacyDelivery{
			ID: 1, Start: base, End: base.Add(2 * time.Hour), IntervalMinutes: 60,
		}
		f.carts[1] = legacyCart(1, 1, base.Add(30*time.Minute))

		uc := migrate_slots.NewUseCase(f, f, cartStore{f}, passTxManager{}, nopLogger{})
		_, err := uc.Execute(context.Background())
		require.NoError(t, err)

		report, err := uc.Rollback(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Deliveries)
		assert.Equal(t, 2, report.SlotsDropped)
		assert.Equal(t, 1, report.CartsMoved)

		restored := f.legacies[1]
		require.NotNil(t, restored)
		assert.Equal(t, base, restored.Start)
		assert.Equal(t, base.Add(2*time.Hour), restored.End)
		assert.Equal(t, 60, restored.IntervalMinutes)

		c := f.carts[1]
		assert.Nil(t, c.slotID)
		require.NotNil(t, c.legacyStart)
		assert.Equal(t, base, *c.legacyStart, "restored time is the slot start the cart was in")
		assert.Empty(t, f.slots)
	})

	t.Run("delivery_without_slots_skipped", func(t *testing.T) {
		f := newFixture()
		f.legacies[1] = &domain.LegacyDelivery{
			ID: 1, Start: base, End: base.Add(time.Hour), IntervalMinutes: 60,
		}

		uc := migrate_slots.NewUseCase(f, f, cartStore{f}, passTxManager{}, nopLogger{})
		report, err := uc.Rollback(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, report.Deliveries)
		assert.Equal(t, 0, report.SlotsDropped)
	})
}
