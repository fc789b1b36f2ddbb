package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	"github.com/m04kA/SMC-BasketService/pkg/ptr"
)

func makeSlots(base time.Time, intervalMinutes int, counts ...int) []domain.SlotOccupancy {
	slots := make([]domain.SlotOccupancy, 0, len(counts))
	for i, c := range counts {
		start := base.Add(time.Duration(i*intervalMinutes) * time.Minute)
		slots = append(slots, domain.SlotOccupancy{
			Slot: domain.Slot{
				ID:         int64(i + 1),
				DeliveryID: 1,
				Start:      start,
				End:        start.Add(time.Duration(intervalMinutes) * time.Minute),
			},
			CartCount: c,
		})
	}
	return slots
}

func TestSlotOccupancy_IsFull(t *testing.T) {
	tests := []struct {
		name       string
		cartCount  int
		maxPerSlot int
		want       bool
	}{
		{name: "unlimited_never_full", cartCount: 100, maxPerSlot: 0, want: false},
		{name: "below_limit", cartCount: 2, maxPerSlot: 3, want: false},
		{name: "one_below_limit", cartCount: 2, maxPerSlot: 3, want: false},
		{name: "at_limit", cartCount: 3, maxPerSlot: 3, want: true},
		{name: "above_limit", cartCount: 4, maxPerSlot: 3, want: true},
		{name: "empty_slot", cartCount: 0, maxPerSlot: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := domain.SlotOccupancy{CartCount: tt.cartCount}
			assert.Equal(t, tt.want, o.IsFull(tt.maxPerSlot))
		})
	}
}

func TestDeliveryIsFull(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		maxPerSlot int
		slots      []domain.SlotOccupancy
		want       bool
	}{
		{name: "unlimited_never_full", maxPerSlot: 0, slots: makeSlots(base, 60, 5, 5), want: false},
		{name: "no_slots_not_full", maxPerSlot: 2, slots: nil, want: false},
		{name: "all_full", maxPerSlot: 2, slots: makeSlots(base, 60, 2, 3), want: true},
		{name: "one_free", maxPerSlot: 2, slots: makeSlots(base, 60, 2, 1), want: false},
		{name: "all_empty", maxPerSlot: 2, slots: makeSlots(base, 60, 0, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeliveryIsFull(tt.maxPerSlot, tt.slots))
		})
	}
}

func TestSelectSlot(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	t.Run("unlimited_picks_earliest", func(t *testing.T) {
		slots := makeSlots(base, 60, 9, 9, 9)
		slot, ok := domain.SelectSlot(0, slots)
		require.True(t, ok)
		assert.Equal(t, int64(1), slot.ID)
	})

	t.Run("no_slots", func(t *testing.T) {
		_, ok := domain.SelectSlot(0, nil)
		assert.False(t, ok)
	})

	t.Run("skips_full_slots", func(t *testing.T) {
		slots := makeSlots(base, 60, 2, 2, 1)
		slot, ok := domain.SelectSlot(2, slots)
		require.True(t, ok)
		assert.Equal(t, int64(3), slot.ID)
	})

	t.Run("all_full", func(t *testing.T) {
		slots := makeSlots(base, 60, 2, 2)
		_, ok := domain.SelectSlot(2, slots)
		assert.False(t, ok)
	})

	t.Run("equal_starts_break_by_id", func(t *testing.T) {
		slots := []domain.SlotOccupancy{
			{Slot: domain.Slot{ID: 7, Start: base, End: base.Add(time.Hour)}},
			{Slot: domain.Slot{ID: 3, Start: base, End: base.Add(time.Hour)}},
		}
		slot, ok := domain.SelectSlot(0, slots)
		require.True(t, ok)
		assert.Equal(t, int64(3), slot.ID)
	})

	t.Run("earlier_start_wins_regardless_of_order", func(t *testing.T) {
		slots := []domain.SlotOccupancy{
			{Slot: domain.Slot{ID: 1, Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}},
			{Slot: domain.Slot{ID: 2, Start: base, End: base.Add(time.Hour)}},
		}
		slot, ok := domain.SelectSlot(0, slots)
		require.True(t, ok)
		assert.Equal(t, int64(2), slot.ID)
	})
}

func TestValidateSlotChange(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	full := domain.SlotOccupancy{
		Slot:      domain.Slot{ID: 2, DeliveryID: 1, Start: base, End: base.Add(time.Hour)},
		CartCount: 1,
	}

	t.Run("same_slot_always_ok_even_when_full", func(t *testing.T) {
		cart := &domain.Cart{ID: 10, SlotID: ptr.Ptr(int64(2))}
		assert.NoError(t, domain.ValidateSlotChange(cart, &full, 1))
	})

	t.Run("other_full_slot_rejected", func(t *testing.T) {
		cart := &domain.Cart{ID: 10, SlotID: ptr.Ptr(int64(1))}
		assert.ErrorIs(t, domain.ValidateSlotChange(cart, &full, 1), domain.ErrSlotFull)
	})

	t.Run("other_slot_with_room_ok", func(t *testing.T) {
		cart := &domain.Cart{ID: 10, SlotID: ptr.Ptr(int64(1))}
		assert.NoError(t, domain.ValidateSlotChange(cart, &full, 2))
	})

	t.Run("unlimited_always_ok", func(t *testing.T) {
		cart := &domain.Cart{ID: 10, SlotID: ptr.Ptr(int64(1))}
		assert.NoError(t, domain.ValidateSlotChange(cart, &full, 0))
	})

	t.Run("detached_cart_treated_as_moving", func(t *testing.T) {
		cart := &domain.Cart{ID: 10, SlotID: nil}
		assert.ErrorIs(t, domain.ValidateSlotChange(cart, &full, 1), domain.ErrSlotFull)
	})
}

func TestValidateSlotEdit(t *testing.T) {
	start := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	t.Run("free_slot_valid_range", func(t *testing.T) {
		assert.NoError(t, domain.ValidateSlotEdit(0, start, start.Add(time.Hour)))
	})

	t.Run("occupied_slot_frozen", func(t *testing.T) {
		err := domain.ValidateSlotEdit(1, start, start.Add(time.Hour))
		assert.ErrorIs(t, err, domain.ErrSlotFrozen)
	})

	t.Run("occupied_slot_frozen_wins_over_range", func(t *testing.T) {
		err := domain.ValidateSlotEdit(3, start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, domain.ErrSlotFrozen)
	})

	t.Run("inverted_range_rejected", func(t *testing.T) {
		err := domain.ValidateSlotEdit(0, start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, domain.ErrInvalidSlotRange)
	})

	t.Run("equal_bounds_allowed", func(t *testing.T) {
		assert.NoError(t, domain.ValidateSlotEdit(0, start, start))
	})
}
