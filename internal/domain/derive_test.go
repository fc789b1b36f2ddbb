package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

func TestDeriveSlots(t *testing.T) {
	start := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	legacy := func(minutes, interval int) domain.LegacyDelivery {
		return domain.LegacyDelivery{
			ID:              5,
			Start:           start,
			End:             start.Add(time.Duration(minutes) * time.Minute),
			IntervalMinutes: interval,
		}
	}

	t.Run("zero_interval_single_slot", func(t *testing.T) {
		slots := domain.DeriveSlots(legacy(120, 0))
		require.Len(t, slots, 1)
		assert.Equal(t, start, slots[0].Start)
		assert.Equal(t, start.Add(2*time.Hour), slots[0].End)
		assert.Equal(t, int64(5), slots[0].DeliveryID)
	})

	t.Run("exact_multiple", func(t *testing.T) {
		slots := domain.DeriveSlots(legacy(120, 60))
		require.Len(t, slots, 2)
		assert.Equal(t, start, slots[0].Start)
		assert.Equal(t, start.Add(time.Hour), slots[0].End)
		assert.Equal(t, start.Add(time.Hour), slots[1].Start)
		assert.Equal(t, start.Add(2*time.Hour), slots[1].End)
	})

	t.Run("last_slot_clipped", func(t *testing.T) {
		slots := domain.DeriveSlots(legacy(120, 45))
		require.Len(t, slots, 3)
		assert.Equal(t, 45*time.Minute, slots[0].End.Sub(slots[0].Start))
		assert.Equal(t, 45*time.Minute, slots[1].End.Sub(slots[1].Start))
		// 120 = 45 + 45 + 30
		assert.Equal(t, 30*time.Minute, slots[2].End.Sub(slots[2].Start))
		assert.Equal(t, start.Add(2*time.Hour), slots[2].End)
	})

	t.Run("slots_are_contiguous", func(t *testing.T) {
		slots := domain.DeriveSlots(legacy(200, 45))
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
	})
}

func TestSlotIndexForTime(t *testing.T) {
	start := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	slots := domain.DeriveSlots(domain.LegacyDelivery{
		Start:           start,
		End:             start.Add(2 * time.Hour),
		IntervalMinutes: 60,
	})

	tests := []struct {
		name    string
		at      time.Time
		wantIdx int
		wantOK  bool
	}{
		{name: "first_slot_start_inclusive", at: start, wantIdx: 0, wantOK: true},
		{name: "inside_first", at: start.Add(30 * time.Minute), wantIdx: 0, wantOK: true},
		{name: "boundary_belongs_to_next", at: start.Add(time.Hour), wantIdx: 1, wantOK: true},
		{name: "end_exclusive", at: start.Add(2 * time.Hour), wantOK: false},
		{name: "before_window", at: start.Add(-time.Minute), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := domain.SlotIndexForTime(slots, tt.at)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestReverseDerive(t *testing.T) {
	start := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		_, ok := domain.ReverseDerive(nil)
		assert.False(t, ok)
	})

	t.Run("round_trip_exact_multiple", func(t *testing.T) {
		in := domain.LegacyDelivery{Start: start, End: start.Add(2 * time.Hour), IntervalMinutes: 60}
		out, ok := domain.ReverseDerive(domain.DeriveSlots(in))
		require.True(t, ok)
		assert.Equal(t, in.Start, out.Start)
		assert.Equal(t, in.End, out.End)
		assert.Equal(t, in.IntervalMinutes, out.IntervalMinutes)
	})

	t.Run("clipped_tail_keeps_interval", func(t *testing.T) {
		// 120 minutes in 45-minute slots: the 30-minute tail must not
		// shrink the recovered interval
		in := domain.LegacyDelivery{Start: start, End: start.Add(2 * time.Hour), IntervalMinutes: 45}
		out, ok := domain.ReverseDerive(domain.DeriveSlots(in))
		require.True(t, ok)
		assert.Equal(t, in.Start, out.Start)
		assert.Equal(t, in.End, out.End)
		assert.Equal(t, 45, out.IntervalMinutes)
	})
}
