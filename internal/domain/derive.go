package domain

import "time"

// LegacyDelivery is the interval-based delivery representation that
// predates explicit slot rows: one [Start, End) window plus a slot length
// in minutes. IntervalMinutes == 0 means slots were disabled, i.e. the
// whole window is a single slot.
type LegacyDelivery struct {
	ID              int64
	LocationID      int64
	MaxPerSlot      int
	Start           time.Time
	End             time.Time
	IntervalMinutes int
}

// DeriveSlots expands a legacy interval delivery into discrete slots.
// With a zero interval the result is a single slot spanning the whole
// window. Otherwise ceil((end-start)/interval) slots are produced; the
// last one is clipped to End, so it may be shorter than the interval when
// the window is not an exact multiple.
func DeriveSlots(legacy LegacyDelivery) []Slot {
	if legacy.IntervalMinutes == 0 {
		return []Slot{{
			DeliveryID: legacy.ID,
			Start:      legacy.Start,
			End:        legacy.End,
		}}
	}

	interval := time.Duration(legacy.IntervalMinutes) * time.Minute
	window := legacy.End.Sub(legacy.Start)
	n := int((window + interval - 1) / interval)

	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		start := legacy.Start.Add(time.Duration(i) * interval)
		end := start.Add(interval)
		if end.After(legacy.End) {
			end = legacy.End
		}
		slots = append(slots, Slot{
			DeliveryID: legacy.ID,
			Start:      start,
			End:        end,
		})
	}

	return slots
}

// SlotIndexForTime returns the index of the slot whose [Start, End) window
// contains t, or false when t maps into no slot. Carts whose legacy
// timestamp maps nowhere are left unattached by the migration.
func SlotIndexForTime(slots []Slot, t time.Time) (int, bool) {
	for i := range slots {
		if slots[i].Contains(t) {
			return i, true
		}
	}
	return 0, false
}

// LegacyInterval is the interval representation recovered from slot rows
// for a migration rollback
type LegacyInterval struct {
	Start           time.Time
	End             time.Time
	IntervalMinutes int
}

// ReverseDerive recovers the legacy interval fields from a delivery's
// slots: earliest start, latest end and the longest slot duration in
// minutes. The mapping is lossy when slots have heterogeneous durations;
// it is exact for slot sets produced by DeriveSlots, which is the only
// supported rollback input. Returns false for an empty slot set.
func ReverseDerive(slots []Slot) (LegacyInterval, bool) {
	if len(slots) == 0 {
		return LegacyInterval{}, false
	}

	legacy := LegacyInterval{
		Start: slots[0].Start,
		End:   slots[0].End,
	}

	var maxDuration time.Duration
	for i := range slots {
		if slots[i].Start.Before(legacy.Start) {
			legacy.Start = slots[i].Start
		}
		if slots[i].End.After(legacy.End) {
			legacy.End = slots[i].End
		}
		if d := slots[i].End.Sub(slots[i].Start); d > maxDuration {
			maxDuration = d
		}
	}

	legacy.IntervalMinutes = int(maxDuration / time.Minute)
	return legacy, true
}
