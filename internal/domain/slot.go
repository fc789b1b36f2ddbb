package domain

import (
	"errors"
	"sort"
	"time"
)

// Slot is a bounded time window within a delivery that carts are scheduled
// into. End is always after Start. Deleting a delivery deletes its slots;
// deleting a slot detaches its carts (slot reference set to nil).
type Slot struct {
	ID         int64
	DeliveryID int64
	Start      time.Time
	End        time.Time
}

// Contains reports whether t falls within the slot's [Start, End) window
func (s *Slot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// SlotOccupancy is a slot together with the number of carts currently
// bound to it
type SlotOccupancy struct {
	Slot      Slot
	CartCount int
}

// IsFull returns true when the slot has reached the per-slot cart limit.
// A limit of 0 means unlimited: the slot is never full.
func (o *SlotOccupancy) IsFull(maxPerSlot int) bool {
	if maxPerSlot == 0 {
		return false
	}
	return o.CartCount >= maxPerSlot
}

// DeliveryIsFull returns true when every slot of the delivery has reached
// the limit. A delivery with no slots is NOT full: there is nothing to
// order into, which is a different user-facing situation than "full".
func DeliveryIsFull(maxPerSlot int, slots []SlotOccupancy) bool {
	if maxPerSlot == 0 || len(slots) == 0 {
		return false
	}
	for i := range slots {
		if !slots[i].IsFull(maxPerSlot) {
			return false
		}
	}
	return true
}

// SelectSlot picks the slot a new cart should go into: the
// earliest-starting slot that has not reached the limit (any slot when the
// limit is disabled). Equal starts are broken by lowest slot id, so the
// choice is deterministic. The second return value is false when no
// eligible slot exists; the caller reports "delivery is full" and mutates
// nothing.
func SelectSlot(maxPerSlot int, slots []SlotOccupancy) (Slot, bool) {
	ordered := make([]SlotOccupancy, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Slot.Start.Equal(ordered[j].Slot.Start) {
			return ordered[i].Slot.Start.Before(ordered[j].Slot.Start)
		}
		return ordered[i].Slot.ID < ordered[j].Slot.ID
	})

	for i := range ordered {
		if !ordered[i].IsFull(maxPerSlot) {
			return ordered[i].Slot, true
		}
	}

	return Slot{}, false
}

var (
	// ErrSlotFull is returned when a slot change would exceed the per-slot limit
	ErrSlotFull = errors.New("domain: delivery slot is full")

	// ErrSlotFrozen is returned when editing a slot that already has bound carts
	ErrSlotFrozen = errors.New("domain: slot already has carts and cannot be edited")

	// ErrInvalidSlotRange is returned when a slot's end is not after its start
	ErrInvalidSlotRange = errors.New("domain: slot end must be after start")
)

// ValidateSlotChange checks a customer's request to move a cart to
// another slot. Re-submitting the slot the cart is already in always
// succeeds: the user's own reservation never counts against the slot they
// hold. Any other target is rejected when it has reached the limit.
func ValidateSlotChange(cart *Cart, requested *SlotOccupancy, maxPerSlot int) error {
	if cart.IsInSlot(requested.Slot.ID) {
		return nil
	}
	if requested.IsFull(maxPerSlot) {
		return ErrSlotFull
	}
	return nil
}

// ValidateSlotEdit checks an administrative change of a slot's boundaries.
// A slot with bound carts is frozen: customers committed to that window.
func ValidateSlotEdit(cartCount int, newStart, newEnd time.Time) error {
	if cartCount > 0 {
		return ErrSlotFrozen
	}
	if newStart.After(newEnd) {
		return ErrInvalidSlotRange
	}
	return nil
}
