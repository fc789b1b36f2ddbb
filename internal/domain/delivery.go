package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryLocation is a named place deliveries happen at.
// Delete-protected: a location with deliveries cannot be removed.
type DeliveryLocation struct {
	ID   int64
	Name string
}

// Delivery represents one delivery event at a location, partitioned into
// time slots. MaxPerSlot limits carts per slot; 0 means unlimited.
type Delivery struct {
	ID         int64
	LocationID int64
	MaxPerSlot int
}

// HasSlotLimit returns true if the per-slot cart limit is enabled
func (d *Delivery) HasSlotLimit() bool {
	return d.MaxPerSlot > 0
}

// DeliveryListing is a delivery row enriched for the storefront list:
// location name and the start of the earliest slot. FirstSlotStart is nil
// for a delivery with no slots ("undefined time slots").
type DeliveryListing struct {
	Delivery
	LocationName   string
	FirstSlotStart *time.Time
}

// NeededQuantity is one line of the packer's shopping report: the summed
// quantity of an article label over a delivery's active carts
type NeededQuantity struct {
	Label    string
	UnitType UnitType
	Quantity decimal.Decimal
}

// SumNeededQuantities groups cart items by (label, unit type) and sums
// their quantities with exact decimal arithmetic. The result is ordered by
// label, then unit type, so reports are stable.
func SumNeededQuantities(items []*CartItem) []NeededQuantity {
	type key struct {
		label    string
		unitType UnitType
	}

	sums := make(map[key]decimal.Decimal)
	for _, item := range items {
		k := key{label: item.Label, unitType: item.UnitType}
		sums[k] = sums[k].Add(item.Quantity)
	}

	result := make([]NeededQuantity, 0, len(sums))
	for k, quantity := range sums {
		result = append(result, NeededQuantity{
			Label:    k.label,
			UnitType: k.unitType,
			Quantity: quantity,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Label != result[j].Label {
			return result[i].Label < result[j].Label
		}
		return result[i].UnitType < result[j].UnitType
	})

	return result
}
