package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CartStatus represents the preparation status of a cart.
// Statuses are ordered integer codes: "cart is still active" is the
// numeric comparison status <= StatusPrepared.
type CartStatus int

const (
	// StatusReceived customer placed an order online, not yet processed
	StatusReceived CartStatus = 10
	// StatusPreparing a packer starts to put items together
	StatusPreparing CartStatus = 20
	// StatusPrepared basket is waiting for pickup
	StatusPrepared CartStatus = 30
	// StatusDelivered over, customer got his basket
	StatusDelivered CartStatus = 40
	// StatusAbandoned over, but not delivered, for some reason...
	StatusAbandoned CartStatus = 50
)

// IsActive returns true while the cart still takes part in preparation
func (s CartStatus) IsActive() bool {
	return s <= StatusPrepared
}

// IsTerminal returns true for statuses that end the cart lifecycle
func (s CartStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusAbandoned
}

// IsValid returns true for known status codes
func (s CartStatus) IsValid() bool {
	switch s {
	case StatusReceived, StatusPreparing, StatusPrepared, StatusDelivered, StatusAbandoned:
		return true
	default:
		return false
	}
}

// CartAction is a packer-facing workflow action
type CartAction string

const (
	ActionStartPreparing CartAction = "start"
	ActionMarkPrepared   CartAction = "prepared"
	ActionPostpone       CartAction = "postpone"
	ActionMarkDelivered  CartAction = "delivered"
	ActionAbandon        CartAction = "abandon"
)

// ErrInvalidTransition is returned when a workflow action is not allowed
// from the cart's current status
var ErrInvalidTransition = errors.New("domain: invalid cart status transition")

// Apply returns the status the cart moves to under the given action.
// Terminal statuses accept no action at all.
func (s CartStatus) Apply(action CartAction) (CartStatus, error) {
	if s.IsTerminal() {
		return s, ErrInvalidTransition
	}

	switch action {
	case ActionStartPreparing:
		return StatusPreparing, nil
	case ActionMarkPrepared:
		if s != StatusPreparing {
			return s, ErrInvalidTransition
		}
		return StatusPrepared, nil
	case ActionPostpone:
		if s != StatusPreparing {
			return s, ErrInvalidTransition
		}
		return StatusReceived, nil
	case ActionMarkDelivered:
		if s != StatusPrepared {
			return s, ErrInvalidTransition
		}
		return StatusDelivered, nil
	case ActionAbandon:
		return StatusAbandoned, nil
	default:
		return s, ErrInvalidTransition
	}
}

// Cart represents one customer's order for one delivery
type Cart struct {
	ID     int64
	UserID int64
	// SlotID is nil when the cart's slot has been deleted
	SlotID     *int64
	Status     CartStatus
	Annotation string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPrepared returns true if the basket is waiting for pickup
func (c *Cart) IsPrepared() bool {
	return c.Status == StatusPrepared
}

// IsOwnedBy returns true if the cart belongs to the given user
func (c *Cart) IsOwnedBy(userID int64) bool {
	return c.UserID == userID
}

// IsInSlot returns true if the cart is currently bound to the given slot
func (c *Cart) IsInSlot(slotID int64) bool {
	return c.SlotID != nil && *c.SlotID == slotID
}

// CartItem is a priced line in a cart. Label, unit price and unit type are
// copied from the Article at add-time and never re-synced, so historical
// carts keep their prices when the catalog changes.
type CartItem struct {
	ID        int64
	CartID    int64
	Label     string
	UnitPrice decimal.Decimal
	UnitType  UnitType
	Quantity  decimal.Decimal
}

// LineTotal returns unit_price × quantity, computed on read, never stored
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// CartTotal sums line totals over items; an empty cart totals exactly zero
func CartTotal(items []*CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
