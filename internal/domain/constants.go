package domain

// Business validation constants
const (
	MaxAnnotationLength = 2000
	MaxLabelLength      = 255

	// Quantity is a fixed-point number with 3 decimal places,
	// unit prices carry 2 decimal places
	QuantityScale  = 3
	UnitPriceScale = 2
)

// Time format constants
const (
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)

// statusNames human-independent wire names for cart statuses
var statusNames = map[CartStatus]string{
	StatusReceived:  "received",
	StatusPreparing: "preparing",
	StatusPrepared:  "prepared",
	StatusDelivered: "delivered",
	StatusAbandoned: "abandoned",
}

// Name returns the wire name of the status, or "unknown"
func (s CartStatus) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseCartAction maps a wire action name to a workflow action
func ParseCartAction(s string) (CartAction, bool) {
	switch CartAction(s) {
	case ActionStartPreparing, ActionMarkPrepared, ActionPostpone, ActionMarkDelivered, ActionAbandon:
		return CartAction(s), true
	default:
		return "", false
	}
}
