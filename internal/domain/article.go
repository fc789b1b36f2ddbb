package domain

import "github.com/shopspring/decimal"

// UnitType tells whether an article is sold per piece or by weight
type UnitType string

const (
	UnitTypeUnit   UnitType = "U"
	UnitTypeWeight UnitType = "W"
)

// IsValid returns true for known unit types
func (u UnitType) IsValid() bool {
	return u == UnitTypeUnit || u == UnitTypeWeight
}

// Article is a catalog entry. It has an independent lifecycle: editing an
// article never changes existing cart items.
type Article struct {
	ID        int64
	Code      int
	Label     string
	UnitPrice decimal.Decimal
	UnitType  UnitType
}
