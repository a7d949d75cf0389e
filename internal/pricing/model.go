package pricing

import (
	"time"

	"github.com/google/uuid"
)

// Package is a cleaning package tier. A customer address is bound to exactly
// one package code; the package fixes both cleaning scope and base price.
// Catalog rows are operator-maintained reference data.
type Package struct {
	Code           string
	Bedrooms       int
	Areas          []string // service-area tags: bathroom, kitchen, livingroom, floors, dusting, surfaces
	TimeIncluded   string   // duration label shown to customers, e.g. "3h"
	OneTimePrice   Amount
	RecurringPrice Amount
	UpdatedAt      time.Time
}

type AddonKind string

const (
	AddonFlat    AddonKind = "flat"
	AddonPerRoom AddonKind = "per-room" // display-only distinction, price is stored pre-computed
)

// Addon is an optional extra a customer can attach to a booking.
type Addon struct {
	ID     uuid.UUID
	NameEN string
	NamePT string
	Price  Amount
	Kind   AddonKind
}

// OvertimeRule is the single catalog row governing how accrued overtime is
// billed: partial increments always round up to the next full increment.
type OvertimeRule struct {
	IncrementMinutes int
	PriceEUR         Amount
	PriceCAD         Amount
}

// PriceFor returns the per-increment charge in the booking's currency.
func (r OvertimeRule) PriceFor(c Currency) Amount {
	if c == CurrencyCAD {
		return r.PriceCAD
	}
	return r.PriceEUR
}
