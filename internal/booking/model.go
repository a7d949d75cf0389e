package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

// Booking is the persisted record a confirmed draft turns into. The address
// is snapshotted as its display line; the live address record stays with the
// customer profile.
type Booking struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	ProviderID      uuid.UUID
	Date            time.Time
	Start           availability.TimeOfDay
	PackageCode     string
	AddonIDs        []uuid.UUID
	Recurring       bool
	Currency        pricing.Currency
	Total           pricing.Amount
	OvertimeMinutes int
	AddressLine     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
