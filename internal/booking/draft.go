package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/address"
	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

var (
	ErrDraftIncomplete = errors.New("draft needs address, date and time, and provider before submit")
)

// Draft is the in-progress booking wizard state. It is an immutable value:
// every transition returns a new Draft, so wizard steps compose without
// shared mutable state and each step is unit-testable without UI.
//
// A draft is submittable once address, date+time, and provider are set;
// addons and recurrence stay optional.
type Draft struct {
	CustomerID uuid.UUID
	Address    address.Address
	Date       time.Time // zero until SetDateTime
	Start      availability.TimeOfDay
	ProviderID uuid.UUID // uuid.Nil until SetProvider
	AddonIDs   []uuid.UUID
	Recurring  bool
}

func NewDraft(customerID uuid.UUID) Draft {
	return Draft{CustomerID: customerID}
}

func (d Draft) SetAddress(a address.Address) Draft {
	d.Address = a
	return d
}

func (d Draft) SetDateTime(date time.Time, start availability.TimeOfDay) Draft {
	d.Date = availability.NormalizeDate(date)
	d.Start = start
	return d
}

func (d Draft) SetProvider(id uuid.UUID) Draft {
	d.ProviderID = id
	return d
}

// ToggleAddon adds the id to the selection, or removes it when already
// selected. The receiver's slice is never mutated.
func (d Draft) ToggleAddon(id uuid.UUID) Draft {
	next := make([]uuid.UUID, 0, len(d.AddonIDs)+1)
	found := false
	for _, a := range d.AddonIDs {
		if a == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		next = append(next, id)
	}
	d.AddonIDs = next
	return d
}

func (d Draft) SetRecurring(recurring bool) Draft {
	d.Recurring = recurring
	return d
}

func (d Draft) Submittable() bool {
	return d.Address != nil && !d.Date.IsZero() && d.ProviderID != uuid.Nil
}

// Currency is fixed by the selected address; pricing never mixes currencies.
func (d Draft) Currency() pricing.Currency {
	if d.Address == nil {
		return ""
	}
	return d.Address.Currency()
}
