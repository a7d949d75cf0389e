package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/metrics"
)

var (
	// ErrNoPackage signals a caller bug: every address carries a package
	// code, so quoting without a package is a precondition violation.
	ErrNoPackage = errors.New("no package supplied for price computation")
)

// Quote is the deterministic price breakdown for one booking.
type Quote struct {
	Currency       Currency
	Base           Amount
	AddonsTotal    Amount
	OvertimeCharge Amount
	Total          Amount
	// PricedAddons lists the addon ids that actually contributed; unknown
	// ids are dropped silently (the catalog is the source of truth) and
	// observable by their absence here.
	PricedAddons []uuid.UUID
}

// BaseShare is the reverse operation used for display breakdowns: the base
// service price recovered from the total. For a booking without overtime it
// equals Base exactly.
func (q Quote) BaseShare() Amount {
	return q.Total - q.AddonsTotal - q.OvertimeCharge
}

// ComputeTotal computes a booking's total from its components. It is pure:
// identical inputs always yield identical output. Missing addons and zero
// overtime are valid zero-contribution cases, never errors.
func ComputeTotal(pkg *Package, recurring bool, addonIDs []uuid.UUID, catalog map[uuid.UUID]Addon, overtimeMinutes int, rule OvertimeRule, currency Currency) (Quote, error) {
	if pkg == nil {
		return Quote{}, ErrNoPackage
	}

	base := pkg.OneTimePrice
	if recurring {
		base = pkg.RecurringPrice
	}

	var addonsTotal Amount
	var priced []uuid.UUID
	for _, id := range addonIDs {
		addon, ok := catalog[id]
		if !ok {
			continue
		}
		addonsTotal += addon.Price
		priced = append(priced, id)
	}

	var overtime Amount
	if overtimeMinutes > 0 && rule.IncrementMinutes > 0 {
		// Billing rounds up: 1 minute into an increment bills the full
		// increment. Plain integer division would truncate the wrong way.
		increments := (overtimeMinutes + rule.IncrementMinutes - 1) / rule.IncrementMinutes
		overtime = rule.PriceFor(currency).MulInt(increments)
	}

	return Quote{
		Currency:       currency,
		Base:           base,
		AddonsTotal:    addonsTotal,
		OvertimeCharge: overtime,
		Total:          base + addonsTotal + overtime,
		PricedAddons:   priced,
	}, nil
}

// Engine quotes bookings against the persisted catalog.
type Engine struct {
	catalog CatalogRepository
	metrics *metrics.Metrics
}

func NewEngine(catalog CatalogRepository, m *metrics.Metrics) *Engine {
	return &Engine{
		catalog: catalog,
		metrics: m,
	}
}

// QuoteBooking loads the package, addon catalog, and overtime rule, then
// delegates to ComputeTotal.
func (e *Engine) QuoteBooking(ctx context.Context, packageCode string, recurring bool, addonIDs []uuid.UUID, overtimeMinutes int, currency Currency) (Quote, error) {
	pkg, err := e.catalog.GetPackage(ctx, packageCode)
	if err != nil {
		return Quote{}, fmt.Errorf("load package %q: %w", packageCode, err)
	}

	addons, err := e.catalog.ListAddons(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("load addon catalog: %w", err)
	}
	byID := make(map[uuid.UUID]Addon, len(addons))
	for _, a := range addons {
		byID[a.ID] = a
	}

	rule, err := e.catalog.GetOvertimeRule(ctx)
	if err != nil {
		return Quote{}, fmt.Errorf("load overtime rule: %w", err)
	}

	quote, err := ComputeTotal(pkg, recurring, addonIDs, byID, overtimeMinutes, *rule, currency)
	if err != nil {
		return Quote{}, err
	}

	e.metrics.ObserveQuote()
	return quote, nil
}
