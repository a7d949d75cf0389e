package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPackage() *Package {
	return &Package{
		Code:           "t2_standard",
		Bedrooms:       2,
		Areas:          []string{"bathroom", "kitchen", "livingroom", "floors"},
		TimeIncluded:   "3h",
		OneTimePrice:   MustAmount("69.99"),
		RecurringPrice: MustAmount("59.99"),
	}
}

func standardRule() OvertimeRule {
	return OvertimeRule{
		IncrementMinutes: 30,
		PriceEUR:         MustAmount("10.00"),
		PriceCAD:         MustAmount("15.00"),
	}
}

func TestComputeTotalBaseOnly(t *testing.T) {
	pkg := standardPackage()

	q, err := ComputeTotal(pkg, false, nil, nil, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)

	// Round-trip: one-time booking with nothing else equals the package price.
	assert.Equal(t, pkg.OneTimePrice, q.Total)
	assert.Equal(t, "69.99", q.Total.String())
	assert.Equal(t, Amount(0), q.AddonsTotal)
	assert.Equal(t, Amount(0), q.OvertimeCharge)
}

func TestComputeTotalRecurringUsesRecurringPrice(t *testing.T) {
	q, err := ComputeTotal(standardPackage(), true, nil, nil, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, "59.99", q.Total.String())
}

func TestComputeTotalNilPackage(t *testing.T) {
	_, err := ComputeTotal(nil, false, nil, nil, 0, standardRule(), CurrencyEUR)
	assert.ErrorIs(t, err, ErrNoPackage)
}

func TestComputeTotalAddonAggregation(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	catalog := map[uuid.UUID]Addon{
		a: {ID: a, NameEN: "Inside fridge", Price: MustAmount("5.00"), Kind: AddonFlat},
		b: {ID: b, NameEN: "Inside windows", Price: MustAmount("7.50"), Kind: AddonPerRoom},
	}

	forward, err := ComputeTotal(standardPackage(), false, []uuid.UUID{a, b}, catalog, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, MustAmount("12.50"), forward.AddonsTotal)
	assert.Equal(t, MustAmount("82.49"), forward.Total)

	// Order of the id set must not matter.
	reversed, err := ComputeTotal(standardPackage(), false, []uuid.UUID{b, a}, catalog, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, forward.Total, reversed.Total)
}

func TestComputeTotalUnknownAddonIgnored(t *testing.T) {
	a := uuid.New()
	catalog := map[uuid.UUID]Addon{
		a: {ID: a, Price: MustAmount("5.00")},
	}

	q, err := ComputeTotal(standardPackage(), false, []uuid.UUID{a, uuid.New()}, catalog, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, MustAmount("5.00"), q.AddonsTotal)
	assert.Equal(t, []uuid.UUID{a}, q.PricedAddons)
}

func TestComputeTotalOvertimeRoundsUp(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0.00"},
		{1, "10.00"},  // partial increment bills a full one
		{10, "10.00"},
		{30, "10.00"},
		{31, "20.00"},
		{60, "20.00"},
		{61, "30.00"},
	}

	for _, tc := range cases {
		q, err := ComputeTotal(standardPackage(), false, nil, nil, tc.minutes, standardRule(), CurrencyEUR)
		require.NoError(t, err)
		assert.Equal(t, tc.want, q.OvertimeCharge.String(), "minutes=%d", tc.minutes)
	}
}

func TestComputeTotalOvertimeCurrencySpecific(t *testing.T) {
	q, err := ComputeTotal(standardPackage(), false, nil, nil, 45, standardRule(), CurrencyCAD)
	require.NoError(t, err)
	assert.Equal(t, MustAmount("30.00"), q.OvertimeCharge) // 2 increments at 15.00
}

func TestComputeTotalDeterministic(t *testing.T) {
	a := uuid.New()
	catalog := map[uuid.UUID]Addon{a: {ID: a, Price: MustAmount("3.25")}}

	first, err := ComputeTotal(standardPackage(), true, []uuid.UUID{a}, catalog, 17, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	second, err := ComputeTotal(standardPackage(), true, []uuid.UUID{a}, catalog, 17, standardRule(), CurrencyEUR)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Scenario from the booking wizard: recurring package with one addon, no
// overtime. The recurring discount applies to the base only.
func TestComputeTotalRecurringWithAddonScenario(t *testing.T) {
	a := uuid.New()
	catalog := map[uuid.UUID]Addon{a: {ID: a, Price: MustAmount("10.00")}}

	q, err := ComputeTotal(standardPackage(), true, []uuid.UUID{a}, catalog, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, MustAmount("69.99"), q.Total)
}

func TestQuoteBaseShareRoundTrip(t *testing.T) {
	a := uuid.New()
	catalog := map[uuid.UUID]Addon{a: {ID: a, Price: MustAmount("7.50")}}

	// Without overtime the recovered base matches the forward base exactly.
	q, err := ComputeTotal(standardPackage(), false, []uuid.UUID{a}, catalog, 0, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, q.Base, q.BaseShare())

	// And still holds once overtime enters the breakdown.
	q, err = ComputeTotal(standardPackage(), false, []uuid.UUID{a}, catalog, 40, standardRule(), CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, q.Base, q.BaseShare())
}
