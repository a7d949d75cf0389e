package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinlix/cleaning-marketplace/internal/notify"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

type fakeBookings struct {
	byID map[uuid.UUID]Booking
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: make(map[uuid.UUID]Booking)}
}

func (f *fakeBookings) Insert(_ context.Context, b Booking) (*Booking, error) {
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.byID[b.ID] = b
	return &b, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeBookings) UpdateOvertime(_ context.Context, id uuid.UUID, minutes int, totalCents int64) (*Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b.OvertimeMinutes = minutes
	b.Total = pricing.Cents(totalCents)
	b.UpdatedAt = time.Now()
	f.byID[id] = b
	return &b, nil
}

func (f *fakeBookings) ListByCustomer(_ context.Context, customerID uuid.UUID, limit, offset int) ([]Booking, error) {
	var out []Booking
	for _, b := range f.byID {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCatalog struct {
	pkg    pricing.Package
	addons []pricing.Addon
	rule   pricing.OvertimeRule
}

func (f *fakeCatalog) GetPackage(_ context.Context, code string) (*pricing.Package, error) {
	if code != f.pkg.Code {
		return nil, pricing.ErrPackageNotFound
	}
	p := f.pkg
	return &p, nil
}

func (f *fakeCatalog) ListAddons(context.Context) ([]pricing.Addon, error) {
	return f.addons, nil
}

func (f *fakeCatalog) GetOvertimeRule(context.Context) (*pricing.OvertimeRule, error) {
	r := f.rule
	return &r, nil
}

type captureSender struct {
	got chan notify.Message
}

func (c *captureSender) Send(_ context.Context, msg notify.Message) error {
	c.got <- msg
	return nil
}

func testEngine(addonPrice string) (*pricing.Engine, uuid.UUID) {
	addonID := uuid.New()
	catalog := &fakeCatalog{
		pkg: pricing.Package{
			Code:           "t2_standard",
			OneTimePrice:   pricing.MustAmount("69.99"),
			RecurringPrice: pricing.MustAmount("59.99"),
		},
		addons: []pricing.Addon{{ID: addonID, NameEN: "Inside fridge", Price: pricing.MustAmount(addonPrice)}},
		rule:   pricing.OvertimeRule{IncrementMinutes: 30, PriceEUR: pricing.MustAmount("10.00"), PriceCAD: pricing.MustAmount("15.00")},
	}
	return pricing.NewEngine(catalog, nil), addonID
}

func completeDraft(addonID uuid.UUID) Draft {
	return NewDraft(uuid.New()).
		SetAddress(lisbonAddress()).
		SetDateTime(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), 10*60).
		SetProvider(uuid.New()).
		ToggleAddon(addonID)
}

func TestCreateRejectsIncompleteDraft(t *testing.T) {
	engine, _ := testEngine("10.00")
	svc := NewService(newFakeBookings(), engine, nil, nil)

	incomplete := NewDraft(uuid.New()).SetAddress(lisbonAddress())
	_, err := svc.Create(context.Background(), incomplete, "", "")
	assert.ErrorIs(t, err, ErrDraftIncomplete)
}

func TestCreatePricesAndPersists(t *testing.T) {
	engine, addonID := testEngine("10.00")
	repo := newFakeBookings()
	svc := NewService(repo, engine, nil, nil)

	draft := completeDraft(addonID).SetRecurring(true)

	created, err := svc.Create(context.Background(), draft, "", "")
	require.NoError(t, err)

	// Recurring base 59.99 + addon 10.00.
	assert.Equal(t, pricing.MustAmount("69.99"), created.Total)
	assert.Equal(t, pricing.CurrencyEUR, created.Currency)
	assert.Equal(t, "t2_standard", created.PackageCode)
	assert.Equal(t, []uuid.UUID{addonID}, created.AddonIDs)
	assert.Contains(t, created.AddressLine, "Rua das Flores 12")

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Total, stored.Total)
}

func TestCreateSendsConfirmation(t *testing.T) {
	engine, addonID := testEngine("10.00")
	sender := &captureSender{got: make(chan notify.Message, 1)}
	svc := NewService(newFakeBookings(), engine, sender, nil)

	_, err := svc.Create(context.Background(), completeDraft(addonID), "ana@example.com", "Ana")
	require.NoError(t, err)

	select {
	case msg := <-sender.got:
		assert.Equal(t, "ana@example.com", msg.To)
		assert.Contains(t, msg.Body, "2026-09-14")
	case <-time.After(2 * time.Second):
		t.Fatal("no confirmation sent")
	}
}

func TestSettleOvertimeRepricesBooking(t *testing.T) {
	engine, addonID := testEngine("10.00")
	repo := newFakeBookings()
	svc := NewService(repo, engine, nil, nil)

	created, err := svc.Create(context.Background(), completeDraft(addonID), "", "")
	require.NoError(t, err)
	assert.Equal(t, pricing.MustAmount("79.99"), created.Total) // 69.99 + 10.00

	// 40 minutes at a 30-minute increment bills two increments.
	updated, err := svc.SettleOvertime(context.Background(), created.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.OvertimeMinutes)
	assert.Equal(t, pricing.MustAmount("99.99"), updated.Total)
}

func TestSettleOvertimeRejectsNegative(t *testing.T) {
	engine, _ := testEngine("10.00")
	svc := NewService(newFakeBookings(), engine, nil, nil)

	_, err := svc.SettleOvertime(context.Background(), uuid.New(), -5)
	assert.ErrorIs(t, err, ErrInvalidOvertime)
}

func TestGetBookingNotFound(t *testing.T) {
	engine, _ := testEngine("10.00")
	svc := NewService(newFakeBookings(), engine, nil, nil)

	_, err := svc.GetBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
