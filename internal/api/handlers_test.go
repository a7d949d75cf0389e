package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/booking"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
	"github.com/clinlix/cleaning-marketplace/internal/provider"
)

type fakeSlotService struct {
	addErr  error
	slots   []availability.Slot
	removed []uuid.UUID
}

func (f *fakeSlotService) AddSlot(_ context.Context, providerID uuid.UUID, date time.Time, start, end availability.TimeOfDay) (*availability.Slot, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &availability.Slot{
		ID:         uuid.New(),
		ProviderID: providerID,
		Date:       availability.NormalizeDate(date),
		Start:      start,
		End:        end,
	}, nil
}

func (f *fakeSlotService) RemoveSlot(_ context.Context, slotID uuid.UUID) error {
	for _, s := range f.slots {
		if s.ID == slotID {
			f.removed = append(f.removed, slotID)
			return nil
		}
	}
	return availability.ErrSlotNotFound
}

func (f *fakeSlotService) ListSlots(context.Context, uuid.UUID, time.Time, time.Time) ([]availability.Slot, error) {
	return f.slots, nil
}

type fakeMatcher struct {
	profiles []provider.Profile
}

func (f *fakeMatcher) FindAvailableProviders(context.Context, time.Time) ([]provider.Profile, error) {
	return f.profiles, nil
}

type fakePricer struct {
	quote pricing.Quote
	err   error
}

func (f *fakePricer) QuoteBooking(context.Context, string, bool, []uuid.UUID, int, pricing.Currency) (pricing.Quote, error) {
	return f.quote, f.err
}

type fakeBookingService struct {
	created *booking.Booking
	err     error
}

func (f *fakeBookingService) Create(_ context.Context, draft booking.Draft, _, _ string) (*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !draft.Submittable() {
		return nil, booking.ErrDraftIncomplete
	}
	return f.created, nil
}

func (f *fakeBookingService) SettleOvertime(context.Context, uuid.UUID, int) (*booking.Booking, error) {
	return f.created, f.err
}

func (f *fakeBookingService) GetBooking(context.Context, uuid.UUID) (*booking.Booking, error) {
	if f.created == nil {
		return nil, booking.ErrBookingNotFound
	}
	return f.created, nil
}

func (f *fakeBookingService) ListBookingsByCustomer(context.Context, uuid.UUID, int, int) ([]booking.Booking, error) {
	return nil, nil
}

func testRouter(slots SlotService, matcher MatcherService, pricer PriceService, bookings BookingService) http.Handler {
	r := chi.NewRouter()
	if slots != nil {
		r.Post("/providers/{providerID}/slots", addSlotHandler(slots))
		r.Delete("/slots/{slotID}", removeSlotHandler(slots))
	}
	if matcher != nil {
		r.Get("/providers/available", availableProvidersHandler(matcher))
	}
	if pricer != nil {
		r.Post("/bookings/quote", quoteHandler(pricer))
	}
	if bookings != nil {
		r.Post("/bookings", createBookingHandler(bookings))
	}
	return r
}

func TestAddSlotHandlerCreated(t *testing.T) {
	router := testRouter(&fakeSlotService{}, nil, nil, nil)

	body := `{"date":"2026-09-14","start":"09:00","end":"11:00"}`
	req := httptest.NewRequest(http.MethodPost, "/providers/"+uuid.NewString()+"/slots", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp SlotResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "2026-09-14", resp.Date)
	assert.Equal(t, "09:00", resp.Start)
}

func TestAddSlotHandlerMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"overlap", availability.ErrSlotOverlap, http.StatusConflict, "slot_overlap"},
		{"busy", availability.ErrCalendarBusy, http.StatusConflict, "calendar_busy"},
		{"out of hours", availability.ErrOutOfHours, http.StatusUnprocessableEntity, "out_of_hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(&fakeSlotService{addErr: tc.err}, nil, nil, nil)

			body := `{"date":"2026-09-14","start":"09:00","end":"11:00"}`
			req := httptest.NewRequest(http.MethodPost, "/providers/"+uuid.NewString()+"/slots", strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tc.wantCode, resp.Error)
		})
	}
}

func TestAddSlotHandlerRejectsBadInput(t *testing.T) {
	router := testRouter(&fakeSlotService{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/providers/not-a-uuid/slots", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/providers/"+uuid.NewString()+"/slots",
		strings.NewReader(`{"date":"14/09/2026","start":"09:00","end":"11:00"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveSlotHandlerNotFound(t *testing.T) {
	router := testRouter(&fakeSlotService{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/slots/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailableProvidersHandlerEmptyIsOK(t *testing.T) {
	router := testRouter(nil, &fakeMatcher{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/providers/available?date=2026-09-14", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestQuoteHandler(t *testing.T) {
	pricer := &fakePricer{quote: pricing.Quote{
		Currency:    pricing.CurrencyEUR,
		Base:        pricing.MustAmount("69.99"),
		AddonsTotal: pricing.MustAmount("12.50"),
		Total:       pricing.MustAmount("82.49"),
	}}
	router := testRouter(nil, nil, pricer, nil)

	body := `{"package_code":"t2_standard","currency":"EUR"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings/quote", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp QuoteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "82.49", resp.Total)
}

func TestQuoteHandlerRejectsUnknownCurrency(t *testing.T) {
	router := testRouter(nil, nil, &fakePricer{}, nil)

	body := `{"package_code":"t2_standard","currency":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings/quote", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandlerIncompleteDraft(t *testing.T) {
	router := testRouter(nil, nil, nil, &fakeBookingService{})

	// Address and provider present, date/time missing.
	body := `{
		"customer_id": "` + uuid.NewString() + `",
		"provider_id": "` + uuid.NewString() + `",
		"address": {"country":"PT","fields":{"rua":"Rua A","localidade":"Lisboa","distrito":"Lisboa","codigo_postal":"1200-192","package_code":"t2_standard"}}
	}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "draft_incomplete", resp.Error)
}
