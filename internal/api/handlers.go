package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/address"
	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/booking"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
	"github.com/clinlix/cleaning-marketplace/internal/provider"
)

// Service interfaces consumed by the handlers. The concrete services satisfy
// them; tests substitute fakes.

type SlotService interface {
	AddSlot(ctx context.Context, providerID uuid.UUID, date time.Time, start, end availability.TimeOfDay) (*availability.Slot, error)
	RemoveSlot(ctx context.Context, slotID uuid.UUID) error
	ListSlots(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]availability.Slot, error)
}

type MatcherService interface {
	FindAvailableProviders(ctx context.Context, date time.Time) ([]provider.Profile, error)
}

type PriceService interface {
	QuoteBooking(ctx context.Context, packageCode string, recurring bool, addonIDs []uuid.UUID, overtimeMinutes int, currency pricing.Currency) (pricing.Quote, error)
}

type BookingService interface {
	Create(ctx context.Context, draft booking.Draft, contactEmail, contactName string) (*booking.Booking, error)
	SettleOvertime(ctx context.Context, id uuid.UUID, minutes int) (*booking.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListBookingsByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]booking.Booking, error)
}

func addSlotHandler(svc SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerID, err := uuid.Parse(chi.URLParam(r, "providerID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_provider_id", "provider id must be a valid UUID")
			return
		}

		var req AddSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		date, err := availability.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		start, err := availability.ParseTimeOfDay(req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start", "start must be HH:MM")
			return
		}
		end, err := availability.ParseTimeOfDay(req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end", "end must be HH:MM")
			return
		}

		slot, err := svc.AddSlot(r.Context(), providerID, date, start, end)
		if err != nil {
			handleSlotError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toSlotResponse(*slot))
	}
}

func listSlotsHandler(svc SlotService, windowDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerID, err := uuid.Parse(chi.URLParam(r, "providerID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_provider_id", "provider id must be a valid UUID")
			return
		}

		// The schedule view defaults to today through +N days; any explicit
		// range is honored as-is.
		from := availability.NormalizeDate(time.Now().UTC())
		to := from.AddDate(0, 0, windowDays)

		if v := r.URL.Query().Get("from"); v != "" {
			if from, err = availability.ParseDate(v); err != nil {
				writeError(w, http.StatusBadRequest, "invalid_from", "from must be YYYY-MM-DD")
				return
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if to, err = availability.ParseDate(v); err != nil {
				writeError(w, http.StatusBadRequest, "invalid_to", "to must be YYYY-MM-DD")
				return
			}
		}

		slots, err := svc.ListSlots(r.Context(), providerID, from, to)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]SlotResponse, 0, len(slots))
		for _, s := range slots {
			resp = append(resp, toSlotResponse(s))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func removeSlotHandler(svc SlotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, err := uuid.Parse(chi.URLParam(r, "slotID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", "slot id must be a valid UUID")
			return
		}

		if err := svc.RemoveSlot(r.Context(), slotID); err != nil {
			if errors.Is(err, availability.ErrSlotNotFound) {
				writeError(w, http.StatusNotFound, "slot_not_found", "slot does not exist")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func availableProvidersHandler(svc MatcherService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := availability.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date query parameter must be YYYY-MM-DD")
			return
		}

		profiles, err := svc.FindAvailableProviders(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		// Empty is a valid outcome; the client prompts for another date.
		resp := make([]ProviderResponse, 0, len(profiles))
		for _, p := range profiles {
			resp = append(resp, toProviderResponse(p))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func quoteHandler(svc PriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		currency := pricing.Currency(req.Currency)
		if !currency.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_currency", "currency must be EUR or CAD")
			return
		}

		addonIDs, err := parseUUIDs(req.AddonIDs)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_addon_id", "addon ids must be valid UUIDs")
			return
		}

		quote, err := svc.QuoteBooking(r.Context(), req.PackageCode, req.Recurring, addonIDs, req.OvertimeMinutes, currency)
		if err != nil {
			handleQuoteError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toQuoteResponse(quote))
	}
}

func createBookingHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_customer_id", "customer_id must be a valid UUID")
			return
		}

		draft := booking.NewDraft(customerID)

		if len(req.Address) > 0 {
			addr, err := address.Decode(req.Address)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_address", err.Error())
				return
			}
			draft = draft.SetAddress(addr)
		}

		if req.Date != "" || req.Time != "" {
			date, err := availability.ParseDate(req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
				return
			}
			start, err := availability.ParseTimeOfDay(req.Time)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_time", "time must be HH:MM")
				return
			}
			draft = draft.SetDateTime(date, start)
		}

		if req.ProviderID != "" {
			providerID, err := uuid.Parse(req.ProviderID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_provider_id", "provider_id must be a valid UUID")
				return
			}
			draft = draft.SetProvider(providerID)
		}

		addonIDs, err := parseUUIDs(req.AddonIDs)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_addon_id", "addon ids must be valid UUIDs")
			return
		}
		for _, id := range addonIDs {
			draft = draft.ToggleAddon(id)
		}
		draft = draft.SetRecurring(req.Recurring)

		created, err := svc.Create(r.Context(), draft, req.ContactEmail, req.ContactName)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBookingResponse(*created))
	}
}

func getBookingHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a valid UUID")
			return
		}

		b, err := svc.GetBooking(r.Context(), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponse(*b))
	}
}

func listBookingsHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := uuid.Parse(r.URL.Query().Get("customer_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_customer_id", "customer_id query parameter must be a valid UUID")
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		bookings, err := svc.ListBookingsByCustomer(r.Context(), customerID, limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]BookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, toBookingResponse(b))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func settleOvertimeHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a valid UUID")
			return
		}

		var req SettleOvertimeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		b, err := svc.SettleOvertime(r.Context(), id, req.Minutes)
		if err != nil {
			if errors.Is(err, booking.ErrInvalidOvertime) {
				writeError(w, http.StatusBadRequest, "invalid_overtime", err.Error())
				return
			}
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toBookingResponse(*b))
	}
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func handleSlotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, availability.ErrOutOfHours):
		writeError(w, http.StatusUnprocessableEntity, "out_of_hours", err.Error())
	case errors.Is(err, availability.ErrSlotOverlap):
		writeError(w, http.StatusConflict, "slot_overlap", "the window overlaps an existing slot, pick a different time")
	case errors.Is(err, availability.ErrCalendarBusy):
		writeError(w, http.StatusConflict, "calendar_busy", "the calendar is being edited, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleQuoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrPackageNotFound):
		writeError(w, http.StatusNotFound, "package_not_found", err.Error())
	case errors.Is(err, pricing.ErrNoPackage):
		writeError(w, http.StatusBadRequest, "missing_package", err.Error())
	case errors.Is(err, pricing.ErrOvertimeRuleNotFound):
		writeError(w, http.StatusInternalServerError, "overtime_rule_missing", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrDraftIncomplete):
		writeError(w, http.StatusUnprocessableEntity, "draft_incomplete", err.Error())
	case errors.Is(err, booking.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "booking_not_found", err.Error())
	case errors.Is(err, pricing.ErrPackageNotFound):
		writeError(w, http.StatusNotFound, "package_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
