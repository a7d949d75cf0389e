package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/booking"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
	"github.com/clinlix/cleaning-marketplace/internal/provider"
)

type AddSlotRequest struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

type SlotResponse struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Date       string    `json:"date"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
}

func toSlotResponse(s availability.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		ProviderID: s.ProviderID,
		Date:       s.Date.Format("2006-01-02"),
		Start:      s.Start.String(),
		End:        s.End.String(),
	}
}

type ProviderResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	RatingAvg    float64   `json:"rating_avg"`
	RatingCount  int       `json:"rating_count"`
	Verified     bool      `json:"verified"`
	Skills       []string  `json:"skills,omitempty"`
	ServiceAreas []string  `json:"service_areas,omitempty"`
}

func toProviderResponse(p provider.Profile) ProviderResponse {
	return ProviderResponse{
		ID:           p.ID,
		Name:         p.Name,
		RatingAvg:    p.RatingAvg,
		RatingCount:  p.RatingCount,
		Verified:     p.Verified,
		Skills:       p.Skills,
		ServiceAreas: p.ServiceAreas,
	}
}

type QuoteRequest struct {
	PackageCode     string   `json:"package_code"`
	Recurring       bool     `json:"recurring"`
	AddonIDs        []string `json:"addon_ids,omitempty"`
	OvertimeMinutes int      `json:"overtime_minutes,omitempty"`
	Currency        string   `json:"currency"`
}

type QuoteResponse struct {
	Currency       string   `json:"currency"`
	Base           string   `json:"base"`
	AddonsTotal    string   `json:"addons_total"`
	OvertimeCharge string   `json:"overtime_charge"`
	Total          string   `json:"total"`
	PricedAddonIDs []string `json:"priced_addon_ids,omitempty"`
}

func toQuoteResponse(q pricing.Quote) QuoteResponse {
	priced := make([]string, 0, len(q.PricedAddons))
	for _, id := range q.PricedAddons {
		priced = append(priced, id.String())
	}
	return QuoteResponse{
		Currency:       string(q.Currency),
		Base:           q.Base.String(),
		AddonsTotal:    q.AddonsTotal.String(),
		OvertimeCharge: q.OvertimeCharge.String(),
		Total:          q.Total.String(),
		PricedAddonIDs: priced,
	}
}

type CreateBookingRequest struct {
	CustomerID   string          `json:"customer_id"`
	Address      json.RawMessage `json:"address"` // address envelope, see internal/address
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	ProviderID   string          `json:"provider_id"`
	AddonIDs     []string        `json:"addon_ids,omitempty"`
	Recurring    bool            `json:"recurring"`
	ContactEmail string          `json:"contact_email,omitempty"`
	ContactName  string          `json:"contact_name,omitempty"`
}

type BookingResponse struct {
	ID              uuid.UUID   `json:"id"`
	CustomerID      uuid.UUID   `json:"customer_id"`
	ProviderID      uuid.UUID   `json:"provider_id"`
	Date            string      `json:"date"`
	Start           string      `json:"start"`
	PackageCode     string      `json:"package_code"`
	AddonIDs        []uuid.UUID `json:"addon_ids,omitempty"`
	Recurring       bool        `json:"recurring"`
	Currency        string      `json:"currency"`
	Total           string      `json:"total"`
	OvertimeMinutes int         `json:"overtime_minutes"`
	AddressLine     string      `json:"address_line"`
	CreatedAt       time.Time   `json:"created_at"`
}

func toBookingResponse(b booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ProviderID:      b.ProviderID,
		Date:            b.Date.Format("2006-01-02"),
		Start:           b.Start.String(),
		PackageCode:     b.PackageCode,
		AddonIDs:        b.AddonIDs,
		Recurring:       b.Recurring,
		Currency:        string(b.Currency),
		Total:           b.Total.String(),
		OvertimeMinutes: b.OvertimeMinutes,
		AddressLine:     b.AddressLine,
		CreatedAt:       b.CreatedAt,
	}
}

type SettleOvertimeRequest struct {
	Minutes int `json:"minutes"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
