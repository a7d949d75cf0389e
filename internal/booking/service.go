package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/metrics"
	"github.com/clinlix/cleaning-marketplace/internal/notify"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

var (
	ErrInvalidOvertime = errors.New("overtime minutes must not be negative")
)

type Service struct {
	repo     Repository
	engine   *pricing.Engine
	notifier notify.Sender
	metrics  *metrics.Metrics
}

func NewService(repo Repository, engine *pricing.Engine, notifier notify.Sender, m *metrics.Metrics) *Service {
	if notifier == nil {
		notifier = notify.LogSender{}
	}
	return &Service{
		repo:     repo,
		engine:   engine,
		notifier: notifier,
		metrics:  m,
	}
}

// Create turns a completed draft into a persisted booking. The total is
// priced at creation with zero overtime; overtime settles after the visit.
// The notification is fire-and-forget: a failed send is logged and never
// rolls the booking back.
func (s *Service) Create(ctx context.Context, draft Draft, contactEmail, contactName string) (*Booking, error) {
	if !draft.Submittable() {
		return nil, ErrDraftIncomplete
	}

	currency := draft.Currency()
	quote, err := s.engine.QuoteBooking(ctx, draft.Address.PackageCode(), draft.Recurring, draft.AddonIDs, 0, currency)
	if err != nil {
		return nil, fmt.Errorf("price booking: %w", err)
	}

	created, err := s.repo.Insert(ctx, Booking{
		CustomerID:  draft.CustomerID,
		ProviderID:  draft.ProviderID,
		Date:        draft.Date,
		Start:       draft.Start,
		PackageCode: draft.Address.PackageCode(),
		AddonIDs:    quote.PricedAddons,
		Recurring:   draft.Recurring,
		Currency:    currency,
		Total:       quote.Total,
		AddressLine: draft.Address.DisplayLine(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	s.metrics.ObserveBookingCreated(string(currency))

	if contactEmail != "" {
		go s.sendConfirmation(created, contactEmail, contactName)
	}

	return created, nil
}

func (s *Service) sendConfirmation(b *Booking, email, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := notify.Message{
		To:      email,
		ToName:  name,
		Subject: "Your cleaning is booked",
		Body: fmt.Sprintf("Your cleaning on %s at %s is confirmed. Total: %s %s.",
			b.Date.Format("2006-01-02"), b.Start, b.Total, b.Currency),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.Printf("booking %s confirmation notify failed: %v", b.ID, err)
	}
}

// SettleOvertime reprices a booking with accrued overtime and stores the new
// total. The stored breakdown stays reproducible: repricing uses the same
// engine as creation.
func (s *Service) SettleOvertime(ctx context.Context, id uuid.UUID, minutes int) (*Booking, error) {
	if minutes < 0 {
		return nil, ErrInvalidOvertime
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}

	quote, err := s.engine.QuoteBooking(ctx, b.PackageCode, b.Recurring, b.AddonIDs, minutes, b.Currency)
	if err != nil {
		return nil, fmt.Errorf("reprice booking: %w", err)
	}

	updated, err := s.repo.UpdateOvertime(ctx, id, minutes, quote.Total.Cents())
	if err != nil {
		return nil, fmt.Errorf("update booking total: %w", err)
	}

	return updated, nil
}

// GetBooking retrieves one booking by id.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListBookingsByCustomer retrieves a customer's bookings, newest first.
func (s *Service) ListBookingsByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]Booking, error) {
	if limit <= 0 {
		limit = 20 // default
	}
	if limit > 100 {
		limit = 100 // max
	}
	if offset < 0 {
		offset = 0
	}

	bookings, err := s.repo.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings by customer: %w", err)
	}
	return bookings, nil
}
