package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinlix/cleaning-marketplace/internal/metrics"
	redisclient "github.com/clinlix/cleaning-marketplace/internal/redis"
)

var (
	ErrSlotOverlap  = errors.New("slot overlaps an existing availability window")
	ErrOutOfHours   = errors.New("slot must lie within business hours with start before end")
	ErrCalendarBusy = errors.New("calendar is being edited, please retry")
)

type Service struct {
	repo    Repository
	locker  redisclient.Locker
	metrics *metrics.Metrics
}

func NewService(repo Repository, locker redisclient.Locker, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		locker:  locker,
		metrics: m,
	}
}

// AddSlot declares a new bookable window for a provider. The overlap check and
// the insert run inside a per provider-day distributed lock so concurrent
// sessions cannot both pass the check against a stale snapshot; the table's
// exclusion constraint backs the invariant should the lock ever be bypassed.
func (s *Service) AddSlot(ctx context.Context, providerID uuid.UUID, date time.Time, start, end TimeOfDay) (*Slot, error) {
	if start >= end || start < BusinessOpen || end > BusinessClose {
		s.metrics.ObserveSlotAdd("out_of_hours")
		return nil, ErrOutOfHours
	}

	day := NormalizeDate(date)

	var created *Slot

	err := s.locker.WithCalendarLock(ctx, providerID, day.Format("2006-01-02"), func(lockCtx context.Context) error {
		existing, err := s.repo.ListForDay(lockCtx, providerID, day)
		if err != nil {
			return fmt.Errorf("list slots for day: %w", err)
		}

		for _, other := range existing {
			if overlaps(start, end, other.Start, other.End) {
				return ErrSlotOverlap
			}
		}

		slot, err := s.repo.Insert(lockCtx, Slot{
			ProviderID: providerID,
			Date:       day,
			Start:      start,
			End:        end,
		})
		if err != nil {
			return fmt.Errorf("insert slot: %w", err)
		}

		created = slot
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			s.metrics.ObserveSlotAdd("busy")
			return nil, ErrCalendarBusy
		}
		if errors.Is(err, ErrSlotOverlap) {
			s.metrics.ObserveSlotAdd("overlap")
			return nil, ErrSlotOverlap
		}
		return nil, err
	}

	s.metrics.ObserveSlotAdd("accepted")
	return created, nil
}

// RemoveSlot deletes a declared window. A missing slot is reported as
// ErrSlotNotFound; callers treat it as already-satisfied intent.
func (s *Service) RemoveSlot(ctx context.Context, slotID uuid.UUID) error {
	if err := s.repo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return err
		}
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

// ListSlots returns a snapshot of one provider's windows over [from, to],
// ordered by date then start time.
func (s *Service) ListSlots(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]Slot, error) {
	from, to = NormalizeDate(from), NormalizeDate(to)
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s after %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	slots, err := s.repo.ListRange(ctx, providerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}
