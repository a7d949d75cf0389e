package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound = errors.New("availability slot not found")
)

// Repository contains all DB interactions needed by the ledger service.
type Repository interface {
	// ListForDay returns the slots for one provider on one calendar date,
	// ordered by start time.
	ListForDay(ctx context.Context, providerID uuid.UUID, date time.Time) ([]Slot, error)

	// ListRange returns the slots for one provider over [from, to], ordered
	// by (date, start time).
	ListRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]Slot, error)

	// Insert persists a new slot. The slots table carries an exclusion
	// constraint over (provider, date, time range); a violating insert must
	// surface as ErrSlotOverlap.
	Insert(ctx context.Context, slot Slot) (*Slot, error)

	// Delete removes a slot by id, ErrSlotNotFound when it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
