package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
)

type Repository interface {
	Insert(ctx context.Context, b Booking) (*Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// UpdateOvertime records accrued overtime and the repriced total.
	UpdateOvertime(ctx context.Context, id uuid.UUID, minutes int, totalCents int64) (*Booking, error)

	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]Booking, error)
}
