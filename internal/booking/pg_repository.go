package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const bookingColumns = `id, customer_id, provider_id, booking_date, start_minute,
	package_code, addon_ids, recurring, currency, total_cents, overtime_minutes,
	address_line, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var startMinute, totalCents int64
	var currency string

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.ProviderID,
		&b.Date,
		&startMinute,
		&b.PackageCode,
		&b.AddonIDs,
		&b.Recurring,
		&currency,
		&totalCents,
		&b.OvertimeMinutes,
		&b.AddressLine,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	b.Date = availability.NormalizeDate(b.Date)
	b.Start = availability.TimeOfDay(startMinute)
	b.Currency = pricing.Currency(currency)
	b.Total = pricing.Cents(totalCents)
	return &b, nil
}

func (r *PgRepository) Insert(ctx context.Context, b Booking) (*Booking, error) {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (id, customer_id, provider_id, booking_date, start_minute,
			package_code, addon_ids, recurring, currency, total_cents, overtime_minutes,
			address_line, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, now(), now())
		RETURNING `+bookingColumns+`
	`, id, b.CustomerID, b.ProviderID, availability.NormalizeDate(b.Date), b.Start.Minutes(),
		b.PackageCode, b.AddonIDs, b.Recurring, string(b.Currency), b.Total.Cents(), b.AddressLine)

	return scanBooking(row)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id)
	return scanBooking(row)
}

func (r *PgRepository) UpdateOvertime(ctx context.Context, id uuid.UUID, minutes int, totalCents int64) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings
		SET overtime_minutes = $2,
		    total_cents = $3,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+bookingColumns+`
	`, id, minutes, totalCents)
	return scanBooking(row)
}

func (r *PgRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE customer_id = $1
		ORDER BY booking_date DESC, start_minute DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
