package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code raised by the slot exclusion constraint.
const exclusionViolation = "23P01"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	var startMinute, endMinute int

	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&s.Date,
		&startMinute,
		&endMinute,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	s.Date = NormalizeDate(s.Date)
	s.Start = TimeOfDay(startMinute)
	s.End = TimeOfDay(endMinute)
	return &s, nil
}

func collectSlots(rows pgx.Rows) ([]Slot, error) {
	defer rows.Close()

	var result []Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) ListForDay(ctx context.Context, providerID uuid.UUID, date time.Time) ([]Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, slot_date, start_minute, end_minute, created_at
		FROM availability_slots
		WHERE provider_id = $1 AND slot_date = $2
		ORDER BY start_minute
	`, providerID, NormalizeDate(date))
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func (r *PgRepository) ListRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, slot_date, start_minute, end_minute, created_at
		FROM availability_slots
		WHERE provider_id = $1 AND slot_date BETWEEN $2 AND $3
		ORDER BY slot_date, start_minute
	`, providerID, NormalizeDate(from), NormalizeDate(to))
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func (r *PgRepository) Insert(ctx context.Context, slot Slot) (*Slot, error) {
	id := slot.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO availability_slots (id, provider_id, slot_date, start_minute, end_minute, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, provider_id, slot_date, start_minute, end_minute, created_at
	`, id, slot.ProviderID, NormalizeDate(slot.Date), slot.Start.Minutes(), slot.End.Minutes())

	created, err := scanSlot(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			// A racing insert beat the calendar lock (or bypassed it); the
			// constraint is the system of record for non-overlap.
			return nil, ErrSlotOverlap
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM availability_slots
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}
