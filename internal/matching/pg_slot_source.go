package matching

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinlix/cleaning-marketplace/internal/availability"
)

type PgSlotSource struct {
	pool *pgxpool.Pool
}

func NewPgSlotSource(pool *pgxpool.Pool) *PgSlotSource {
	return &PgSlotSource{pool: pool}
}

func (s *PgSlotSource) ProviderIDsOnDate(ctx context.Context, date time.Time) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT provider_id
		FROM availability_slots
		WHERE slot_date = $1
	`, availability.NormalizeDate(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
