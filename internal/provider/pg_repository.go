package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.RatingAvg,
		&p.RatingCount,
		&p.Verified,
		&p.Skills,
		&p.ServiceAreas,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, rating_avg, rating_count, verified, skills, service_areas, created_at, updated_at
		FROM providers
		WHERE id = $1
	`, id)
	return scanProfile(row)
}

func (r *PgRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, rating_avg, rating_count, verified, skills, service_areas, created_at, updated_at
		FROM providers
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
