package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanPackage(row pgx.Row) (*Package, error) {
	var p Package
	var oneTimeCents, recurringCents int64

	err := row.Scan(
		&p.Code,
		&p.Bedrooms,
		&p.Areas,
		&p.TimeIncluded,
		&oneTimeCents,
		&recurringCents,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	p.OneTimePrice = Cents(oneTimeCents)
	p.RecurringPrice = Cents(recurringCents)
	return &p, nil
}

func (r *PgRepository) GetPackage(ctx context.Context, code string) (*Package, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT code, bedrooms, areas, time_included, one_time_price_cents, recurring_price_cents, updated_at
		FROM cleaning_packages
		WHERE code = $1
	`, code)
	return scanPackage(row)
}

func (r *PgRepository) ListAddons(ctx context.Context) ([]Addon, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name_en, name_pt, price_cents, kind
		FROM addons
		ORDER BY name_en
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Addon
	for rows.Next() {
		var a Addon
		var priceCents int64
		if err := rows.Scan(&a.ID, &a.NameEN, &a.NamePT, &priceCents, &a.Kind); err != nil {
			return nil, err
		}
		a.Price = Cents(priceCents)
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetOvertimeRule(ctx context.Context) (*OvertimeRule, error) {
	var rule OvertimeRule
	var eurCents, cadCents int64

	err := r.pool.QueryRow(ctx, `
		SELECT increment_minutes, price_eur_cents, price_cad_cents
		FROM overtime_rules
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&rule.IncrementMinutes, &eurCents, &cadCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOvertimeRuleNotFound
		}
		return nil, err
	}

	rule.PriceEUR = Cents(eurCents)
	rule.PriceCAD = Cents(cadCents)
	return &rule, nil
}
