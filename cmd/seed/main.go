package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinlix/cleaning-marketplace/internal/db"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedPackages(context.Background(), pool); err != nil {
		log.Fatalf("seed packages: %v", err)
	}
	if err := seedAddons(context.Background(), pool); err != nil {
		log.Fatalf("seed addons: %v", err)
	}
	if err := seedOvertimeRule(context.Background(), pool); err != nil {
		log.Fatalf("seed overtime rule: %v", err)
	}

	providerIDs, err := seedProviders(context.Background(), pool, 50)
	if err != nil {
		log.Fatalf("seed providers: %v", err)
	}
	if err := seedSlots(context.Background(), pool, providerIDs, 14); err != nil {
		log.Fatalf("seed slots: %v", err)
	}

	log.Println("seed complete")
}

type seedPackage struct {
	code      string
	bedrooms  int
	areas     []string
	included  string
	oneTime   string
	recurring string
}

func seedPackages(ctx context.Context, pool *pgxpool.Pool) error {
	packages := []seedPackage{
		{"t1_standard", 1, []string{"bathroom", "kitchen", "floors", "dusting"}, "2h", "49.99", "42.99"},
		{"t2_standard", 2, []string{"bathroom", "kitchen", "livingroom", "floors"}, "3h", "69.99", "59.99"},
		{"t3_standard", 3, []string{"bathroom", "kitchen", "livingroom", "floors", "dusting"}, "4h", "89.99", "76.99"},
		{"t3_deep", 3, []string{"bathroom", "kitchen", "livingroom", "floors", "dusting", "surfaces"}, "6h", "139.99", "119.99"},
		{"condo_2br", 2, []string{"bathroom", "kitchen", "livingroom", "floors"}, "3h", "94.99", "81.99"},
	}

	log.Printf("seeding %d cleaning packages", len(packages))

	for _, p := range packages {
		_, err := pool.Exec(ctx, `
			INSERT INTO cleaning_packages (code, bedrooms, areas, time_included, one_time_price_cents, recurring_price_cents)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (code) DO NOTHING
		`, p.code, p.bedrooms, p.areas, p.included,
			pricing.MustAmount(p.oneTime).Cents(), pricing.MustAmount(p.recurring).Cents())
		if err != nil {
			return err
		}
	}
	return nil
}

func seedAddons(ctx context.Context, pool *pgxpool.Pool) error {
	addons := []struct {
		nameEN, namePT, price, kind string
	}{
		{"Inside fridge", "Interior do frigorífico", "10.00", "flat"},
		{"Inside oven", "Interior do forno", "12.50", "flat"},
		{"Interior windows", "Janelas interiores", "7.50", "per-room"},
		{"Ironing", "Engomar roupa", "15.00", "flat"},
		{"Balcony", "Varanda", "9.00", "flat"},
		{"Cabinet interiors", "Interior dos armários", "8.00", "per-room"},
	}

	log.Printf("seeding %d addons", len(addons))

	for _, a := range addons {
		_, err := pool.Exec(ctx, `
			INSERT INTO addons (id, name_en, name_pt, price_cents, kind)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), a.nameEN, a.namePT, pricing.MustAmount(a.price).Cents(), a.kind)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedOvertimeRule(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("seeding overtime rule")

	_, err := pool.Exec(ctx, `
		INSERT INTO overtime_rules (increment_minutes, price_eur_cents, price_cad_cents)
		VALUES (30, $1, $2)
	`, pricing.MustAmount("10.00").Cents(), pricing.MustAmount("15.00").Cents())
	return err
}

func seedProviders(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d providers", count)

	skills := []string{
		"deep cleaning",
		"eco products",
		"pet friendly",
		"move-out cleaning",
		"office cleaning",
		"window cleaning",
	}
	areas := []string{
		"Lisboa", "Porto", "Braga", "Coimbra",
		"Toronto", "Vancouver", "Montreal", "Ottawa",
	}

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()

		providerSkills := pickSome(skills, 1, 3)
		providerAreas := pickSome(areas, 1, 2)

		_, err := pool.Exec(ctx, `
			INSERT INTO providers (id, name, rating_avg, rating_count, verified, skills, service_areas)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id,
			gofakeit.Name(),
			float64(gofakeit.Number(30, 50))/10.0,
			gofakeit.Number(0, 200),
			gofakeit.Bool(),
			providerSkills,
			providerAreas,
		)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedSlots(ctx context.Context, pool *pgxpool.Pool, providerIDs []uuid.UUID, days int) error {
	log.Printf("seeding slots for %d providers over %d days", len(providerIDs), days)

	today := time.Now().UTC().Truncate(24 * time.Hour)

	total := 0
	for _, providerID := range providerIDs {
		for d := 0; d < days; d++ {
			if gofakeit.Number(0, 2) == 0 {
				continue // not every provider works every day
			}

			date := today.AddDate(0, 0, d)

			// One or two non-overlapping windows inside 07:00-19:00.
			startHour := gofakeit.Number(7, 10)
			length := gofakeit.Number(2, 4)
			if err := insertSlot(ctx, pool, providerID, date, startHour*60, (startHour+length)*60); err != nil {
				return err
			}
			total++

			if gofakeit.Bool() {
				afternoonStart := startHour + length + gofakeit.Number(0, 2)
				afternoonEnd := afternoonStart + gofakeit.Number(2, 3)
				if afternoonEnd <= 19 {
					if err := insertSlot(ctx, pool, providerID, date, afternoonStart*60, afternoonEnd*60); err != nil {
						return err
					}
					total++
				}
			}
		}
	}

	log.Printf("seeded %d slots", total)
	return nil
}

func insertSlot(ctx context.Context, pool *pgxpool.Pool, providerID uuid.UUID, date time.Time, startMinute, endMinute int) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO availability_slots (id, provider_id, slot_date, start_minute, end_minute)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), providerID, date, startMinute, endMinute)
	return err
}

func pickSome(pool []string, min, max int) []string {
	n := min + rand.Intn(max-min+1)
	shuffled := append([]string(nil), pool...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}
