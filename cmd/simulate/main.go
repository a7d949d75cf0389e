// simulate drives concurrent slot additions against a running api-server to
// exercise the non-overlap guard under contention: many workers write into
// the same few provider calendars, so most attempts collide and must come
// back as conflicts, never as double-booked ledgers.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinlix/cleaning-marketplace/internal/config"
	"github.com/clinlix/cleaning-marketplace/internal/db"
)

type SimConfig struct {
	APIBaseURL  string
	Duration    time.Duration
	Workers     int
	Providers   int // how many provider calendars the workers fight over
	Days        int // how many distinct dates they write into
	PostgresDSN string
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if conflict {
		atomic.AddInt64(&om.Conflict, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[len(latencies)*50/100]
	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

type Simulator struct {
	config    SimConfig
	providers []uuid.UUID
	client    *http.Client
	addSlot   OperationMetrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadSimConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d providers=%d days=%d",
		cfg.Duration, cfg.Workers, cfg.Providers, cfg.Days)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pgPool.Close()

	providers, err := loadProviders(ctx, pgPool, cfg.Providers)
	if err != nil {
		log.Fatalf("load providers: %v", err)
	}
	log.Printf("loaded %d providers", len(providers))

	sim := &Simulator{
		config:    cfg,
		providers: providers,
		client:    &http.Client{Timeout: 10 * time.Second},
	}

	sim.Run()
	sim.PrintReport()

	if err := sim.VerifyLedger(context.Background(), pgPool); err != nil {
		log.Fatalf("LEDGER CORRUPT: %v", err)
	}
	log.Println("ledger verified: no overlapping slots")
}

func loadSimConfig() SimConfig {
	baseCfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load base config: %v", err)
	}

	return SimConfig{
		APIBaseURL:  getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:    getDuration("SIM_DURATION", 30*time.Second),
		Workers:     getInt("SIM_WORKERS", 10),
		Providers:   getInt("SIM_PROVIDERS", 3),
		Days:        getInt("SIM_DAYS", 2),
		PostgresDSN: baseCfg.PostgresDSN,
	}
}

func validateConfig(cfg SimConfig) error {
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required (set in .env or environment)")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.Providers <= 0 || cfg.Days <= 0 {
		return fmt.Errorf("SIM_PROVIDERS and SIM_DAYS must be > 0")
	}
	return nil
}

func loadProviders(ctx context.Context, pool *pgxpool.Pool, limit int) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `
		SELECT id FROM providers LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
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

	if len(ids) == 0 {
		return nil, fmt.Errorf("no providers loaded, run cmd/seed first")
	}
	return ids, nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			s.doAddSlot(ctx, rng)
		}
	}
}

func (s *Simulator) doAddSlot(ctx context.Context, rng *rand.Rand) {
	providerID := s.providers[rng.Intn(len(s.providers))]

	// Far-future dates so the run never trips over seeded slots.
	date := time.Now().UTC().AddDate(0, 0, 60+rng.Intn(s.config.Days))

	// Random window on a 30-minute grid inside business hours; a narrow grid
	// over few calendars makes collisions the common case.
	startHalf := 14 + rng.Intn(20) // 07:00 .. 16:30
	lengthHalf := 1 + rng.Intn(6)  // 30m .. 3h
	endHalf := startHalf + lengthHalf
	if endHalf > 38 { // 19:00
		endHalf = 38
	}

	reqBody := map[string]string{
		"date":  date.Format("2006-01-02"),
		"start": fmt.Sprintf("%02d:%02d", startHalf/2, (startHalf%2)*30),
		"end":   fmt.Sprintf("%02d:%02d", endHalf/2, (endHalf%2)*30),
	}
	body, _ := json.Marshal(reqBody)

	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("%s/providers/%s/slots", s.config.APIBaseURL, providerID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	conflict := false

	if err == nil {
		resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusCreated:
			success = true
		case http.StatusConflict:
			conflict = true
		}
	}

	s.addSlot.Record(latency, success, conflict)
}

func (s *Simulator) PrintReport() {
	avg, min, max, p50, p95 := s.addSlot.Stats()

	fmt.Println()
	fmt.Println("=== add-slot contention report ===")
	fmt.Printf("total:    %d\n", s.addSlot.Total)
	fmt.Printf("created:  %d\n", s.addSlot.Success)
	fmt.Printf("conflict: %d\n", s.addSlot.Conflict)
	fmt.Printf("error:    %d\n", s.addSlot.Error)
	fmt.Printf("latency:  avg=%s min=%s max=%s p50=%s p95=%s\n", avg, min, max, p50, p95)
}

// VerifyLedger is the point of the whole exercise: after the hammering, no
// two accepted slots for the same provider and date may intersect.
func (s *Simulator) VerifyLedger(ctx context.Context, pool *pgxpool.Pool) error {
	var violations int
	err := pool.QueryRow(ctx, `
		SELECT count(*)
		FROM availability_slots a
		JOIN availability_slots b
		  ON a.provider_id = b.provider_id
		 AND a.slot_date = b.slot_date
		 AND a.id < b.id
		 AND a.start_minute < b.end_minute
		 AND b.start_minute < a.end_minute
	`).Scan(&violations)
	if err != nil {
		return fmt.Errorf("overlap query: %w", err)
	}
	if violations > 0 {
		return fmt.Errorf("%d overlapping slot pairs found", violations)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
