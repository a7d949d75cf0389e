package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinlix/cleaning-marketplace/internal/api"
	"github.com/clinlix/cleaning-marketplace/internal/availability"
	"github.com/clinlix/cleaning-marketplace/internal/booking"
	"github.com/clinlix/cleaning-marketplace/internal/config"
	"github.com/clinlix/cleaning-marketplace/internal/db"
	"github.com/clinlix/cleaning-marketplace/internal/matching"
	"github.com/clinlix/cleaning-marketplace/internal/metrics"
	"github.com/clinlix/cleaning-marketplace/internal/notify"
	"github.com/clinlix/cleaning-marketplace/internal/pricing"
	"github.com/clinlix/cleaning-marketplace/internal/provider"
	redisclient "github.com/clinlix/cleaning-marketplace/internal/redis"
)

const version = "0.3.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	m := metrics.New(prometheus.DefaultRegisterer)

	locker := redisclient.NewRedisCalendarLocker(rdb, cfg.LockTTL)
	slotSvc := availability.NewService(availability.NewPgRepository(pgPool), locker, m)

	matcherSvc := matching.NewService(matching.NewPgSlotSource(pgPool), provider.NewPgRepository(pgPool))

	catalog := pricing.NewCachedCatalog(pricing.NewPgRepository(pgPool), rdb, cfg.CatalogCacheTTL)
	engine := pricing.NewEngine(catalog, m)

	var sender notify.Sender = notify.LogSender{}
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFrom)
		log.Println("sendgrid notifications enabled")
	}
	bookingSvc := booking.NewService(booking.NewPgRepository(pgPool), engine, sender, m)

	router := api.NewRouter(api.RouterConfig{
		Slots:          slotSvc,
		Matcher:        matcherSvc,
		Pricer:         engine,
		Bookings:       bookingSvc,
		PgPool:         pgPool,
		Redis:          rdb,
		Metrics:        m,
		Env:            cfg.Env,
		Version:        version,
		ScheduleWindow: cfg.ScheduleWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
