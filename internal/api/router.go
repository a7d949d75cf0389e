package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinlix/cleaning-marketplace/internal/metrics"
)

type RouterConfig struct {
	Slots    SlotService
	Matcher  MatcherService
	Pricer   PriceService
	Bookings BookingService

	PgPool  *pgxpool.Pool
	Redis   *redis.Client
	Metrics *metrics.Metrics

	Env            string
	Version        string
	ScheduleWindow int // default day span for slot listings
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	if cfg.Metrics != nil {
		r.Use(MetricsMiddleware(cfg.Metrics))
	}

	// Health and metrics endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	windowDays := cfg.ScheduleWindow
	if windowDays <= 0 {
		windowDays = 30
	}

	// Provider schedule endpoints
	r.Post("/providers/{providerID}/slots", addSlotHandler(cfg.Slots))
	r.Get("/providers/{providerID}/slots", listSlotsHandler(cfg.Slots, windowDays))
	r.Delete("/slots/{slotID}", removeSlotHandler(cfg.Slots))

	// Customer matching endpoint
	r.Get("/providers/available", availableProvidersHandler(cfg.Matcher))

	// Booking endpoints
	r.Post("/bookings/quote", quoteHandler(cfg.Pricer))
	r.Post("/bookings", createBookingHandler(cfg.Bookings))
	r.Get("/bookings", listBookingsHandler(cfg.Bookings))
	r.Get("/bookings/{id}", getBookingHandler(cfg.Bookings))
	r.Post("/bookings/{id}/overtime", settleOvertimeHandler(cfg.Bookings))

	return r
}
