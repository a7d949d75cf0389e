package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the scheduling and booking flows.
// A nil *Metrics is valid and observes nothing, so tests can skip wiring it.
type Metrics struct {
	slotAddTotal    *prometheus.CounterVec
	bookingsCreated *prometheus.CounterVec
	quotesComputed  prometheus.Counter
	httpDuration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		slotAddTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinlix",
			Subsystem: "availability",
			Name:      "slot_add_total",
			Help:      "Slot add attempts by outcome",
		}, []string{"outcome"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinlix",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created by currency",
		}, []string{"currency"}),
		quotesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinlix",
			Subsystem: "pricing",
			Name:      "quotes_total",
			Help:      "Price quotes computed",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinlix",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotAddTotal, m.bookingsCreated, m.quotesComputed, m.httpDuration)
	return m
}

func (m *Metrics) ObserveSlotAdd(outcome string) {
	if m == nil {
		return
	}
	m.slotAddTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveBookingCreated(currency string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(currency).Inc()
}

func (m *Metrics) ObserveQuote() {
	if m == nil {
		return
	}
	m.quotesComputed.Inc()
}

func (m *Metrics) ObserveHTTP(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, status).Observe(seconds)
}
