package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	conflictsTotal    prometheus.Counter
	availabilityTotal prometheus.Counter
	emailTotal        *prometheus.CounterVec
	bookingLatency    prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total appointments created",
		}, []string{"kind", "status"}),
		conflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "bookings",
			Name:      "conflicts_total",
			Help:      "Total booking attempts rejected because the slot was taken",
		}),
		availabilityTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "catalog",
			Name:      "availability_queries_total",
			Help:      "Total availability computations",
		}),
		emailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spa",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total transactional email sends",
		}, []string{"status"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spa",
			Subsystem: "bookings",
			Name:      "create_latency_seconds",
			Help:      "Latency of the booking conflict-check-and-insert flow",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.conflictsTotal, m.availabilityTotal, m.emailTotal, m.bookingLatency)
	return m
}

func (m *BookingMetrics) ObserveBookingCreated(kind, status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(kind, status).Inc()
}

func (m *BookingMetrics) ObserveConflict() {
	if m == nil {
		return
	}
	m.conflictsTotal.Inc()
}

func (m *BookingMetrics) ObserveAvailabilityQuery() {
	if m == nil {
		return
	}
	m.availabilityTotal.Inc()
}

func (m *BookingMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveBookingLatency(seconds float64) {
	if m == nil {
		return
	}
	m.bookingLatency.Observe(seconds)
}
