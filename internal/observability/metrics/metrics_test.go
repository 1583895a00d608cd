package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveBookingCreated("guest", "confirmed")
	m.ObserveBookingCreated("user", "confirmed")
	m.ObserveConflict()
	m.ObserveAvailabilityQuery()
	m.ObserveEmail("sent")
	m.ObserveBookingLatency(0.02)
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveBookingCreated("guest", "confirmed")
	m.ObserveConflict()
	m.ObserveAvailabilityQuery()
	m.ObserveEmail("failed")
	m.ObserveBookingLatency(0.1)
}
