package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_checkins_total",
			Help: "Total number of check-in attempts",
		},
		[]string{"type", "outcome"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_checkouts_total",
			Help: "Total number of check-out attempts",
		},
		[]string{"billed_as", "outcome"},
	)

	RevenueCents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parking_revenue_cents_total",
			Help: "Accumulated checkout charges in cents",
		},
	)

	ZoneOccupied = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parking_zone_occupied",
			Help: "Currently occupied slots per zone",
		},
		[]string{"zone_id"},
	)

	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parking_realtime_clients",
			Help: "Number of connected realtime clients",
		},
	)

	RealtimeDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "parking_realtime_dropped_total",
			Help: "Messages dropped because a subscriber was too slow",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckin(ticketType, outcome string) {
	CheckinsTotal.WithLabelValues(ticketType, outcome).Inc()
}

func RecordCheckout(billedAs, outcome string, amount float64) {
	CheckoutsTotal.WithLabelValues(billedAs, outcome).Inc()
	if outcome == "ok" && amount > 0 {
		RevenueCents.Add(amount * 100)
	}
}

func SetZoneOccupied(zoneID string, occupied int) {
	ZoneOccupied.WithLabelValues(zoneID).Set(float64(occupied))
}
