// Package metrics exposes the Prometheus instruments for the delivery
// core. All instruments are registered on the default registry and served
// from the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DeliveriesAssigned counts successful assignments.
	DeliveriesAssigned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaarlink_deliveries_assigned_total",
		Help: "Number of deliveries assigned to agents.",
	})

	// DeliveryStatusUpdates counts status transitions by resulting status.
	DeliveryStatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaarlink_delivery_status_updates_total",
		Help: "Number of delivery status transitions by resulting status.",
	}, []string{"status"})

	// LocationUpdates counts agent position reports.
	LocationUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaarlink_location_updates_total",
		Help: "Number of agent position reports.",
	})

	// EventsPublished counts broker publications by topic and outcome.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaarlink_events_published_total",
		Help: "Number of events published to the broker by topic and outcome.",
	}, []string{"topic", "outcome"})

	// EventsConsumed counts broker deliveries by topic and outcome.
	EventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaarlink_events_consumed_total",
		Help: "Number of events consumed from the broker by topic and outcome.",
	}, []string{"topic", "outcome"})

	// LiveConnections tracks currently open websocket connections.
	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bazaarlink_live_connections",
		Help: "Currently open live-push connections.",
	})

	// RequestDuration observes HTTP handler latency by route and method.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bazaarlink_http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)
