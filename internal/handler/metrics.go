package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	pingsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "kafka_consumer",
			Name:      "pings_processed_total",
			Help:      "Total number of successfully processed location pings",
		},
	)

	pingsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "kafka_consumer",
			Name:      "pings_rejected_total",
			Help:      "Total number of pings rejected by domain checks",
		},
		[]string{"reason"},
	)

	pingsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "kafka_consumer",
			Name:      "pings_dlq_total",
			Help:      "Total number of pings written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	pingProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dispatch_service",
			Subsystem: "kafka_consumer",
			Name:      "ping_processing_duration_seconds",
			Help:      "Histogram of ping processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

var (
	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "http",
			Name:      "orders_created_total",
			Help:      "Total number of orders created",
		},
	)

	transitionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "http",
			Name:      "transitions_applied_total",
			Help:      "Total number of order status transitions applied",
		},
		[]string{"status"},
	)

	pingsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dispatch_service",
			Subsystem: "http",
			Name:      "pings_accepted_total",
			Help:      "Total number of location pings accepted over HTTP",
		},
	)

	wsSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dispatch_service",
			Subsystem: "ws",
			Name:      "sessions",
			Help:      "Number of connected websocket sessions",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		pingsProcessed,
		pingsRejected,
		pingsDLQ,
		commitErrors,
		pingProcessingDuration,

		ordersCreated,
		transitionsApplied,
		pingsAccepted,
		wsSessions,
	)
}
