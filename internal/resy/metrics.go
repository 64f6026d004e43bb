package resy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered on prometheus.DefaultRegisterer via promauto.
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resy_client",
			Name:      "requests_total",
			Help:      "Requests sent to the Resy API by operation and HTTP status (\"error\" for transport failures).",
		},
		[]string{"operation", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resy_client",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of Resy API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observe(op, code string, d time.Duration) {
	requestsTotal.WithLabelValues(op, code).Inc()
	requestDuration.WithLabelValues(op).Observe(d.Seconds())
}
