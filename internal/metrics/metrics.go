// Package metrics declares the Prometheus collectors exported on the metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ValuationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trashit_valuations_total",
			Help: "Total number of valuation requests by outcome",
		},
		[]string{"outcome"},
	)

	GradesAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trashit_grades_assigned_total",
			Help: "Total number of quality grades assigned",
		},
		[]string{"grade"},
	)

	VisionCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trashit_vision_call_duration_seconds",
			Help:    "Duration of vision provider calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"provider", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trashit_classification_cache_lookups_total",
			Help: "Classification cache lookups by result",
		},
		[]string{"result"},
	)

	ArchiveUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trashit_archive_uploads_total",
			Help: "Archived upload attempts by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trashit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
