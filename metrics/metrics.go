// Package metrics provides Prometheus metrics for driftfs adapter operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AdapterOpsTotal counts adapter operations by backend and operation.
	AdapterOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driftfs_adapter_ops_total",
			Help: "Total number of adapter operations",
		},
		[]string{"backend", "operation"},
	)

	// AdapterOpErrorsTotal counts failed adapter operations by backend and operation.
	AdapterOpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driftfs_adapter_op_errors_total",
			Help: "Total number of failed adapter operations",
		},
		[]string{"backend", "operation"},
	)

	// AdapterOpDuration observes adapter operation latency by backend and operation.
	AdapterOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "driftfs_adapter_op_duration_seconds",
			Help:    "Adapter operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)
)
