package services

import (
	"sync"
	"time"

	"it-inventory/internal/apperrors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "operations_total",
			Help:      "Total number of inventory operations by outcome.",
		}, []string{"operation", "result"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "operation_duration_seconds",
			Help:      "Latency of inventory operations including the transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
})

// observe пишет результат операции: ok или код ошибки.
func observe(operation string, start time.Time, err error) {
	m := metricsSingleton()
	result := "ok"
	if err != nil {
		result = string(apperrors.CodeOf(err))
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
