// Package metrics exposes Prometheus collectors for storage operations.
//
// StorageMetrics implements storage.Observer so it can be plugged into
// storage.Instrument:
//
//	m := metrics.NewStorageMetrics(prometheus.NewRegistry())
//	backend = storage.Instrument(backend, m)
package metrics

import (
	"errors"
	"net/http"
	"time"

	"s3util/core/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "s3util"

// Result label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultTimeout  = "timeout"
	ResultError    = "error"
)

// StorageMetrics holds Prometheus collectors for backend instrumentation.
type StorageMetrics struct {
	reg     *prometheus.Registry
	bytes   *prometheus.CounterVec
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var _ storage.Observer = (*StorageMetrics)(nil)

// NewStorageMetrics registers storage metrics on the provided registry.
func NewStorageMetrics(reg *prometheus.Registry) *StorageMetrics {
	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "bytes_total",
		Help:      "Total bytes written through storage operations.",
	}, []string{"op"})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "ops_total",
		Help:      "Total number of storage operations by result.",
	}, []string{"op", "result"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "storage",
		Name:      "op_duration_seconds",
		Help:      "Histogram of storage operation durations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	_ = reg.Register(bytes)
	_ = reg.Register(ops)
	_ = reg.Register(latency)

	return &StorageMetrics{
		reg:     reg,
		bytes:   bytes,
		ops:     ops,
		latency: latency,
	}
}

// Observe records a storage operation with optional bytes and error.
// dur must be the total time spent in the operation.
func (m *StorageMetrics) Observe(op string, bytes int64, err error, dur time.Duration) {
	if bytes > 0 && err == nil {
		m.bytes.WithLabelValues(op).Add(float64(bytes))
	}
	m.ops.WithLabelValues(op, Result(err)).Inc()
	m.latency.WithLabelValues(op).Observe(dur.Seconds())
}

// Handler returns an http.Handler serving the registry.
func (m *StorageMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (m *StorageMetrics) Registry() *prometheus.Registry {
	return m.reg
}

// Result maps an operation error to its result label. Absence and wait
// timeouts are expected outcomes and get their own labels.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, storage.ErrObjectNotFound):
		return ResultNotFound
	case errors.Is(err, storage.ErrWaitTimeout):
		return ResultTimeout
	default:
		return ResultError
	}
}
