package stores

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	kvOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_operations_total",
			Help: "Total number of key-value store operations",
		},
		[]string{"backend", "op", "result"},
	)

	kvOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kv_operation_duration_seconds",
			Help:    "Key-value store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

const (
	resultOK    = "ok"
	resultMiss  = "miss"
	resultError = "error"
)

type instrumentedStore struct {
	next    Store
	backend string
}

// WithMetrics decorates store with Prometheus counters and latency
// histograms labelled by backend.
func WithMetrics(store Store, backend string) Store {
	return &instrumentedStore{next: store, backend: backend}
}

func (s *instrumentedStore) observe(op string, start time.Time, result string) {
	kvOperationDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
	kvOperationsTotal.WithLabelValues(s.backend, op, result).Inc()
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	switch {
	case err != nil:
		s.observe("get", start, resultError)
	case !found:
		s.observe("get", start, resultMiss)
	default:
		s.observe("get", start, resultOK)
	}
	return value, found, err
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", start, resultOf(err))
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observe("delete", start, resultOf(err))
	return err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}

func resultOf(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}
