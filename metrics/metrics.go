// Package metrics records per-call counters and latencies for a node. The
// values are exported in Prometheus text format and also kept as plain
// atomics for in-process snapshots.
package metrics

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relay"

// Snapshot is a point-in-time copy of the call counters.
type Snapshot struct {
	Calls    int64
	Failures int64
	InFlight int64
}

// Metrics owns a private Prometheus registry so several nodes can run in one
// process without colliding on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec

	callCount    atomic.Int64
	failureCount atomic.Int64
	active       atomic.Int64
}

// New creates collectors labelled with the node name.
func New(node string) *Metrics {
	labels := prometheus.Labels{"node": node}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rpc_calls_total",
			Help:        "Completed unary calls by procedure, side, and status code.",
			ConstLabels: labels,
		}, []string{"procedure", "side", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "rpc_duration_seconds",
			Help:        "Unary call latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"procedure", "side"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "rpc_in_flight",
			Help:        "Unary calls currently executing.",
			ConstLabels: labels,
		}, []string{"side"}),
	}

	m.registry.MustRegister(
		m.calls,
		m.duration,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RegisterStoreSize exports the number of stored points. size is sampled on
// every scrape.
func (m *Metrics) RegisterStoreSize(node string, size func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "store_points",
		Help:        "Points currently held by the store.",
		ConstLabels: prometheus.Labels{"node": node},
	}, func() float64 { return float64(size()) }))
}

// Interceptor records every unary call passing through a client or handler.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			side := "server"
			if req.Spec().IsClient {
				side = "client"
			}
			procedure := req.Spec().Procedure

			gauge := m.inFlight.WithLabelValues(side)
			gauge.Inc()
			m.active.Add(1)
			start := time.Now()

			res, err := next(ctx, req)

			m.duration.WithLabelValues(procedure, side).Observe(time.Since(start).Seconds())
			gauge.Dec()
			m.active.Add(-1)
			m.callCount.Add(1)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
				m.failureCount.Add(1)
			}
			m.calls.WithLabelValues(procedure, side, code).Inc()

			return res, err
		}
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Calls:    m.callCount.Load(),
		Failures: m.failureCount.Load(),
		InFlight: m.active.Load(),
	}
}
