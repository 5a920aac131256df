package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsInterceptor returns a Connect interceptor that counts RPCs by
// procedure and result code and records their latency. The collectors are
// registered on reg, so call it once per registry.
func MetricsInterceptor(reg prometheus.Registerer) connect.UnaryInterceptorFunc {
	factory := promauto.With(reg)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Name: "billsplitter_rpc_requests_total",
		Help: "Total number of RPCs handled, by procedure and code.",
	}, []string{"procedure", "code"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "billsplitter_rpc_duration_seconds",
		Help:    "RPC latency in seconds, by procedure.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			requests.WithLabelValues(procedure, code).Inc()
			duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
