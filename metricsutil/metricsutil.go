// Package metricsutil exposes VictoriaMetrics over HTTP.
package metricsutil

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

// AddMetricsHandle adds a prometheus-format handle at '/metrics' to r.
func AddMetricsHandle(r chi.Router) {
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
}

// ListenAndServeMetrics binds addr and serves '/metrics' on it until ctx is done.
func ListenAndServeMetrics(ctx context.Context, log logrus.FieldLogger, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return ServeMetrics(ctx, log, lis)
}

// ServeMetrics serves '/metrics' on lis until ctx is done. It returns nil
// once the server is shut down by ctx.
func ServeMetrics(ctx context.Context, log logrus.FieldLogger, lis net.Listener) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	AddMetricsHandle(r)

	srv := &http.Server{Handler: r}
	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			log.WithError(err).Debug("Metrics server closed with error.")
		}
	}()

	log.WithField("addr", lis.Addr()).Info("Serving metrics...")
	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RequestsInFlightCountMiddleware tracks the number of HTTP requests being served.
type RequestsInFlightCountMiddleware struct {
	reqsInFlight      int64
	reqsInFlightGauge *metrics.Gauge
}

// NewRequestsInFlightCountMiddleware constructs `RequestsInFlightCountMiddleware`.
func NewRequestsInFlightCountMiddleware() *RequestsInFlightCountMiddleware {
	m := &RequestsInFlightCountMiddleware{}
	m.reqsInFlightGauge = metrics.GetOrCreateGauge(`http_request_ongoing_count`, func() float64 {
		return float64(m.Reqs())
	})
	return m
}

// Reqs gets requests count.
func (m *RequestsInFlightCountMiddleware) Reqs() int64 {
	return atomic.LoadInt64(&m.reqsInFlight)
}

// Handle adds to the requests count during request serving.
func (m *RequestsInFlightCountMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&m.reqsInFlight, 1)
		defer atomic.AddInt64(&m.reqsInFlight, -1)

		next.ServeHTTP(w, r)
	})
}

// RequestDurationMiddleware records HTTP request durations in a histogram.
func RequestDurationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		metrics.GetOrCreateHistogram(`http_request_duration_seconds`).UpdateDuration(start)
	})
}
