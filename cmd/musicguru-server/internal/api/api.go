// Package api serves the status API of musicguru-server.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"

	"github.com/skycoin/musicguru"
	"github.com/skycoin/musicguru/buildinfo"
	"github.com/skycoin/musicguru/httputil"
	"github.com/skycoin/musicguru/metricsutil"
	"github.com/skycoin/musicguru/models"
)

// API serves health and metrics of a musicguru server.
type API struct {
	http.Handler
	srv      *musicguru.Server
	database string
}

// New returns a new API object, which can be started as a server.
func New(log logrus.FieldLogger, srv *musicguru.Server, database string, enableMetrics bool) *API {
	if srv == nil {
		panic("cannot create new api without a musicguru.Server")
	}

	r := chi.NewRouter()
	api := &API{
		Handler:  r,
		srv:      srv,
		database: database,
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if enableMetrics {
		r.Use(metricsutil.NewRequestsInFlightCountMiddleware().Handle)
		r.Use(metricsutil.RequestDurationMiddleware)
	}
	r.Use(httputil.SetLoggerMiddleware(log))

	r.Get("/health", api.health)
	r.Get("/health/components", httputil.MakeHealthHandler("health", api.components()))
	if enableMetrics {
		metricsutil.AddMetricsHandle(r)
	}

	return api
}

// health serves the health page.
// URI: /health
// Method: GET
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	stats := a.srv.Stats()
	resp := models.HealthcheckResponse{
		BuildInfo:      buildinfo.Get(),
		StartedAt:      stats.StartedAt,
		Database:       a.database,
		ActiveSessions: stats.ActiveSessions,
		SessionsServed: stats.Served,
		SessionsFailed: stats.Failed,
	}

	code := http.StatusOK
	dr, err := a.srv.DB().DateRange(r.Context())
	if err != nil {
		code = http.StatusServiceUnavailable
		resp.Error = err.Error()
		httputil.GetLogger(r).WithError(err).Warn("Database is not usable.")
	} else {
		resp.DateRange = &dr
	}

	httputil.WriteJSON(w, r, code, resp)
}

func (a *API) components() []httputil.HealthGrabberEntry {
	return []httputil.HealthGrabberEntry{
		{
			Name: "database",
			Grab: func(ctx context.Context) (int, string) {
				dr, err := a.srv.DB().DateRange(ctx)
				if err != nil {
					return http.StatusServiceUnavailable, err.Error()
				}
				return http.StatusOK, dr.String()
			},
		},
		{
			Name: "sessions",
			Grab: func(_ context.Context) (int, string) {
				s := a.srv.Stats()
				return http.StatusOK, fmtStats(s)
			},
		},
	}
}

func fmtStats(s musicguru.Stats) string {
	return fmt.Sprintf("active=%d served=%d failed=%d", s.ActiveSessions, s.Served, s.Failed)
}
