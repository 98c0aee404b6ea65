// Package httputil holds the HTTP helpers of the musicguru status API.
package httputil

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// SetLoggerMiddleware attaches a request scoped logger to every request and
// logs the request once it has been served.
func SetLoggerMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				reqLog = reqLog.WithField("request_id", reqID)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := context.WithValue(r.Context(), loggerKey, reqLog)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.WithFields(logrus.Fields{
				"status":  ww.Status(),
				"took":    time.Since(start),
				"remote":  r.RemoteAddr,
				"request": r.RequestURI,
				"method":  r.Method,
			}).Info()
		})
	}
}

// GetLogger returns the logger attached to r, or a package logger.
func GetLogger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(loggerKey).(logrus.FieldLogger); ok {
		return log
	}
	return logging.MustGetLogger("httputil")
}
