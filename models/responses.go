// Package models holds the response bodies of the musicguru status API.
package models

import (
	"time"

	"github.com/skycoin/musicguru/buildinfo"
	"github.com/skycoin/musicguru/songdb"
)

// HealthcheckResponse is struct of /health endpoint
type HealthcheckResponse struct {
	BuildInfo      *buildinfo.Info   `json:"build_info,omitempty"`
	StartedAt      time.Time         `json:"started_at,omitempty"`
	Database       string            `json:"database,omitempty"`
	DateRange      *songdb.DateRange `json:"date_range,omitempty"`
	ActiveSessions int64             `json:"active_sessions"`
	SessionsServed int64             `json:"sessions_served"`
	SessionsFailed int64             `json:"sessions_failed"`
	Error          string            `json:"error,omitempty"`
}
