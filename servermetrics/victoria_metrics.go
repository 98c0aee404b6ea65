package servermetrics

import (
	"fmt"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
)

// VictoriaMetrics implements Metrics using VictoriaMetrics.
type VictoriaMetrics struct {
	activeSessions int64

	activeSessionsGauge *metrics.Gauge
	sessionsTotal       *metrics.Counter
	failedSessions      *metrics.Counter
	songsServed         *metrics.Counter
	songsNotFound       *metrics.Counter
}

// NewVictoriaMetrics returns the Victoria Metrics implementation of Metrics.
func NewVictoriaMetrics() *VictoriaMetrics {
	var m VictoriaMetrics

	m.activeSessionsGauge = metrics.GetOrCreateGauge("active_sessions_count", func() float64 {
		return float64(m.ActiveSessions())
	})

	m.sessionsTotal = metrics.GetOrCreateCounter("session_total")
	m.failedSessions = metrics.GetOrCreateCounter("session_fail_total")

	m.songsServed = metrics.GetOrCreateCounter(`song_lookup_total{result="found"}`)
	m.songsNotFound = metrics.GetOrCreateCounter(`song_lookup_total{result="not_found"}`)

	return &m
}

// ActiveSessions gets current active sessions count.
func (m *VictoriaMetrics) ActiveSessions() int64 {
	return atomic.LoadInt64(&m.activeSessions)
}

// RecordSession implements `Metrics`.
func (m *VictoriaMetrics) RecordSession(delta DeltaType) {
	switch delta {
	case DeltaFailed:
		m.failedSessions.Inc()
	case DeltaConnect:
		m.sessionsTotal.Inc()
		atomic.AddInt64(&m.activeSessions, 1)
	case DeltaDisconnect:
		atomic.AddInt64(&m.activeSessions, -1)
	default:
		panic(fmt.Errorf("invalid delta: %d", delta))
	}
}

// RecordLookup implements `Metrics`.
func (m *VictoriaMetrics) RecordLookup(found bool) {
	if found {
		m.songsServed.Inc()
		return
	}
	m.songsNotFound.Inc()
}
