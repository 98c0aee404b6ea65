// Package servermetrics records what the musicguru server does.
package servermetrics

// DeltaType represents a change in the number of sessions.
type DeltaType int

// Session deltas.
const (
	DeltaFailed     DeltaType = 0
	DeltaConnect    DeltaType = 1
	DeltaDisconnect DeltaType = -1
)

// Metrics collects metrics for metrics tracking system.
type Metrics interface {
	RecordSession(delta DeltaType)
	RecordLookup(found bool)
}
