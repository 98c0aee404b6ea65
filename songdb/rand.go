package songdb

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the subset of *rand.Rand used for selections.
type Rand interface {
	Intn(n int) int
}

// lockedRand is a Rand safe for use by concurrent sessions.
type lockedRand struct {
	mx  sync.Mutex
	src *rand.Rand
}

// NewRand returns a concurrency-safe Rand seeded from the clock.
func NewRand() Rand {
	return NewRandWithSeed(time.Now().UnixNano())
}

// NewRandWithSeed returns a concurrency-safe Rand with a fixed seed.
func NewRandWithSeed(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))} //nolint:gosec
}

func (r *lockedRand) Intn(n int) int {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.src.Intn(n)
}
