package songdb

import (
	"context"

	"github.com/skycoin/skycoin/src/util/logging"
)

var log = logging.MustGetLogger("songdb")

// DB answers date range and song queries against a line Source.
// Every query loads fresh lines from the source.
type DB struct {
	src Source
	rng Rand
}

// New returns a DB over src. A nil rng is replaced with a clock-seeded one.
func New(src Source, rng Rand) *DB {
	if src == nil {
		panic("cannot create songdb without a Source")
	}
	if rng == nil {
		rng = NewRand()
	}
	return &DB{src: src, rng: rng}
}

// Lines returns the current database lines.
func (db *DB) Lines(ctx context.Context) ([]string, error) {
	return db.src.Lines(ctx)
}

// DateRange loads the database and computes its date range.
func (db *DB) DateRange(ctx context.Context) (DateRange, error) {
	lines, err := db.src.Lines(ctx)
	if err != nil {
		return DateRange{}, err
	}
	return ComputeDateRange(lines)
}

// SelectSong loads the database and picks a random song for year.
func (db *DB) SelectSong(ctx context.Context, year int) (string, error) {
	lines, err := db.src.Lines(ctx)
	if err != nil {
		return "", err
	}
	return SelectSong(lines, year, db.rng)
}

// Pick selects a random song for year from already loaded lines.
func (db *DB) Pick(lines []string, year int) (string, error) {
	return SelectSong(lines, year, db.rng)
}

// Rand returns the random source used for selections.
func (db *DB) Rand() Rand {
	return db.rng
}
