package musicguru

import (
	"strconv"
	"strings"

	"github.com/skycoin/musicguru/songdb"
)

// ParseDateRange parses the "<start>-<end>" range announced by the server.
func ParseDateRange(s string) (songdb.DateRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return songdb.DateRange{}, wrap(ErrMalformedRange, strconv.ErrSyntax)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return songdb.DateRange{}, wrap(ErrMalformedRange, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return songdb.DateRange{}, wrap(ErrMalformedRange, err)
	}
	return songdb.DateRange{Start: start, End: end}, nil
}

// ResolveYear returns requested if it lies within rangeString, otherwise a
// random year within the range.
func ResolveYear(rangeString string, requested int) (int, error) {
	res, err := resolveYear(rangeString, requested, defaultRand)
	return res.Year, err
}

// resolution is the outcome of resolveYear.
type resolution struct {
	Range       songdb.DateRange
	Year        int
	Substituted bool
}

func resolveYear(rangeString string, requested int, rng songdb.Rand) (resolution, error) {
	r, err := ParseDateRange(rangeString)
	if err != nil {
		return resolution{}, err
	}
	if r.Contains(requested) {
		return resolution{Range: r, Year: requested}, nil
	}
	return resolution{Range: r, Year: r.Random(rng), Substituted: true}, nil
}

var defaultRand = songdb.NewRand()
