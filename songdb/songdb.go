// Package songdb reads the flat-file top songs database and answers year lookups.
package songdb

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// DefaultFile is the database file name used when none is configured.
const DefaultFile = "top10.txt"

// BlockSize is the number of ranked songs that follow every year marker.
const BlockSize = 10

// Errors returned by the database.
var (
	ErrFileAccess  = errors.New("database file access failed")
	ErrNoDateRange = errors.New("could not find date range")
	ErrNotFound    = errors.New("no song found for year")
	ErrBadEntry    = errors.New("malformed song entry")
)

var (
	yearMarker  = regexp.MustCompile(`^\d{4}$`)
	entryPrefix = regexp.MustCompile(`^\d+\.\s*`)
	digitRuns   = regexp.MustCompile(`\D+`)
)

// DateRange is the inclusive span of years a database can answer for.
type DateRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String returns the range in its wire form "<start>-<end>".
func (r DateRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Contains reports whether year lies within the range.
func (r DateRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Random returns a year in [Start, End] drawn from rng.
func (r DateRange) Random(rng Rand) int {
	if r.End < r.Start {
		return r.Start
	}
	return r.Start + rng.Intn(r.End-r.Start+1)
}

// Entry is a single ranked song line.
type Entry struct {
	Rank  int
	Title string
	Line  string
}

// IsYearMarker reports whether line delimits a song block.
func IsYearMarker(line string) bool {
	return yearMarker.MatchString(line)
}

// LoadLines reads all non-empty lines of the file at path, in file order.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).WithField("path", path).Warn("Failed to close database file.")
		}
	}()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	return lines, nil
}

// ComputeDateRange returns the first and last year markers found in lines.
// The markers are taken in file order, not sorted.
func ComputeDateRange(lines []string) (DateRange, error) {
	var (
		r     DateRange
		count int
	)
	for _, line := range lines {
		if !IsYearMarker(line) {
			continue
		}
		year, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		if count == 0 {
			r.Start = year
		} else {
			r.End = year
		}
		count++
	}
	if count < 2 {
		return DateRange{}, ErrNoDateRange
	}
	return r, nil
}

// SongBlock returns the ten song lines that follow the marker for year.
// A block that runs past the end of lines or into another marker yields ErrNotFound.
func SongBlock(lines []string, year int) ([]string, error) {
	for i, line := range lines {
		if !IsYearMarker(line) {
			continue
		}
		if y, err := strconv.Atoi(line); err != nil || y != year {
			continue
		}
		start, end := i+1, i+1+BlockSize
		if end > len(lines) {
			return nil, ErrNotFound
		}
		block := lines[start:end]
		for _, song := range block {
			if IsYearMarker(song) {
				return nil, ErrNotFound
			}
		}
		return block, nil
	}
	return nil, ErrNotFound
}

// SelectSong picks one song uniformly at random from the block of year.
func SelectSong(lines []string, year int, rng Rand) (string, error) {
	block, err := SongBlock(lines, year)
	if err != nil {
		return "", err
	}
	return block[rng.Intn(len(block))], nil
}

// ParseEntry splits a "<rank>. <title>" line.
func ParseEntry(line string) (Entry, error) {
	rank, ok := LeadingRank(line)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrBadEntry, line)
	}
	n, err := strconv.Atoi(rank)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrBadEntry, line)
	}
	return Entry{Rank: n, Title: StripRank(line), Line: line}, nil
}

// LeadingRank returns the first run of digits in line.
func LeadingRank(line string) (string, bool) {
	for _, tok := range digitRuns.Split(line, -1) {
		if tok != "" {
			return tok, true
		}
	}
	return "", false
}

// StripRank removes a leading "<digits>." prefix and the whitespace after it.
func StripRank(line string) string {
	return entryPrefix.ReplaceAllString(line, "")
}
