package musicguru

import (
	"strconv"
	"strings"
)

// ParsePort parses a TCP port argument.
func ParsePort(s string) (uint16, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidPort
	}
	if n < 0 || n > 65535 {
		return 0, ErrPortOutOfRange
	}
	return uint16(n), nil
}

// ParseYear parses a requested year argument.
func ParseYear(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidYearArg
	}
	return n, nil
}

// CheckArgCount returns ErrArgCount unless args has exactly n entries.
func CheckArgCount(args []string, n int) error {
	if len(args) != n {
		return ErrArgCount
	}
	return nil
}
