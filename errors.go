package musicguru

import (
	"errors"
	"fmt"
	"sync"

	"github.com/skycoin/musicguru/songdb"
)

// Kind classifies errors so callers can tell fatal-startup, per-session and
// not-found outcomes apart.
type Kind uint8

// Error kinds.
const (
	KindUnknown Kind = iota
	KindArgument
	KindFileAccess
	KindProtocol
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindFileAccess:
		return "file access"
	case KindProtocol:
		return "protocol"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Errors for command line arguments (10-19).
var (
	ErrArgCount       = NewError(10, KindArgument, "wrong number of arguments")
	ErrInvalidPort    = NewError(11, KindArgument, "invalid port, must be an integer")
	ErrPortOutOfRange = NewError(12, KindArgument, "invalid port number, must be between 0 and 65535")
	ErrInvalidYearArg = NewError(13, KindArgument, "invalid year, must be an integer")
)

// Errors for database access (20-29).
var (
	ErrDatabase = NewError(20, KindFileAccess, "file read/date range error")
)

// Errors for the conversation protocol (30-39).
var (
	ErrMalformedRange = NewError(30, KindProtocol, "malformed date range")
	ErrInvalidYear    = NewError(31, KindProtocol, "invalid year parse")
	ErrNoResponse     = NewError(32, KindProtocol, "peer closed connection before responding")
)

// Errors for lookups (40-49).
var (
	ErrSongNotFound = NewError(40, KindNotFound, "no song found for requested year")
	ErrNoDateRange  = NewError(41, KindNotFound, "database holds fewer than two year markers")
)

// Error is a coded error of a given kind.
type Error struct {
	Code uint8
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf(errFmt, e.Code, e.Msg) }

var (
	errFmt  = "code %d - %s"
	errMap  = make(map[uint8]error)
	codeMap = make(map[error]uint8)
	errMx   sync.RWMutex
)

// NewError creates a new musicguru error.
// - code '0' represents a miscellaneous error and is not saved in 'errMap'.
func NewError(code uint8, kind Kind, msg string) error {
	// No need to check errMap if code 0.
	if code != 0 {
		errMx.Lock()
		defer errMx.Unlock()
		if _, ok := errMap[code]; ok {
			panic(fmt.Errorf("error of code %d already exists", code))
		}
	}
	err := &Error{Code: code, Kind: kind, Msg: msg}
	// Don't save error if code is '0'.
	if code != 0 {
		errMap[code] = err
		codeMap[err] = code
	}
	return err
}

// ErrorFromCode returns a saved error (if exists) from given error code.
func ErrorFromCode(code uint8) (error, bool) {
	errMx.RLock()
	err, ok := errMap[code]
	errMx.RUnlock()
	return err, ok
}

// CodeFromError returns the code of the first coded error in err's chain.
func CodeFromError(err error) uint8 {
	var e *Error
	if !errors.As(err, &e) {
		return 0
	}
	errMx.RLock()
	code, ok := codeMap[e]
	errMx.RUnlock()
	if !ok {
		return 0
	}
	return code
}

// KindOf classifies err, including errors returned by songdb.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, songdb.ErrFileAccess):
		return KindFileAccess
	case errors.Is(err, songdb.ErrNotFound), errors.Is(err, songdb.ErrNoDateRange):
		return KindNotFound
	}
	return KindUnknown
}

// wrap attaches detail to a coded error while keeping it matchable with errors.Is.
func wrap(coded error, detail error) error {
	if detail == nil {
		return coded
	}
	return fmt.Errorf("%w: %v", coded, detail)
}
