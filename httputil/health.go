package httputil

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HealthGrabberEntry reports the health of one component.
type HealthGrabberEntry struct {
	Name string
	Grab func(ctx context.Context) (statusCode int, bodyMsg string)
}

const healthGrabTimeout = 5 * time.Second

// MakeHealthHandler returns a handler writing one line per entry. The
// response code is the worst (highest) code reported by any entry.
func MakeHealthHandler(base string, entries []HealthGrabberEntry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthGrabTimeout)
		defer cancel()

		worst := http.StatusOK
		var sb strings.Builder
		for _, e := range entries {
			code, msg := e.Grab(ctx)
			if code > worst {
				worst = code
			}
			sb.WriteString(formatMsg(e.Name, code, msg))
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Health-Base", base)
		w.WriteHeader(worst)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			GetLogger(r).WithError(err).Warn("Failed to write health response.")
		}
	}
}

// CheckHealth fetches url and copies the reported entries to w.
func CheckHealth(url string, w io.Writer) error {
	resp, err := http.Get(url) //nolint:gosec
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck

	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if _, err := fmt.Fprintln(w, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func formatMsg(name string, code int, msg string) string {
	return fmt.Sprintf("[%s] %d %s: %s\n", name, code, http.StatusText(code), msg)
}
