// Package ioutil adapts connections to the newline-delimited text protocol.
package ioutil

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"
)

// ErrLineTooLong is returned when a peer sends a line longer than MaxLineSize.
var ErrLineTooLong = errors.New("line exceeds maximum size")

// MaxLineSize bounds a single protocol line.
const MaxLineSize = 64 * 1024

// LineConn reads and writes newline-terminated lines over a connection.
// It is not safe for concurrent use.
type LineConn struct {
	conn        net.Conn
	r           *bufio.Reader
	w           *bufio.Writer
	readTimeout time.Duration
}

// NewLineConn wraps conn. A zero readTimeout blocks reads indefinitely.
func NewLineConn(conn net.Conn, readTimeout time.Duration) *LineConn {
	return &LineConn{
		conn:        conn,
		r:           bufio.NewReaderSize(conn, 4096),
		w:           bufio.NewWriter(conn),
		readTimeout: readTimeout,
	}
}

// ReadLine reads the next line without its terminator ("\n" or "\r\n").
// A final unterminated line is returned with a nil error; io.EOF is only
// returned when no data was read.
func (lc *LineConn) ReadLine() (string, error) {
	if lc.readTimeout > 0 {
		if err := lc.conn.SetReadDeadline(time.Now().Add(lc.readTimeout)); err != nil {
			return "", err
		}
		defer lc.conn.SetReadDeadline(time.Time{}) //nolint:errcheck
	}

	var sb strings.Builder
	for {
		frag, isPrefix, err := lc.r.ReadLine()
		sb.Write(frag)
		if sb.Len() > MaxLineSize {
			return "", ErrLineTooLong
		}
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if !isPrefix {
			return sb.String(), nil
		}
	}
}

// WriteLine writes line followed by "\n" and flushes it.
func (lc *LineConn) WriteLine(line string) error {
	if _, err := lc.w.WriteString(line); err != nil {
		return err
	}
	if err := lc.w.WriteByte('\n'); err != nil {
		return err
	}
	return lc.w.Flush()
}

// Conn returns the underlying connection.
func (lc *LineConn) Conn() net.Conn {
	return lc.conn
}

// Close closes the underlying connection.
func (lc *LineConn) Close() error {
	return lc.conn.Close()
}
