package ioutil

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConn_ReadWrite(t *testing.T) {
	connA, connB := net.Pipe()
	a, b := NewLineConn(connA, 0), NewLineConn(connB, 0)
	t.Cleanup(func() {
		assert.NoError(t, a.Close())
		assert.NoError(t, b.Close())
	})

	go func() {
		assert.NoError(t, a.WriteLine("1990-1999"))
		assert.NoError(t, a.WriteLine("1995"))
	}()

	line, err := b.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1990-1999", line)

	line, err = b.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1995", line)
}

func TestLineConn_CRLFAndEOF(t *testing.T) {
	connA, connB := net.Pipe()
	b := NewLineConn(connB, 0)

	go func() {
		_, _ = io.WriteString(connA, "1995\r\ntail")
		_ = connA.Close()
	}()

	line, err := b.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "1995", line)

	line, err = b.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "tail", line)

	_, err = b.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestLineConn_ReadTimeout(t *testing.T) {
	connA, connB := net.Pipe()
	b := NewLineConn(connB, 50*time.Millisecond)
	t.Cleanup(func() {
		_ = connA.Close()
		_ = connB.Close()
	})

	_, err := b.ReadLine()
	require.Error(t, err)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestLineConn_TooLong(t *testing.T) {
	connA, connB := net.Pipe()
	b := NewLineConn(connB, 0)
	t.Cleanup(func() {
		_ = connA.Close()
		_ = connB.Close()
	})

	go func() {
		_, _ = io.WriteString(connA, strings.Repeat("x", MaxLineSize+10)+"\n")
	}()

	_, err := b.ReadLine()
	assert.ErrorIs(t, err, ErrLineTooLong)
}
