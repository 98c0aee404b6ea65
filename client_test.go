package musicguru

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycoin/musicguru/songdb"
)

func TestClient_Request(t *testing.T) {
	_, addr := startTestServer(t, songdb.NewMemorySource(testLines(1990, 1991, 1992)), nil)

	out := new(bytes.Buffer)
	conf := DefaultClientConfig()
	conf.Out = out

	c, err := Dial(context.TODO(), addr, conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	res, err := c.Request(context.TODO(), 1991)
	require.NoError(t, err)

	assert.Equal(t, songdb.DateRange{Start: 1990, End: 1992}, res.Range)
	assert.Equal(t, 1991, res.Year)
	assert.False(t, res.Substituted)
	assert.True(t, strings.HasPrefix(res.Output, "In 1991 the number "), res.Output)
	assert.True(t, strings.HasSuffix(res.Output, " (10.0.0.7)"), res.Output)

	entry, err := songdb.ParseEntry(strings.TrimSuffix(res.Song, " (10.0.0.7)"))
	require.NoError(t, err)
	assert.Contains(t, testBlock(1991)[1:], entry.Line)
	assert.Contains(t, res.Output, fmt.Sprintf("number %d song was Hit %d of 1991", entry.Rank, entry.Rank))

	assert.Equal(t, "Server response: 1990-1992\n", out.String())
}

func TestClient_RequestOutOfRange(t *testing.T) {
	_, addr := startTestServer(t, songdb.NewMemorySource(testLines(1990, 1991, 1992)), nil)

	out := new(bytes.Buffer)
	conf := DefaultClientConfig()
	conf.Out = out

	c, err := Dial(context.TODO(), addr, conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	res, err := c.Request(context.TODO(), 2050)
	require.NoError(t, err)
	assert.True(t, res.Substituted)
	assert.True(t, res.Range.Contains(res.Year))
	assert.Contains(t, out.String(),
		fmt.Sprintf("Specified year out of range (1990-1992), using random date instead: %d", res.Year))
	assert.True(t, strings.HasPrefix(res.Output, fmt.Sprintf("In %d ", res.Year)))
}

func TestClient_RequestNotFound(t *testing.T) {
	// 1991 lies inside the range but has no block.
	lines := append(testLines(1990), testLines(1992)...)
	_, addr := startTestServer(t, songdb.NewMemorySource(lines), nil)

	c, err := Dial(context.TODO(), addr, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	res, err := c.Request(context.TODO(), 1991)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSongNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, NotFoundLine, res.Song)
	assert.Empty(t, res.Output)
}

func TestClient_MalformedRange(t *testing.T) {
	connA, connB := net.Pipe()
	t.Cleanup(func() {
		_ = connA.Close()
		_ = connB.Close()
	})

	go func() {
		w := bufio.NewWriter(connB)
		_, _ = w.WriteString("not a range\n")
		_ = w.Flush()
	}()

	c := NewClient(connA, nil)
	_, err := c.Request(context.TODO(), 1990)
	assert.ErrorIs(t, err, ErrMalformedRange)
	assert.Equal(t, KindProtocol, KindOf(err))
}

func TestClient_ServerHangsUp(t *testing.T) {
	connA, connB := net.Pipe()
	require.NoError(t, connB.Close())

	c := NewClient(connA, nil)
	_, err := c.Request(context.TODO(), 1990)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestDial_Fails(t *testing.T) {
	conf := DefaultClientConfig()
	conf.DialRetries = 2
	conf.DialBackoff = 1

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	_, err = Dial(context.TODO(), addr, conf)
	assert.Error(t, err)
}

func TestClient_RequestNegativeYear(t *testing.T) {
	_, addr := startTestServer(t, songdb.NewMemorySource(testLines(1990, 1991)), nil)

	c, err := Dial(context.TODO(), addr, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	res, err := c.Request(context.TODO(), -5)
	require.NoError(t, err)
	assert.Equal(t, -5, res.Requested)
	assert.True(t, res.Substituted)
	assert.True(t, res.Range.Contains(res.Year))
}
