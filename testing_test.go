package musicguru

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"

	"github.com/skycoin/musicguru/songdb"
)

const testTimeout = 5 * time.Second

// testBlock returns a year marker followed by ten ranked songs.
func testBlock(year int) []string {
	lines := []string{fmt.Sprint(year)}
	for i := 1; i <= songdb.BlockSize; i++ {
		lines = append(lines, fmt.Sprintf("%d. Hit %d of %d", i, i, year))
	}
	return lines
}

func testLines(years ...int) []string {
	var lines []string
	for _, y := range years {
		lines = append(lines, testBlock(y)...)
	}
	return lines
}

// startTestServer serves src on a local listener and returns its address.
// The server is stopped when the test ends.
func startTestServer(t *testing.T, src songdb.Source, conf *ServerConfig) (*Server, string) {
	lis, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	if conf == nil {
		conf = &ServerConfig{HostAddress: "10.0.0.7"}
	}
	srv := NewServer(songdb.New(src, songdb.NewRandWithSeed(1)), conf, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, lis) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(testTimeout):
			t.Error("server did not stop in time")
		}
	})

	return srv, lis.Addr().String()
}

// dialTestServer connects a raw line client to addr.
func dialTestServer(t *testing.T, addr string) net.Conn {
	conn, err := net.DialTimeout("tcp", addr, testTimeout)
	require.NoError(t, err)
	require.NoError(t, conn.SetDeadline(time.Now().Add(testTimeout)))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
