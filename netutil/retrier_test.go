package netutil

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/skycoin/skycoin/src/util/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrier_Do(t *testing.T) {
	const backoff = 10 * time.Millisecond
	errTest := errors.New("test error")
	log := logging.MustGetLogger("retrier_test")

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		r := NewRetrier(log, backoff, 0, 5, 1)
		err := r.Do(context.TODO(), func() error {
			calls++
			if calls < 3 {
				return errTest
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after tries", func(t *testing.T) {
		calls := 0
		r := NewRetrier(log, backoff, 0, 3, 2)
		err := r.Do(context.TODO(), func() error {
			calls++
			return errTest
		})
		assert.Equal(t, errTest, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("whitelisted error returns immediately", func(t *testing.T) {
		calls := 0
		r := NewRetrier(log, backoff, 0, 3, 1).WithErrWhitelist(errTest)
		err := r.Do(context.TODO(), func() error {
			calls++
			return errTest
		})
		assert.Equal(t, errTest, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := NewRetrier(log, time.Second, 0, 0, 1)
		err := r.Do(ctx, func() error { return errTest })
		assert.Equal(t, context.Canceled, err)
	})
}

func TestAddrIP(t *testing.T) {
	assert.Equal(t, "", AddrIP(nil))
	assert.Equal(t, "10.0.0.1", AddrIP(&net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 80}))
	assert.NotEmpty(t, LocalHostAddress(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}))
}
