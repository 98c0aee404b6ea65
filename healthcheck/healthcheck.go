// Package healthcheck implements a bare TCP liveness listener.
//
// Every accepted connection is closed immediately; a successful connect is
// the whole probe.
package healthcheck

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"
)

var log = logging.MustGetLogger("healthcheck")

// Serve accepts and closes connections on lis until ctx is done or lis fails.
func Serve(ctx context.Context, lis net.Listener) error {
	return serve(ctx, lis, log)
}

// ListenAndServe binds addr and serves it. A bind failure is returned
// before anything is served.
func ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, lis)
}

func serve(ctx context.Context, lis net.Listener, log logrus.FieldLogger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = lis.Close() //nolint:errcheck
	}()

	log.WithField("addr", lis.Addr()).Info("Serving health checks.")
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("Failed to close probe connection.")
		}
	}
}
