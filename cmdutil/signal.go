package cmdutil

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

// SignalContext returns a context that is cancelled on the first termination
// signal. The returned cancel func must be called to release resources.
func SignalContext(ctx context.Context, log logrus.FieldLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, listenSigs()...)

	go func() {
		select {
		case sig := <-ch:
			if log != nil {
				log.WithField("signal", sig).Info("Closing with received signal.")
			}
		case <-ctx.Done():
		}
		signal.Stop(ch)
		cancel()
	}()

	return ctx, cancel
}
