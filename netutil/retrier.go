// Package netutil provides dialing and addressing helpers.
package netutil

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Package errors.
var (
	ErrMaximumRetriesReached = errors.New("maximum retries attempted without success")
)

// RetryFunc is a function used as argument of (*Retrier).Do(), which will retry on error unless it is whitelisted.
type RetryFunc func() error

// Retrier holds a configuration for how retries should be performed.
type Retrier struct {
	initBO time.Duration // initial backoff duration
	maxBO  time.Duration // maximum backoff duration
	tries  int64         // number of times the given function is to be retried until success, if 0 it will be retried forever until success
	factor float64       // multiplier for the backoff duration that is applied on every retry
	errWl  map[error]struct{}
	log    logrus.FieldLogger
}

// NewRetrier returns a retrier that is ready to call Do() method
func NewRetrier(log logrus.FieldLogger, initBO, maxBO time.Duration, tries int64, factor float64) *Retrier {
	return &Retrier{
		initBO: initBO,
		maxBO:  maxBO,
		tries:  tries,
		factor: factor,
		errWl:  make(map[error]struct{}),
		log:    log,
	}
}

// WithErrWhitelist sets a list of errors into the retrier, if the RetryFunc provided to Do() fails with one of them it will return inmediatelly with such error.
func (r *Retrier) WithErrWhitelist(errors ...error) *Retrier {
	m := make(map[error]struct{})
	for _, err := range errors {
		m[err] = struct{}{}
	}
	r.errWl = m
	return r
}

// Do takes a RetryFunc and attempts to execute it.
// If it fails with an error it will be retried a maximum of given times with an initBO
// until it returns nil or an error that is whitelisted
func (r *Retrier) Do(ctx context.Context, f RetryFunc) error {
	bo := r.initBO
	t := time.NewTicker(bo)
	defer t.Stop()

	for i := int64(0); r.tries == 0 || i < r.tries; i++ {
		if err := f(); err != nil {
			if _, ok := r.errWl[err]; ok {
				return err
			}
			if r.tries != 0 && i+1 >= r.tries {
				return err
			}
			if newBO := time.Duration(float64(bo) * r.factor); r.maxBO == 0 || newBO <= r.maxBO {
				bo = newBO
				t.Reset(bo)
			}
			if r.log != nil {
				r.log.WithError(err).WithField("current_backoff", bo).Warn("Retrying...")
			}
			select {
			case <-t.C:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
	return ErrMaximumRetriesReached
}
