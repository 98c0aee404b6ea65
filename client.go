package musicguru

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"

	"github.com/skycoin/musicguru/ioutil"
	"github.com/skycoin/musicguru/netutil"
	"github.com/skycoin/musicguru/songdb"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// Out receives user-visible progress lines and notices.
	Out io.Writer
	// DialRetries is the number of dial attempts. Zero means one attempt.
	DialRetries int64
	// DialBackoff is the initial wait between dial attempts.
	DialBackoff time.Duration
	// ReadTimeout bounds each wait for a server line. Zero waits forever.
	ReadTimeout time.Duration
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Out:         io.Discard,
		DialRetries: DefaultDialRetries,
		DialBackoff: DefaultDialBackoff,
	}
}

// Result is the outcome of one song request.
type Result struct {
	Range       songdb.DateRange
	Requested   int
	Year        int
	Substituted bool
	Song        string
	Output      string
}

// Client runs the client side of the conversation over a single connection.
type Client struct {
	log  logrus.FieldLogger
	conf ClientConfig
	lc   *ioutil.LineConn
	rng  songdb.Rand
}

// Dial connects to addr, retrying according to conf.
func Dial(ctx context.Context, addr string, conf *ClientConfig) (*Client, error) {
	if conf == nil {
		conf = DefaultClientConfig()
	}
	log := logging.MustGetLogger("musicguru_client")

	tries := conf.DialRetries
	if tries <= 0 {
		tries = 1
	}
	backoff := conf.DialBackoff
	if backoff <= 0 {
		backoff = DefaultDialBackoff
	}

	var (
		d    net.Dialer
		conn net.Conn
	)
	err := netutil.NewRetrier(log, backoff, 0, tries, 2).Do(ctx, func() error {
		var err error
		conn, err = d.DialContext(ctx, "tcp", addr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewClient(conn, conf), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, conf *ClientConfig) *Client {
	if conf == nil {
		conf = DefaultClientConfig()
	}
	c := &Client{
		log:  logging.MustGetLogger("musicguru_client"),
		conf: *conf,
		lc:   ioutil.NewLineConn(conn, conf.ReadTimeout),
		rng:  defaultRand,
	}
	if c.conf.Out == nil {
		c.conf.Out = io.Discard
	}
	return c
}

// SetLogger sets the client's logger.
func (c *Client) SetLogger(log logrus.FieldLogger) {
	c.log = log
}

// Request runs the three message exchange for the requested year.
// A year outside the announced range is replaced by a random year within it.
func (c *Client) Request(ctx context.Context, year int) (*Result, error) {
	stop := c.closeOnDone(ctx)
	defer stop()

	rangeLine, err := c.readLine()
	if err != nil {
		return nil, err
	}
	c.printf("Server response: %s\n", rangeLine)

	res, err := resolveYear(rangeLine, year, c.rng)
	if err != nil {
		return nil, err
	}
	if res.Substituted {
		c.printf("Specified year out of range (%s), using random date instead: %d\n", rangeLine, res.Year)
	}

	if err := c.lc.WriteLine(strconv.Itoa(res.Year)); err != nil {
		return nil, err
	}

	song, err := c.readLine()
	if err != nil {
		return nil, err
	}
	out := &Result{
		Range:       res.Range,
		Requested:   year,
		Year:        res.Year,
		Substituted: res.Substituted,
		Song:        song,
	}
	if song == NotFoundLine {
		return out, fmt.Errorf("%w: %d", ErrSongNotFound, res.Year)
	}
	out.Output = FormatSongOutput(song, res.Year)
	return out, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.lc.Close()
}

func (c *Client) readLine() (string, error) {
	line, err := c.lc.ReadLine()
	if err == io.EOF {
		return "", ErrNoResponse
	}
	if err != nil {
		return "", wrap(ErrNoResponse, err)
	}
	return line, nil
}

// closeOnDone closes the connection if ctx ends before the returned func is called.
func (c *Client) closeOnDone(ctx context.Context) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			if err := c.lc.Close(); err != nil {
				c.log.WithError(err).Debug("Connection closed with error.")
			}
		case <-done:
		}
	}()
	return func() { close(done) }
}

func (c *Client) printf(format string, v ...interface{}) {
	if _, err := fmt.Fprintf(c.conf.Out, format, v...); err != nil {
		c.log.WithError(err).Debug("Failed to write output.")
	}
}
