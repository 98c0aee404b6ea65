package musicguru

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"

	"github.com/skycoin/musicguru/netutil"
	"github.com/skycoin/musicguru/servermetrics"
	"github.com/skycoin/musicguru/songdb"
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Sequential serves each connection to completion before accepting the next.
	Sequential bool
	// ReadTimeout bounds the wait for the client's year. Zero waits forever.
	ReadTimeout time.Duration
	// HostAddress is appended to every song. If empty, the local host address is used.
	HostAddress string
}

// Stats reports what a server has done since it started.
type Stats struct {
	StartedAt      time.Time
	ActiveSessions int64
	Served         int64
	Failed         int64
}

// Server answers song requests for connections accepted from a listener.
type Server struct {
	log  logrus.FieldLogger
	db   *songdb.DB
	conf ServerConfig
	m    servermetrics.Metrics

	startedAt time.Time
	active    int64
	served    int64
	failed    int64

	hostOnce sync.Once
	hostAddr string

	wg sync.WaitGroup
}

// NewServer creates a server over db. A nil conf uses defaults and a nil m
// disables metrics.
func NewServer(db *songdb.DB, conf *ServerConfig, m servermetrics.Metrics) *Server {
	if db == nil {
		panic("cannot create server without a songdb.DB")
	}
	if conf == nil {
		conf = &ServerConfig{}
	}
	if m == nil {
		m = servermetrics.NewEmpty()
	}
	return &Server{
		log:       logging.MustGetLogger("musicguru_server"),
		db:        db,
		conf:      *conf,
		m:         m,
		startedAt: time.Now(),
	}
}

// SetLogger sets the server's logger.
func (s *Server) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// Stats returns a snapshot of the server's counters.
func (s *Server) Stats() Stats {
	return Stats{
		StartedAt:      s.startedAt,
		ActiveSessions: atomic.LoadInt64(&s.active),
		Served:         atomic.LoadInt64(&s.served),
		Failed:         atomic.LoadInt64(&s.failed),
	}
}

// DB returns the database the server answers from.
func (s *Server) DB() *songdb.DB {
	return s.db
}

// Serve accepts connections on lis until ctx is cancelled or lis fails.
// A failing session never stops the accept loop. Serve closes lis and
// waits for running sessions before returning.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := lis.Close(); err != nil {
			s.log.WithError(err).Debug("Listener closed with error.")
		}
	}()

	log := s.log.WithField("local_addr", lis.Addr())
	log.WithField("sequential", s.conf.Sequential).Info("Server waiting for client connections.")
	defer func() {
		cancel()
		s.wg.Wait()
		log.Info("Stopped musicguru server.")
	}()

	for {
		conn, err := lis.Accept()
		if err != nil {
			// If context is cancelled, there is no error to report.
			if isDone(ctx) {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() { //nolint:staticcheck
				log.WithError(err).Warn("Temporary accept error.")
				time.Sleep(10 * time.Millisecond)
				continue
			}
			return err
		}

		if s.conf.Sequential {
			s.handleConn(ctx, conn)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// ListenAndServe listens on the TCP address addr and serves it.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	log := s.log.WithField("remote_tcp", conn.RemoteAddr())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = conn.Close() //nolint:errcheck
	}()

	atomic.AddInt64(&s.active, 1)
	s.m.RecordSession(servermetrics.DeltaConnect)
	defer func() {
		atomic.AddInt64(&s.active, -1)
		s.m.RecordSession(servermetrics.DeltaDisconnect)
	}()

	log.Info("Client connected.")

	ses := newServerSession(s, conn, log)
	if err := ses.run(ctx); err != nil {
		atomic.AddInt64(&s.failed, 1)
		s.m.RecordSession(servermetrics.DeltaFailed)
		log.WithError(err).
			WithField("kind", KindOf(err)).
			WithField("state", ses.state).
			Warn("Session aborted.")
		return
	}
	atomic.AddInt64(&s.served, 1)
}

// hostAddress returns the address appended to songs sent over conn.
func (s *Server) hostAddress(conn net.Conn) string {
	if s.conf.HostAddress != "" {
		return s.conf.HostAddress
	}
	s.hostOnce.Do(func() {
		s.hostAddr = netutil.LocalHostAddress(nil)
	})
	if s.hostAddr != "" {
		return s.hostAddr
	}
	return netutil.AddrIP(conn.LocalAddr())
}

func isDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
