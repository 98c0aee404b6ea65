package musicguru

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skycoin/musicguru/ioutil"
	"github.com/skycoin/musicguru/songdb"
)

// SessionState is a step of the server side conversation.
type SessionState int

// Session states, in the order they are visited.
const (
	StateInit SessionState = iota
	StateSendRange
	StateAwaitYear
	StateSelectAndSend
	StateDone
)

func (st SessionState) String() string {
	switch st {
	case StateInit:
		return "init"
	case StateSendRange:
		return "send_range"
	case StateAwaitYear:
		return "await_year"
	case StateSelectAndSend:
		return "select_and_send"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(st))
	}
}

// serverSession runs the three message exchange for one connection.
// Nothing is retained once the session ends.
type serverSession struct {
	srv   *Server
	lc    *ioutil.LineConn
	log   logrus.FieldLogger
	state SessionState

	lines []string
	dr    songdb.DateRange
	year  int
}

func newServerSession(srv *Server, conn net.Conn, log logrus.FieldLogger) *serverSession {
	return &serverSession{
		srv: srv,
		lc:  ioutil.NewLineConn(conn, srv.conf.ReadTimeout),
		log: log,
	}
}

// run drives the session until StateDone or the first error.
func (ss *serverSession) run(ctx context.Context) error {
	defer func() {
		if err := ss.lc.Close(); err != nil {
			ss.log.WithError(err).Debug("Connection closed with error.")
		}
	}()

	for ss.state != StateDone {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := ss.step(ctx)
		if err != nil {
			return err
		}
		ss.state = next
	}
	return nil
}

func (ss *serverSession) step(ctx context.Context) (SessionState, error) {
	switch ss.state {
	case StateInit:
		lines, err := ss.srv.db.Lines(ctx)
		if err != nil {
			return ss.state, wrap(ErrDatabase, err)
		}
		dr, err := songdb.ComputeDateRange(lines)
		if err != nil {
			return ss.state, wrap(ErrNoDateRange, err)
		}
		ss.lines, ss.dr = lines, dr
		return StateSendRange, nil

	case StateSendRange:
		if err := ss.lc.WriteLine(ss.dr.String()); err != nil {
			return ss.state, err
		}
		return StateAwaitYear, nil

	case StateAwaitYear:
		line, err := ss.lc.ReadLine()
		if err != nil {
			return ss.state, wrap(ErrNoResponse, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return ss.state, wrap(ErrInvalidYear, err)
		}
		ss.year = year
		ss.log.WithField("year", year).Info("Client input.")
		return StateSelectAndSend, nil

	case StateSelectAndSend:
		out := NotFoundLine
		song, err := ss.srv.db.Pick(ss.lines, ss.year)
		switch err {
		case nil:
			out = fmt.Sprintf("%s (%s)", song, ss.srv.hostAddress(ss.lc.Conn()))
			ss.srv.m.RecordLookup(true)
		case songdb.ErrNotFound:
			ss.log.WithField("year", ss.year).Info("No song found for year.")
			ss.srv.m.RecordLookup(false)
		default:
			return ss.state, err
		}
		if err := ss.lc.WriteLine(out); err != nil {
			return ss.state, err
		}
		ss.log.WithField("output", out).Info("Sent song.")
		return StateDone, nil
	}
	return ss.state, fmt.Errorf("invalid session state %v", ss.state)
}
