package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/skycoin/musicguru"
	"github.com/skycoin/musicguru/cmdutil"
)

var sf cmdutil.ServiceFlags

var exit = os.Exit

var (
	retries = int64(musicguru.DefaultDialRetries)
	timeout = time.Duration(0)
)

func init() {
	RootCmd.Flags().SetInterspersed(false)
	sf.Init(RootCmd, "musicguru_client")
	sf.LogLvl = "warn"
	RootCmd.PersistentFlags().Lookup("log-level").DefValue = "warn"

	RootCmd.Flags().Int64Var(&retries, "retries", retries,
		"number of dial attempts before giving up")
	RootCmd.Flags().DurationVar(&timeout, "timeout", timeout,
		"how long to wait for each server response (0 waits forever)")
}

func rootCmdName() string {
	return path.Base(os.Args[0])
}

// RootCmd is the musicguru-client command.
var RootCmd = &cobra.Command{
	Use:     rootCmdName() + " [flags] <hostname> <port> <year>",
	Short:   "Asks a musicguru server for a top 10 song of a year",
	Example: `  musicguru-client localhost 8008 1996`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		host, port, year, err := parseArgs(args)
		if err != nil {
			fail(out, err)
			return
		}

		log := sf.Logger()
		ctx, cancel := cmdutil.SignalContext(context.Background(), log)
		defer cancel()

		conf := musicguru.DefaultClientConfig()
		conf.Out = out
		conf.DialRetries = retries
		conf.ReadTimeout = timeout

		addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
		c, err := musicguru.Dial(ctx, addr, conf)
		if err != nil {
			fail(out, err)
			return
		}
		c.SetLogger(log)
		defer func() {
			if err := c.Close(); err != nil {
				log.WithError(err).Debug("Connection closed with error.")
			}
		}()
		fmt.Fprintf(out, "Connected to server %s:%d\n", host, port)

		res, err := c.Request(ctx, year)
		if err != nil {
			log.WithError(err).WithField("kind", musicguru.KindOf(err)).Debug("Request failed.")
			if errors.Is(err, musicguru.ErrSongNotFound) {
				fmt.Fprintf(out, "No song found for %d\n", res.Year)
				exit(1)
				return
			}
			fail(out, err)
			return
		}
		fmt.Fprintln(out, res.Output)
	},
}

func parseArgs(args []string) (string, uint16, int, error) {
	if err := musicguru.CheckArgCount(args, 3); err != nil {
		return "", 0, 0, err
	}
	port, err := musicguru.ParsePort(args[1])
	if err != nil {
		return "", 0, 0, err
	}
	year, err := musicguru.ParseYear(args[2])
	if err != nil {
		return "", 0, 0, err
	}
	return args[0], port, year, nil
}

func fail(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	exit(1)
}

// Execute executes root CLI command.
func Execute() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func execute(args []string) error {
	RootCmd.SetArgs(append([]string{}, cmdutil.PositionalArgs(RootCmd, args)...))
	return RootCmd.Execute()
}
