package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"path"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/skycoin/musicguru"
	"github.com/skycoin/musicguru/cmdutil"
	"github.com/skycoin/musicguru/healthcheck"
)

var sf cmdutil.ServiceFlags

func init() {
	RootCmd.Flags().SetInterspersed(false)
	sf.Init(RootCmd, "musicguru_health")
}

func rootCmdName() string {
	return path.Base(os.Args[0])
}

// RootCmd is the musicguru-health command.
var RootCmd = &cobra.Command{
	Use:   rootCmdName() + " [flags] <port>",
	Short: "Accepts and immediately closes tcp connections for liveness probes",
	Run: func(_ *cobra.Command, args []string) {
		if err := musicguru.CheckArgCount(args, 1); err != nil {
			fail(err)
		}
		port, err := musicguru.ParsePort(args[0])
		if err != nil {
			fail(err)
		}

		log := sf.Logger()
		ctx, cancel := cmdutil.SignalContext(context.Background(), log)
		defer cancel()

		addr := net.JoinHostPort("", strconv.Itoa(int(port)))
		log.WithField("addr", addr).Info("Serving health checks...")
		if err := healthcheck.ListenAndServe(ctx, addr); err != nil {
			log.WithError(err).Error("Health listener failed.")
			os.Exit(1)
		}
	},
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

// Execute executes root CLI command.
func Execute() {
	RootCmd.SetArgs(append([]string{}, cmdutil.PositionalArgs(RootCmd, os.Args[1:])...))
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
