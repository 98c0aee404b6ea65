package commands

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	proxyproto "github.com/pires/go-proxyproto"
	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/skycoin/musicguru"
	"github.com/skycoin/musicguru/buildinfo"
	"github.com/skycoin/musicguru/cmd/musicguru-server/internal/api"
	"github.com/skycoin/musicguru/cmdutil"
	"github.com/skycoin/musicguru/encodedecoder"
	"github.com/skycoin/musicguru/healthcheck"
	"github.com/skycoin/musicguru/metricsutil"
	"github.com/skycoin/musicguru/resourcemonitor"
	"github.com/skycoin/musicguru/servermetrics"
	"github.com/skycoin/musicguru/songdb"
)

const defaultEnvPrefix = "MUSICGURU"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var sf cmdutil.ServiceFlags

// variables
var (
	// persistent flags (with viper references)
	dbPath        = musicguru.DefaultDatabaseFile
	httpAddr      = ""
	metricsAddr   = ""
	healthAddr    = ""
	redisURL      = ""
	redisPassword = ""
	redisTTL      = songdb.DefaultCacheTTL
	codec         = string(encodedecoder.TypeJSON)
	readTimeout   = time.Duration(0)
	sequential    = false
	hostAddress   = ""
	proxyProtocol = false
	monitor       = false

	// persistent flags (without viper references)
	envPrefix = defaultEnvPrefix

	// root command flags (without viper references)
	confStdin = false
	confPath  = ""
)

var exit = os.Exit

func init() {
	RootCmd.Flags().SetInterspersed(false)
	sf.Init(RootCmd, "musicguru_server")

	RootCmd.PersistentFlags().StringVar(&dbPath, "db", dbPath,
		"path of the song database file")

	RootCmd.PersistentFlags().StringVar(&httpAddr, "http", httpAddr,
		"address to serve the status API and metrics on (disabled if empty)")

	RootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics", metricsAddr,
		"address to serve only '/metrics' on (disabled if empty)")

	RootCmd.PersistentFlags().StringVar(&healthAddr, "health", healthAddr,
		"address of the tcp liveness listener (disabled if empty)")

	RootCmd.PersistentFlags().StringVar(&redisURL, "redis", redisURL,
		"redis url used to cache the database (file is read directly if empty)")

	RootCmd.PersistentFlags().StringVar(&redisPassword, "redis-password", redisPassword,
		"redis password (REDIS_PASSWORD env is used if empty)")

	RootCmd.PersistentFlags().DurationVar(&redisTTL, "redis-ttl", redisTTL,
		"how long a cached database snapshot is trusted")

	RootCmd.PersistentFlags().StringVar(&codec, "codec", codec,
		"encoding of cached snapshots: json or gob")

	RootCmd.PersistentFlags().DurationVar(&readTimeout, "timeout", readTimeout,
		"how long to wait for a client's year (0 waits forever)")

	RootCmd.PersistentFlags().BoolVar(&sequential, "sequential", sequential,
		"serve one client at a time")

	RootCmd.PersistentFlags().StringVar(&hostAddress, "host-address", hostAddress,
		"address appended to every song (local host address if empty)")

	RootCmd.PersistentFlags().BoolVar(&proxyProtocol, "proxy-protocol", proxyProtocol,
		"accept PROXY protocol headers on the song listener")

	RootCmd.PersistentFlags().BoolVar(&monitor, "monitor", monitor,
		"periodically log cpu and memory usage warnings")

	cmdutil.Catch(viper.BindPFlags(RootCmd.PersistentFlags()))

	RootCmd.PersistentFlags().StringVar(&envPrefix, "envprefix", envPrefix,
		"env prefix")

	RootCmd.Flags().BoolVar(&confStdin, "confstdin", confStdin,
		"config will be read from stdin if set")

	RootCmd.Flags().StringVar(&confPath, "confpath", confPath,
		"config path")
}

// prepareVariables sources variables in the following precedence order: flags, env, config, default.
//
// Panics are called via `cmdutil.Catch` or `cmdutil.CatchWithMsg`.
// These are recovered in a defer statement where the help message is printed.
func prepareVariables(cmd *cobra.Command, _ []string) {
	defer func() {
		if r := recover(); r != nil {
			cmd.PrintErrln("Error:", r)
			fmt.Print("Help:\n  ")
			if err := cmd.Help(); err != nil {
				panic(err)
			}
			os.Exit(1)
		}
	}()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("json")
	if confStdin {
		v := make(map[string]interface{})
		buf := new(bytes.Buffer)
		cmdutil.CatchWithMsg("flag 'confstdin' is set, but config read from stdin is invalid",
			json.NewDecoder(os.Stdin).Decode(&v),
			json.NewEncoder(buf).Encode(v),
			viper.ReadConfig(buf))
	} else if confPath != "" {
		viper.SetConfigFile(confPath)
		cmdutil.CatchWithMsg("flag 'confpath' is set, but we failed to read config from specified path",
			viper.ReadInConfig())
	}

	dbPath = viper.GetString("db")
	httpAddr = viper.GetString("http")
	metricsAddr = viper.GetString("metrics")
	healthAddr = viper.GetString("health")
	redisURL = viper.GetString("redis")
	redisPassword = viper.GetString("redis-password")
	if redisPassword == "" {
		redisPassword = os.Getenv("REDIS_PASSWORD")
	}
	redisTTL = cast.ToDuration(viper.Get("redis-ttl"))
	codec = viper.GetString("codec")
	readTimeout = cast.ToDuration(viper.Get("timeout"))
	sequential = cast.ToBool(viper.Get("sequential"))
	hostAddress = viper.GetString("host-address")
	proxyProtocol = cast.ToBool(viper.Get("proxy-protocol"))
	monitor = cast.ToBool(viper.Get("monitor"))

	_, err := encodedecoder.ParseType(codec)
	cmdutil.CatchWithMsg("value 'codec' is invalid", err)

	pLog := logrus.FieldLogger(logging.MustGetLogger("musicguru_server:init"))
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "redis-password" {
			return
		}
		if v := viper.Get(flag.Name); v != nil {
			pLog = pLog.WithField(flag.Name, v)
		}
	})
	pLog.Debug("Init complete.")
}

func rootCmdName() string {
	return path.Base(os.Args[0])
}

// RootCmd is the musicguru-server command.
var RootCmd = &cobra.Command{
	Use:   rootCmdName() + " [flags] <port>",
	Short: "Serves random top 10 songs for a requested year",
	Long: `musicguru-server announces the year range of its song database to every
client, reads the year the client picks and answers with a random song
from that year's top 10.`,
	PreRun: prepareVariables,
	Run: func(cmd *cobra.Command, args []string) {
		port, err := parsePortArg(args)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
			exit(1)
			return
		}

		log := sf.Logger()
		if _, err := buildinfo.Get().WriteTo(os.Stderr); err != nil {
			log.WithError(err).Warn("Failed to output build info.")
		}

		ctx, cancel := cmdutil.SignalContext(context.Background(), log)
		defer cancel()

		db := songdb.New(prepareSource(log), nil)

		m := servermetrics.Metrics(servermetrics.NewEmpty())
		if httpAddr != "" || metricsAddr != "" {
			m = servermetrics.NewVictoriaMetrics()
		}

		srv := musicguru.NewServer(db, &musicguru.ServerConfig{
			Sequential:  sequential,
			ReadTimeout: readTimeout,
			HostAddress: hostAddress,
		}, m)
		srv.SetLogger(log)

		if httpAddr != "" {
			a := api.New(log, srv, databaseName(), true)
			go func() {
				log.WithField("addr", httpAddr).Info("Serving status API...")
				if err := listenAndServe(httpAddr, a); err != nil {
					log.WithError(err).Error("Status API stopped.")
				}
			}()
		}

		if metricsAddr != "" {
			go func() {
				if err := metricsutil.ListenAndServeMetrics(ctx, log, metricsAddr); err != nil {
					log.WithError(err).Error("Metrics server stopped.")
				}
			}()
		}

		if healthAddr != "" {
			go func() {
				if err := healthcheck.ListenAndServe(ctx, healthAddr); err != nil {
					log.WithError(err).Error("Health listener stopped.")
				}
			}()
		}

		if monitor {
			resourcemonitor.New(log, resourcemonitor.DefaultOptions()).StartInBackground(ctx)
		}

		addr := net.JoinHostPort("", strconv.Itoa(int(port)))
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			log.WithError(err).WithField("addr", addr).Fatal("Failed to bind song listener.")
		}
		if proxyProtocol {
			lis = &proxyproto.Listener{Listener: lis}
		}

		if err := srv.Serve(ctx, lis); err != nil {
			log.WithError(err).Fatal("Server stopped with error.")
		}
	},
}

func parsePortArg(args []string) (uint16, error) {
	if err := musicguru.CheckArgCount(args, 1); err != nil {
		return 0, err
	}
	return musicguru.ParsePort(args[0])
}

func prepareSource(log logrus.FieldLogger) songdb.Source {
	kind := songdb.SourceFile
	if redisURL != "" {
		kind = songdb.SourceRedis
	}
	src, err := songdb.NewSource(kind, &songdb.Config{
		Path:          dbPath,
		RedisURL:      redisURL,
		RedisPassword: redisPassword,
		TTL:           redisTTL,
		Codec:         encodedecoder.Type(codec),
	})
	cmdutil.CatchWithLog(log, "failed to initialize song database", err)
	return src
}

func databaseName() string {
	if redisURL != "" {
		return "redis+" + dbPath
	}
	return dbPath
}

func listenAndServe(addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if proxyProtocol {
		ln = &proxyproto.Listener{Listener: ln}
	}
	defer ln.Close() // nolint:errcheck
	return srv.Serve(ln)
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
