package cmdutil

import (
	"github.com/sirupsen/logrus"
	"github.com/skycoin/skycoin/src/util/logging"
	"github.com/spf13/cobra"

	"github.com/skycoin/musicguru/discord"
)

// ServiceFlags are the flags shared by every musicguru binary.
type ServiceFlags struct {
	Tag        string
	LogLvl     string
	SyslogNet  string
	SyslogAddr string
}

// Init registers the service flags on cmd.
func (f *ServiceFlags) Init(cmd *cobra.Command, defaultTag string) {
	cmd.PersistentFlags().StringVar(&f.Tag,
		"tag", defaultTag, "tag used for logging and syslog")
	cmd.PersistentFlags().StringVar(&f.LogLvl,
		"log-level", "info", "level of logging: debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().StringVar(&f.SyslogNet,
		"syslog-net", "udp", "network in which to dial to syslog server")
	cmd.PersistentFlags().StringVar(&f.SyslogAddr,
		"syslog-addr", "", "address in which to dial to syslog server")
}

// Logger returns the logger for the service, configuring the global level
// and any syslog or discord hooks.
func (f *ServiceFlags) Logger() *logging.Logger {
	log := logging.MustGetLogger(f.Tag)

	lvl, err := logging.LevelFromString(f.LogLvl)
	if err != nil {
		log.WithError(err).Warnf("Invalid log level %q, using info.", f.LogLvl)
		lvl = logrus.InfoLevel
	}
	logging.SetLevel(lvl)

	if f.SyslogAddr != "" {
		hook, err := newSyslogHook(f.SyslogNet, f.SyslogAddr, lvl, f.Tag)
		if err != nil {
			log.WithError(err).
				WithField("addr", f.SyslogAddr).
				Fatal("Unable to connect to syslog daemon.")
		}
		logging.AddHook(hook)
	}

	if url := discord.GetWebhookURLFromEnv(); url != "" {
		logging.AddHook(discord.NewHook(f.Tag, url, discord.WithLimit(discord.DefaultLimit)))
	}

	return log
}
