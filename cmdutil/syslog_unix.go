// +build !windows

package cmdutil

import (
	"log/syslog"

	"github.com/sirupsen/logrus"
	logrussyslog "github.com/sirupsen/logrus/hooks/syslog"
)

func newSyslogHook(network, addr string, lvl logrus.Level, tag string) (logrus.Hook, error) {
	return logrussyslog.NewSyslogHook(network, addr, syslogPriority(lvl), tag)
}

func syslogPriority(lvl logrus.Level) syslog.Priority {
	switch lvl {
	case logrus.PanicLevel:
		return syslog.LOG_EMERG
	case logrus.FatalLevel:
		return syslog.LOG_CRIT
	case logrus.ErrorLevel:
		return syslog.LOG_ERR
	case logrus.WarnLevel:
		return syslog.LOG_WARNING
	case logrus.InfoLevel:
		return syslog.LOG_INFO
	default:
		return syslog.LOG_DEBUG
	}
}
