// +build windows

package cmdutil

import (
	"errors"

	"github.com/sirupsen/logrus"
)

func newSyslogHook(_, _ string, _ logrus.Level, _ string) (logrus.Hook, error) {
	return nil, errors.New("syslog is not supported on windows")
}
