// +build !windows

package cmdutil

import (
	"log/syslog"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSyslogPriority(t *testing.T) {
	assert.Equal(t, syslog.LOG_ERR, syslogPriority(logrus.ErrorLevel))
	assert.Equal(t, syslog.LOG_INFO, syslogPriority(logrus.InfoLevel))
	assert.Equal(t, syslog.LOG_DEBUG, syslogPriority(logrus.TraceLevel))
}
