package resourcemonitor

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_Check(t *testing.T) {
	logger, hook := test.NewNullLogger()

	m := New(logger, DefaultOptions())
	m.cpuPercent = func() (float64, error) { return 95, nil }
	m.memPercent = func() (float64, error) { return 0, errors.New("no meminfo") }

	load := m.Check()
	assert.Equal(t, 95.0, load.CPUPct)
	assert.Zero(t, load.MemPct)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, logrus.WarnLevel, hook.Entries[0].Level)
	assert.Equal(t, logrus.ErrorLevel, hook.Entries[1].Level)

	hook.Reset()
	m.cpuPercent = func() (float64, error) { return 10, nil }
	m.memPercent = func() (float64, error) { return 10, nil }
	m.Check()
	assert.Empty(t, hook.Entries)
}
