// Package resourcemonitor periodically warns about high CPU and memory load.
package resourcemonitor

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is default interval between resource checks.
	DefaultInterval = 1 * time.Minute
	// DefaultCPUThresholdPct is default percentage above which CPU load is considered as high.
	DefaultCPUThresholdPct = 80.0
	// DefaultMemThresholdPct is default percentage above which memory load is considered as high.
	DefaultMemThresholdPct = 80.0
	cpuMeasureInterval     = 1 * time.Second
)

// Options define monitoring options.
type Options struct {
	Interval        time.Duration
	CPUThresholdPct float64
	MemThresholdPct float64
}

// DefaultOptions returns the default monitoring options.
func DefaultOptions() Options {
	return Options{
		Interval:        DefaultInterval,
		CPUThresholdPct: DefaultCPUThresholdPct,
		MemThresholdPct: DefaultMemThresholdPct,
	}
}

// Load is a single resource measurement.
type Load struct {
	CPUPct float64
	MemPct float64
}

// Monitor monitors resources.
type Monitor struct {
	log  logrus.FieldLogger
	opts Options

	cpuPercent func() (float64, error)
	memPercent func() (float64, error)
}

// New returns a new monitor.
func New(log logrus.FieldLogger, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Monitor{
		log:        log,
		opts:       opts,
		cpuPercent: cpuPercent,
		memPercent: memPercent,
	}
}

// StartInBackground starts a goroutine that checks resources until ctx is done.
func (m *Monitor) StartInBackground(ctx context.Context) {
	ticker := time.NewTicker(m.opts.Interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Check()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Check measures resource consumption and logs loads above the thresholds.
func (m *Monitor) Check() Load {
	var load Load

	if pct, err := m.cpuPercent(); err != nil {
		m.log.WithError(err).Error("Failed to check CPU load.")
	} else {
		load.CPUPct = pct
		if pct > m.opts.CPUThresholdPct {
			m.log.WithField("cpu_pct", pct).Warn("CPU load is too high.")
		}
	}

	if pct, err := m.memPercent(); err != nil {
		m.log.WithError(err).Error("Failed to check memory load.")
	} else {
		load.MemPct = pct
		if pct > m.opts.MemThresholdPct {
			m.log.WithField("mem_pct", pct).Warn("Memory load is too high.")
		}
	}

	return load
}

func cpuPercent() (float64, error) {
	stat, err := cpu.Percent(cpuMeasureInterval, false)
	if err != nil || len(stat) == 0 {
		return 0, err
	}
	return stat[0], nil
}

func memPercent() (float64, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return stat.UsedPercent, nil
}
