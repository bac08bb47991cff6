package sysmem

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/user/newsingest/pkg/metrics"
)

// Monitor is an adaptive admission gate driven by host memory usage.
// Wait blocks while used memory is at or above the configured threshold,
// re-sampling on a fixed interval, and returns once usage drops below it.
type Monitor struct {
	threshold float64 // percent, e.g. 80
	interval  time.Duration

	// usedPercent is swappable for tests.
	usedPercent func() (float64, error)
}

// NewMonitor creates a Monitor with the given threshold percentage and
// sampling interval.
func NewMonitor(thresholdPercent float64, interval time.Duration) *Monitor {
	return &Monitor{
		threshold:   thresholdPercent,
		interval:    interval,
		usedPercent: systemUsedPercent,
	}
}

// Wait blocks until host memory usage is below the threshold or the
// context is cancelled. Sampling errors fail open: admission proceeds
// rather than stalling the whole run on a broken gauge.
func (m *Monitor) Wait(ctx context.Context) error {
	paused := false
	for {
		pct, err := m.usedPercent()
		if err != nil {
			slog.Warn("Failed to sample memory usage, admitting anyway", "error", err)
			return nil
		}
		if pct < m.threshold {
			if paused {
				slog.Info("Memory pressure cleared, resuming admissions", "used_percent", pct)
			}
			return nil
		}
		if !paused {
			paused = true
			metrics.MemoryGatePauses.Inc()
			slog.Warn("Memory pressure high, pausing fetch admissions",
				"used_percent", pct, "threshold_percent", m.threshold)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.interval):
		}
	}
}

func systemUsedPercent() (float64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return v.UsedPercent, nil
}
