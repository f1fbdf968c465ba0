// Package loadsampler is the optional periodic load sampler (SPEC_FULL.md
// §2 C16): logs CPU and memory occupancy for operator visibility; it does
// not log worker-pool activity. It never throttles or resizes any worker pool — pool sizes
// are fixed per spec §6 — grounded on the teacher's adaptive_throttler.go use
// of cpu.PercentWithContext/mem.VirtualMemoryWithContext, scaled down from
// that file's cgroup-aware adaptive throttling to a plain log-only sample.
package loadsampler

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Run samples CPU and memory usage every interval and logs them at Info
// level until ctx is cancelled. It never returns an error; sampling failures
// are logged at Warn and skipped for that tick.
func Run(ctx context.Context, interval time.Duration, log hclog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sampleOnce(ctx, log)
		}
	}
}

func sampleOnce(ctx context.Context, log hclog.Logger) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		log.Warn("load sampler: cpu sample failed", "err", err)
		return
	}
	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Warn("load sampler: memory sample failed", "err", err)
		return
	}

	log.Info("load sample", "cpu_percent", cpuPercent, "mem_percent", vm.UsedPercent)
}
