package observability

import (
	"context"
	"runtime"
	"time"

	"github.com/go-logr/logr"
)

// StartGCMonitor starts a goroutine that periodically samples runtime GC
// stats and records the average pause duration per cycle to
// gc_pause_seconds. It runs for the lifetime of ctx or until the returned
// channel is closed — in a game, that's the lifetime of one Run call, not
// an HTTP server's process lifetime.
func StartGCMonitor(ctx context.Context, interval time.Duration, logger logr.Logger) chan struct{} {
	stopChan := make(chan struct{})

	go func() {
		logger.V(1).Info("gc monitor started", "interval", interval.String())
		defer logger.V(1).Info("gc monitor stopped")

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		lastPauseTotalNs := memStats.PauseTotalNs
		lastNumGC := memStats.NumGC

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopChan:
				return
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)
				currentPauseTotalNs := memStats.PauseTotalNs
				currentNumGC := memStats.NumGC

				if currentNumGC > lastNumGC {
					pauseDeltaNs := currentPauseTotalNs - lastPauseTotalNs
					gcCount := currentNumGC - lastNumGC

					// Average per-cycle pause, in case more than one GC ran
					// between samples.
					if gcCount > 0 && pauseDeltaNs > 0 {
						avgPauseSeconds := float64(pauseDeltaNs/uint64(gcCount)) / 1e9
						if histogram := GetGCPauseHistogram(); histogram != nil {
							histogram.Observe(avgPauseSeconds)
						}
					}

					lastPauseTotalNs = currentPauseTotalNs
					lastNumGC = currentNumGC
				}
			}
		}
	}()

	return stopChan
}
