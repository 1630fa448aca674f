package workers

import (
	"context"
	"log/slog"
	"miniraw/observability"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// StatsReporterWorker periodically logs the spool counters together with
// the resource usage of the process.
type StatsReporterWorker struct {
	log      *slog.Logger
	stats    *observability.SpoolStats
	interval time.Duration
	sample   func() (processSample, error)
}

type processSample struct {
	RSS uint64
	CPU float64
}

func NewStatsReporterWorker(log *slog.Logger, stats *observability.SpoolStats, interval time.Duration) *StatsReporterWorker {
	return &StatsReporterWorker{
		log:      log,
		stats:    stats,
		interval: interval,
		sample:   sampleSelf,
	}
}

func (w *StatsReporterWorker) Run(ctx context.Context) error {
	if w.interval <= 0 {
		w.log.Debug("Stats reporter disabled")
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *StatsReporterWorker) report() {
	snap := w.stats.Snapshot()
	attrs := []any{
		"active", snap.ActiveJobs,
		"finished", snap.Finished(),
		"clean", snap.Clean,
		"truncated", snap.Truncated,
		"failed", snap.Failed,
		"discarded", snap.Discarded,
		"bytes_written", snap.BytesWritten,
		"bytes_discarded", snap.BytesDiscarded,
	}
	if snap.JournalDropped > 0 {
		attrs = append(attrs, "journal_dropped", snap.JournalDropped)
	}
	if s, err := w.sample(); err != nil {
		w.log.Debug("Unable to sample process usage", "error", err)
	} else {
		attrs = append(attrs, "rss_bytes", s.RSS, "cpu_percent", s.CPU)
	}
	w.log.Info("Spool stats", attrs...)
}

func sampleSelf() (processSample, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return processSample{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return processSample{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return processSample{}, err
	}
	return processSample{RSS: mem.RSS, CPU: cpu}, nil
}
