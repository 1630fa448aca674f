package observability

import (
	"miniraw/domain"
	"sync/atomic"
)

// StatsSnapshot is a point-in-time copy of the spool counters.
type StatsSnapshot struct {
	ActiveJobs     int64  `json:"active_jobs"`
	Clean          uint64 `json:"clean"`
	Truncated      uint64 `json:"truncated"`
	Failed         uint64 `json:"failed"`
	Discarded      uint64 `json:"discarded"`
	BytesWritten   uint64 `json:"bytes_written"`
	BytesDiscarded uint64 `json:"bytes_discarded"`
	JournalDropped uint64 `json:"journal_dropped"`
}

func (s StatsSnapshot) Finished() uint64 {
	return s.Clean + s.Truncated + s.Failed + s.Discarded
}

// SpoolStats aggregates job outcomes. All methods are safe for concurrent use.
type SpoolStats struct {
	active         atomic.Int64
	clean          atomic.Uint64
	truncated      atomic.Uint64
	failed         atomic.Uint64
	discarded      atomic.Uint64
	bytesWritten   atomic.Uint64
	bytesDiscarded atomic.Uint64
	journalDropped atomic.Uint64
}

func NewSpoolStats() *SpoolStats {
	return &SpoolStats{}
}

func (s *SpoolStats) JobStarted() {
	s.active.Add(1)
}

func (s *SpoolStats) JobEnded() {
	s.active.Add(-1)
}

func (s *SpoolStats) IncrJournalDropped() {
	s.journalDropped.Add(1)
}

// Record accounts a job that reached a terminal status.
func (s *SpoolStats) Record(job domain.Job) {
	switch job.Status {
	case domain.JobCompletedClean:
		s.clean.Add(1)
	case domain.JobCompletedTruncated:
		s.truncated.Add(1)
	case domain.JobFailed:
		s.failed.Add(1)
	case domain.JobDiscarded:
		s.discarded.Add(1)
	}
	s.bytesWritten.Add(job.BytesWritten)
	s.bytesDiscarded.Add(job.BytesDiscarded)
}

func (s *SpoolStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		ActiveJobs:     s.active.Load(),
		Clean:          s.clean.Load(),
		Truncated:      s.truncated.Load(),
		Failed:         s.failed.Load(),
		Discarded:      s.discarded.Load(),
		BytesWritten:   s.bytesWritten.Load(),
		BytesDiscarded: s.bytesDiscarded.Load(),
		JournalDropped: s.journalDropped.Load(),
	}
}
