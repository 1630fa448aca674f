package workers

import (
	"context"
	"log/slog"
	"miniraw/contract"
	"miniraw/domain"
	"miniraw/infrastructure/storage"
	"miniraw/observability"
)

var (
	_ contract.JobSink = (*JobJournalWorker)(nil)
	_ contract.Worker  = (*JobJournalWorker)(nil)
)

// JobJournalWorker records finished jobs in the badger journal.
// Handlers publish without ever blocking: when the buffer is full the entry
// is dropped and counted, the spooled file itself is unaffected.
type JobJournalWorker struct {
	log   *slog.Logger
	repo  storage.IJobRepository
	stats *observability.SpoolStats
	jobs  chan domain.Job
}

func NewJobJournalWorker(
	log *slog.Logger,
	repo storage.IJobRepository,
	stats *observability.SpoolStats,
	bufferSize int,
) *JobJournalWorker {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &JobJournalWorker{
		log:   log,
		repo:  repo,
		stats: stats,
		jobs:  make(chan domain.Job, bufferSize),
	}
}

// Publish accounts the job and hands it to Run.
func (w *JobJournalWorker) Publish(job domain.Job) {
	w.stats.Record(job)
	select {
	case w.jobs <- job:
	default:
		w.stats.IncrJournalDropped()
		w.log.Debug("Journal buffer full, entry dropped", "job_id", job.ID)
	}
}

// Run persists published jobs until ctx is canceled, then flushes what is
// still buffered. A failing write is logged and skipped.
func (w *JobJournalWorker) Run(ctx context.Context) error {
	w.log.Debug("Starting job journal worker")
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case job := <-w.jobs:
			w.store(job)
		}
	}
}

func (w *JobJournalWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.store(job)
		default:
			return
		}
	}
}

func (w *JobJournalWorker) store(job domain.Job) {
	if err := w.repo.StoreJob(job); err != nil {
		w.log.Warn("Unable to journal job", "job_id", job.ID, "error", err)
	}
}
