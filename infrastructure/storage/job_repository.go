//go:generate go run go.uber.org/mock/mockgen -source=job_repository.go -destination=../../mocks/mock_job_repository.go -package=mocks
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"miniraw/domain"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const jobPrefix = "job:"

// JobRecord is the journal entry persisted for every finished job.
type JobRecord struct {
	ID             uuid.UUID        `json:"id"`
	RemoteAddr     string           `json:"remote_addr"`
	Path           string           `json:"path,omitempty"`
	BytesWritten   uint64           `json:"bytes_written"`
	BytesDiscarded uint64           `json:"bytes_discarded"`
	Status         domain.JobStatus `json:"status"`
	ContentType    string           `json:"content_type,omitempty"`
	Error          string           `json:"error,omitempty"`
	AcceptedAt     time.Time        `json:"accepted_at"`
	FinishedAt     time.Time        `json:"finished_at"`
}

type IJobRepository interface {
	StoreJob(job domain.Job) error
	GetJobs(limit int) ([]JobRecord, error)
	FindJobs(status domain.JobStatus, limit int) ([]JobRecord, error)
}

type JobRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewJobRepository(db *badger.DB, log *slog.Logger) *JobRepository {
	return &JobRepository{db: db, log: log}
}

// StoreJob persists a finished job under "job:{finished_at_padded}:{uuid}".
// The 19-digit zero padding keeps keys in chronological order and the uuid
// separates two jobs finishing within the same nanosecond.
func (r JobRepository) StoreJob(job domain.Job) error {
	key := JobKey(job.FinishedAt, job.ID)
	data, err := json.Marshal(ToJobRecord(job))
	if err != nil {
		return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// GetJobs returns up to limit journal entries, newest first.
// A limit <= 0 returns the whole journal.
func (r JobRepository) GetJobs(limit int) ([]JobRecord, error) {
	return r.FindJobs("", limit)
}

// FindJobs returns up to limit entries with the given status, newest first.
// The limit counts matching entries only. An empty status matches every job.
func (r JobRepository) FindJobs(status domain.JobStatus, limit int) ([]JobRecord, error) {
	var records []JobRecord
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(jobPrefix)
		// Reverse iteration starts after the greatest possible timestamp
		seekKey := append([]byte(jobPrefix), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d jobs reached", limit))
				break
			}
			err := it.Item().Value(func(v []byte) error {
				var record JobRecord
				if err := json.Unmarshal(v, &record); err != nil {
					return fmt.Errorf("failed to unmarshal job: %w", err)
				}
				if status != "" && record.Status != status {
					return nil
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during journal scan: %w", err)
	}
	return records, nil
}

func JobKey(finishedAt time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%s%019d:%s", jobPrefix, finishedAt.UnixNano(), id)
}

func ToJobRecord(job domain.Job) JobRecord {
	record := JobRecord{
		ID:             job.ID,
		RemoteAddr:     job.RemoteAddr,
		Path:           job.Path,
		BytesWritten:   job.BytesWritten,
		BytesDiscarded: job.BytesDiscarded,
		Status:         job.Status,
		ContentType:    job.ContentType,
		AcceptedAt:     job.AcceptedAt.UTC(),
		FinishedAt:     job.FinishedAt.UTC(),
	}
	if job.Err != nil {
		record.Error = job.Err.Error()
	}
	return record
}
