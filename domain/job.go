package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobID = uuid.UUID

type JobStatus string

const (
	JobInProgress         JobStatus = "IN_PROGRESS"
	JobCompletedClean     JobStatus = "COMPLETED_CLEAN"
	JobCompletedTruncated JobStatus = "COMPLETED_TRUNCATED"
	JobFailed             JobStatus = "FAILED"
	JobDiscarded          JobStatus = "DISCARDED"
)

// Terminal reports whether no further transition can happen from this status.
func (s JobStatus) Terminal() bool {
	return s != JobInProgress && s != ""
}

// Job is the in-memory record of one accepted connection.
// Path stays empty when the connection produced no artifact.
type Job struct {
	ID             JobID
	RemoteAddr     string
	Path           string
	BytesWritten   uint64
	BytesDiscarded uint64
	Status         JobStatus
	ContentType    string
	Err            error
	AcceptedAt     time.Time
	FinishedAt     time.Time
}

func NewJob(remoteAddr string, acceptedAt time.Time) Job {
	return Job{
		ID:         uuid.New(),
		RemoteAddr: remoteAddr,
		Status:     JobInProgress,
		AcceptedAt: acceptedAt,
	}
}

// HasArtifact is true once a destination file has been created for the job.
func (j Job) HasArtifact() bool {
	return j.Path != ""
}

// Destination returns the value logged as the job target.
func (j Job) Destination() string {
	if j.Path == "" {
		return "discarded"
	}
	return j.Path
}

func (j Job) Duration() time.Duration {
	if j.FinishedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.AcceptedAt)
}

const KB = 1024
const MB = KB * KB
