package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJob_NewJobIsInProgress(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	job := NewJob("10.0.0.2:51234", at)

	req.Equal(JobInProgress, job.Status)
	req.False(job.Status.Terminal())
	req.False(job.HasArtifact())
	req.Equal("discarded", job.Destination())
	req.Zero(job.Duration())
	req.NotEqual(NewJob("10.0.0.2:51234", at).ID, job.ID)
}

func TestJob_TerminalStatuses(t *testing.T) {
	req := require.New(t)
	for _, status := range []JobStatus{JobCompletedClean, JobCompletedTruncated, JobFailed, JobDiscarded} {
		req.True(status.Terminal(), string(status))
	}
}

func TestJob_DestinationAndDuration(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	job := NewJob("peer", at)

	job.Path = "/spool/job-1.prn"
	job.FinishedAt = at.Add(3 * time.Second)

	req.True(job.HasArtifact())
	req.Equal("/spool/job-1.prn", job.Destination())
	req.Equal(3*time.Second, job.Duration())
}
