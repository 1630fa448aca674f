package internal

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"miniraw/domain"
	"miniraw/infrastructure/storage"
	"miniraw/mocks"
	"miniraw/observability"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockIControlState, *mocks.MockIJobRepository, *observability.SpoolStats) {
	t.Helper()
	ctrl := gomock.NewController(t)
	control := mocks.NewMockIControlState(ctrl)
	jobs := mocks.NewMockIJobRepository(ctrl)
	stats := observability.NewSpoolStats()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := httptest.NewServer(NewControlServer(log, control, jobs, stats).Handler())
	t.Cleanup(server.Close)
	return server, control, jobs, stats
}

func sampleRecords() []storage.JobRecord {
	now := time.Now().UTC()
	return []storage.JobRecord{
		{ID: uuid.New(), RemoteAddr: "10.0.0.7:50123", Path: "/spool/job-1.prn", BytesWritten: 512,
			Status: domain.JobCompletedClean, ContentType: "application/postscript",
			AcceptedAt: now.Add(-1500 * time.Millisecond), FinishedAt: now},
		{ID: uuid.New(), RemoteAddr: "10.0.0.8:40000", BytesDiscarded: 64,
			Status: domain.JobDiscarded, FinishedAt: now.Add(-time.Second)},
		{ID: uuid.New(), RemoteAddr: "10.0.0.9:40001", Path: "/spool/job-2.prn", BytesWritten: 10,
			Status: domain.JobCompletedTruncated, Error: "connection reset by peer", FinishedAt: now.Add(-2 * time.Second)},
	}
}

func TestControlServer_GetDiscard(t *testing.T) {
	req := require.New(t)
	server, control, _, _ := newTestServer(t)
	control.EXPECT().IsDiscardEnabled().Return(true)

	resp, err := http.Get(server.URL + "/discard")
	req.NoError(err)
	defer resp.Body.Close()

	req.Equal(http.StatusOK, resp.StatusCode)
	var state discardState
	req.NoError(json.NewDecoder(resp.Body).Decode(&state))
	req.True(state.Enabled)
}

func TestControlServer_PostDiscard(t *testing.T) {
	req := require.New(t)
	server, control, _, _ := newTestServer(t)

	// Then the flag is flipped once and the new state is echoed back
	gomock.InOrder(
		control.EXPECT().SetDiscard(false),
		control.EXPECT().IsDiscardEnabled().Return(false),
	)

	resp, err := http.Post(server.URL+"/discard?enabled=false", "text/plain", nil)
	req.NoError(err)
	defer resp.Body.Close()

	req.Equal(http.StatusOK, resp.StatusCode)
	var state discardState
	req.NoError(json.NewDecoder(resp.Body).Decode(&state))
	req.False(state.Enabled)
}

func TestControlServer_PostDiscardRejectsGarbage(t *testing.T) {
	req := require.New(t)
	server, _, _, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/discard?enabled=maybe", "text/plain", nil)
	req.NoError(err)
	defer resp.Body.Close()

	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestControlServer_Healthz(t *testing.T) {
	req := require.New(t)
	server, control, _, _ := newTestServer(t)
	gomock.InOrder(
		control.EXPECT().IsListening().Return(true),
		control.EXPECT().IsListening().Return(false),
	)

	up, err := http.Get(server.URL + "/healthz")
	req.NoError(err)
	up.Body.Close()
	down, err := http.Get(server.URL + "/healthz")
	req.NoError(err)
	down.Body.Close()

	req.Equal(http.StatusOK, up.StatusCode)
	req.Equal(http.StatusServiceUnavailable, down.StatusCode)
}

func TestControlServer_InspectPage(t *testing.T) {
	req := require.New(t)
	server, control, jobs, stats := newTestServer(t)
	stats.Record(domain.Job{Status: domain.JobCompletedClean, BytesWritten: 512})

	jobs.EXPECT().FindJobs(domain.JobStatus(""), defaultInspectLimit).Return(sampleRecords(), nil)
	control.EXPECT().IsDiscardEnabled().Return(false)

	resp, err := http.Get(server.URL + "/inspect")
	req.NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	req.NoError(err)

	req.Equal(http.StatusOK, resp.StatusCode)
	page := string(body)
	req.Contains(page, "Discard received files: <b>OFF</b>")
	req.Contains(page, "/spool/job-1.prn")
	req.Contains(page, "application/postscript")
	req.Contains(page, "connection reset by peer")
	req.Contains(page, "<td>discarded</td>")
	req.Contains(page, "clean: 1")
	req.Contains(page, "<td>1.5s</td>")
}

func TestControlServer_InspectJSONFilteredByStatus(t *testing.T) {
	req := require.New(t)
	server, _, jobs, _ := newTestServer(t)
	// Given the journal filters before applying the limit
	discarded := sampleRecords()[1]
	jobs.EXPECT().FindJobs(domain.JobDiscarded, 10).Return([]storage.JobRecord{discarded}, nil)

	resp, err := http.Get(server.URL + "/inspect?format=json&limit=10&status=discarded")
	req.NoError(err)
	defer resp.Body.Close()

	var records []storage.JobRecord
	req.NoError(json.NewDecoder(resp.Body).Decode(&records))
	req.Len(records, 1)
	req.Equal(domain.JobDiscarded, records[0].Status)
	req.Equal(discarded.ID, records[0].ID)
}

func TestControlServer_InspectJournalError(t *testing.T) {
	req := require.New(t)
	server, _, jobs, _ := newTestServer(t)
	jobs.EXPECT().FindJobs(gomock.Any(), gomock.Any()).Return(nil, errors.New("db closed"))

	resp, err := http.Get(server.URL + "/inspect")
	req.NoError(err)
	defer resp.Body.Close()

	req.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func TestToInspectRow(t *testing.T) {
	req := require.New(t)
	record := sampleRecords()[1]

	row := ToInspectRow(record)

	req.Equal("discarded", row.Destination)
	req.Equal("-", row.ContentType)
	req.Len(row.JobID, 8)
	req.Equal(uint64(64), row.Discarded)
	req.Equal("-", row.Duration)

	timed := ToInspectRow(sampleRecords()[0])
	req.Equal("1.5s", timed.Duration)
}
