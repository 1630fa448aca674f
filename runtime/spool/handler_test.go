package spool

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"miniraw/domain"
	errs "miniraw/errors"
	"miniraw/mocks"
	"miniraw/services"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T, outputDir string) (*ConnectionHandler, *services.ControlState) {
	t.Helper()
	control := services.NewControlState(discardLogger(), nil)
	handler := NewConnectionHandler(discardLogger(), control, NewFileNamer(".prn"), nil, outputDir, 4*domain.KB)
	return handler, control
}

func spooledFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "job-*.prn"))
	require.NoError(t, err)
	return matches
}

func TestConnectionHandler_CleanCloseRoundTrip(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, _ := newTestHandler(t, dir)

	// Given a peer sending a PostScript document in three chunks then closing
	payload := [][]byte{[]byte("%!PS-Adobe-3.0\n"), []byte("newpath 0 0 moveto\n"), []byte("showpage\n")}
	conn := newScriptedConn(step{data: payload[0]}, step{data: payload[1]}, step{data: payload[2]}, step{err: nil})

	// When the handler drains the connection
	job := handler.Handle(conn)

	// Then the file holds exactly the bytes sent
	req.Equal(domain.JobCompletedClean, job.Status)
	req.NoError(job.Err)
	req.True(job.HasArtifact())
	content, err := os.ReadFile(job.Path)
	req.NoError(err)
	req.Equal(bytes.Join(payload, nil), content)
	req.Equal(uint64(len(content)), job.BytesWritten)
	req.Equal("application/postscript", job.ContentType)
	req.True(conn.isClosed())
	req.False(job.FinishedAt.Before(job.AcceptedAt))
}

func TestConnectionHandler_AbruptResetKeepsDeliveredPrefix(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, _ := newTestHandler(t, dir)

	// Given a peer resetting the connection after two chunks,
	// the second one arriving together with the reset
	first := bytes.Repeat([]byte{0x1B, 'E'}, 1000)
	second := []byte("partial page")
	conn := newScriptedConn(
		step{data: first},
		step{data: second, err: fmt.Errorf("read tcp: %w", syscall.ECONNRESET)},
	)

	// When the handler drains it
	job := handler.Handle(conn)

	// Then every byte delivered before the reset survives
	req.Equal(domain.JobCompletedTruncated, job.Status)
	req.ErrorIs(job.Err, syscall.ECONNRESET)
	content, err := os.ReadFile(job.Path)
	req.NoError(err)
	req.Equal(append(append([]byte{}, first...), second...), content)
	req.Equal(uint64(len(first)+len(second)), job.BytesWritten)
}

func TestConnectionHandler_DiscardWholeJobLeavesNoFile(t *testing.T) {
	for name, end := range map[string]error{
		"clean close": nil,
		"reset":       syscall.ECONNRESET,
	} {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			dir := t.TempDir()
			handler, control := newTestHandler(t, dir)
			control.SetDiscard(true)

			conn := newScriptedConn(
				step{data: bytes.Repeat([]byte("x"), 3000)},
				step{data: []byte("tail"), err: end},
			)

			job := handler.Handle(conn)

			req.Equal(domain.JobDiscarded, job.Status)
			req.False(job.HasArtifact())
			req.Equal("discarded", job.Destination())
			req.Zero(job.BytesWritten)
			req.Equal(uint64(3004), job.BytesDiscarded)
			req.Empty(spooledFiles(t, dir))
		})
	}
}

func TestConnectionHandler_ToggleMidStream(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, control := newTestHandler(t, dir)

	// Given the operator flips discard on after the first chunk
	// and off again after the second one
	conn := newScriptedConn(
		step{data: []byte("AAAA")},
		step{data: []byte("BBBB"), before: func() { control.SetDiscard(true) }},
		step{data: []byte("CCCC"), before: func() { control.SetDiscard(false) }},
		step{data: []byte("DDDD")},
	)

	job := handler.Handle(conn)

	// Then the dropped chunk is absent and the others are kept in order,
	// in one single file
	req.Equal(domain.JobCompletedClean, job.Status)
	req.Equal(uint64(12), job.BytesWritten)
	req.Equal(uint64(4), job.BytesDiscarded)
	content, err := os.ReadFile(job.Path)
	req.NoError(err)
	req.Equal("AAAACCCCDDDD", string(content))
	req.Len(spooledFiles(t, dir), 1)
}

func TestConnectionHandler_DiscardThenWriteCreatesFileLazily(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, control := newTestHandler(t, dir)
	control.SetDiscard(true)

	conn := newScriptedConn(
		step{data: []byte("dropped")},
		step{data: []byte("kept"), before: func() { control.SetDiscard(false) }},
	)

	job := handler.Handle(conn)

	req.Equal(domain.JobCompletedClean, job.Status)
	content, err := os.ReadFile(job.Path)
	req.NoError(err)
	req.Equal("kept", string(content))
	req.Equal(uint64(7), job.BytesDiscarded)
}

func TestConnectionHandler_EmptyConnectionLeavesNoFile(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, _ := newTestHandler(t, dir)

	job := handler.Handle(newScriptedConn())

	req.Equal(domain.JobCompletedClean, job.Status)
	req.False(job.HasArtifact())
	req.Zero(job.BytesWritten)
	req.Empty(spooledFiles(t, dir))
}

func TestConnectionHandler_ErrorBeforeAnyByteFails(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, _ := newTestHandler(t, dir)

	job := handler.Handle(newScriptedConn(step{err: syscall.ECONNRESET}))

	req.Equal(domain.JobFailed, job.Status)
	req.ErrorIs(job.Err, syscall.ECONNRESET)
	req.False(job.HasArtifact())
	req.Empty(spooledFiles(t, dir))
}

func TestConnectionHandler_UnwritableDirectoryFailsOnlyTheJob(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	namer := mocks.NewMockPathNamer(ctrl)
	sink := mocks.NewMockJobSink(ctrl)
	control := services.NewControlState(discardLogger(), nil)
	handler := NewConnectionHandler(discardLogger(), control, namer, sink, "/nowhere", 1024)

	// Given the output directory cannot be created
	namer.EXPECT().NextPath("/nowhere").
		Return("", fmt.Errorf("%w: /nowhere: permission denied", errs.ErrDirectoryUnwritable)).
		Times(1)
	// Then the failed job is still published once
	sink.EXPECT().Publish(gomock.Any()).Do(func(job domain.Job) {
		req.Equal(domain.JobFailed, job.Status)
	}).Times(1)

	conn := newScriptedConn(step{data: []byte("data")}, step{data: []byte("more")})
	job := handler.Handle(conn)

	req.ErrorIs(job.Err, errs.ErrDirectoryUnwritable)
	req.True(conn.isClosed())
}

// failingFile accepts limit bytes then reports a full disk.
type failingFile struct {
	bytes.Buffer
	limit  int
	closed bool
}

func (f *failingFile) Write(p []byte) (int, error) {
	room := f.limit - f.Len()
	if room >= len(p) {
		return f.Buffer.Write(p)
	}
	n, _ := f.Buffer.Write(p[:room])
	return n, syscall.ENOSPC
}

func (f *failingFile) Stat() (fs.FileInfo, error) { return nil, fs.ErrInvalid }
func (f *failingFile) Sync() error                { return nil }
func (f *failingFile) Close() error               { f.closed = true; return nil }

func TestConnectionHandler_WriteFailureKeepsPartialFile(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	handler, _ := newTestHandler(t, dir)
	file := &failingFile{limit: 6}
	handler.openFile = func(path string) (spoolFile, error) { return file, nil }

	conn := newScriptedConn(step{data: []byte("abcd")}, step{data: []byte("efgh")}, step{data: []byte("never read")})

	job := handler.Handle(conn)

	req.Equal(domain.JobFailed, job.Status)
	req.ErrorIs(job.Err, errs.ErrWriteFailed)
	req.Equal(uint64(6), job.BytesWritten)
	req.Equal("abcdef", file.String())
	req.True(file.closed)
	req.True(conn.isClosed())
	req.True(job.HasArtifact())
}

func TestConnectionHandler_RetriesWhenNameIsTaken(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	taken := filepath.Join(dir, "job-taken.prn")
	req.NoError(os.WriteFile(taken, []byte("previous job"), 0o644))
	free := filepath.Join(dir, "job-free.prn")

	namer := mocks.NewMockPathNamer(ctrl)
	gomock.InOrder(
		namer.EXPECT().NextPath(dir).Return(taken, nil),
		namer.EXPECT().NextPath(dir).Return(free, nil),
	)
	control := services.NewControlState(discardLogger(), nil)
	handler := NewConnectionHandler(discardLogger(), control, namer, nil, dir, 1024)

	job := handler.Handle(newScriptedConn(step{data: []byte("new job")}))

	req.Equal(free, job.Path)
	previous, err := os.ReadFile(taken)
	req.NoError(err)
	req.Equal("previous job", string(previous))
}

func TestConnectionHandler_DirectoryRemovedMidJobFails(t *testing.T) {
	req := require.New(t)
	dir := filepath.Join(t.TempDir(), "spool")
	req.NoError(os.Mkdir(dir, 0o755))
	handler, _ := newTestHandler(t, dir)

	// Given the output directory removed between two chunks of the same job
	conn := newScriptedConn(
		step{data: []byte("first half;")},
		step{data: []byte("second half"), before: func() { _ = os.RemoveAll(dir) }},
	)

	// When the peer closes cleanly
	job := handler.Handle(conn)

	// Then the job does not claim a file that is gone
	req.Equal(domain.JobFailed, job.Status)
	req.ErrorIs(job.Err, errs.ErrWriteFailed)
	req.True(job.HasArtifact())
	_, err := os.Stat(job.Path)
	req.ErrorIs(err, fs.ErrNotExist)
}

func TestConnectionHandler_OutcomeLineCarriesDuration(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	control := services.NewControlState(discardLogger(), nil)
	handler := NewConnectionHandler(slog.New(slog.NewTextHandler(&out, nil)), control, NewFileNamer(".prn"), nil, t.TempDir(), 4*domain.KB)

	// Given a clock moving 250ms between accept and finish
	start := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(250 * time.Millisecond)}
	handler.now = func() time.Time {
		next := ticks[0]
		if len(ticks) > 1 {
			ticks = ticks[1:]
		}
		return next
	}

	job := handler.Handle(newScriptedConn(step{data: []byte("%!PS\n")}))

	req.Equal(250*time.Millisecond, job.Duration())
	req.Contains(out.String(), "msg=\"Job saved\"")
	req.Contains(out.String(), "duration=250ms")
}
