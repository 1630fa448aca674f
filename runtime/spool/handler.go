package spool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"miniraw/contract"
	"miniraw/domain"
	"miniraw/domain/mimetypes"
	errs "miniraw/errors"
	"net"
	"os"
	"sync"
	"time"
)

var _ contract.ConnectionHandler = (*ConnectionHandler)(nil)

// maxCreateAttempts bounds retries when a reserved name was taken on disk
// between NextPath and the exclusive create.
const maxCreateAttempts = 5

// spoolFile is the destination of one job.
type spoolFile interface {
	io.Writer
	Stat() (fs.FileInfo, error)
	Sync() error
	Close() error
}

// ConnectionHandler turns one connection's byte stream into one file.
//
// An abrupt disconnect is treated like a clean close as far as data is
// concerned: every byte read before the failure stays in the finalized file,
// only the reported status differs.
type ConnectionHandler struct {
	log        *slog.Logger
	control    contract.IControlState
	namer      contract.PathNamer
	sink       contract.JobSink
	outputDir  string
	bufferPool *sync.Pool
	now        func() time.Time
	openFile   func(path string) (spoolFile, error)
}

func NewConnectionHandler(
	log *slog.Logger,
	control contract.IControlState,
	namer contract.PathNamer,
	sink contract.JobSink,
	outputDir string,
	chunkSize int,
) *ConnectionHandler {
	return &ConnectionHandler{
		log:       log,
		control:   control,
		namer:     namer,
		sink:      sink,
		outputDir: outputDir,
		now:       time.Now,
		openFile:  createExclusive,
		bufferPool: &sync.Pool{
			New: func() any {
				b := make([]byte, chunkSize)
				return &b
			},
		},
	}
}

// Handle owns conn until it returns and always closes it.
// It never panics on I/O failures; every outcome is reported through the
// returned job, one log line and the sink.
func (h *ConnectionHandler) Handle(conn net.Conn) domain.Job {
	defer conn.Close()

	job := domain.NewJob(conn.RemoteAddr().String(), h.now())
	h.log.Debug("Incoming connection", "job_id", job.ID, "remote", job.RemoteAddr)

	bufPtr := h.bufferPool.Get().(*[]byte)
	defer h.bufferPool.Put(bufPtr)
	buf := *bufPtr

	var file spoolFile
	for !job.Status.Terminal() {
		n, readErr := conn.Read(buf)
		if n > 0 {
			if err := h.consume(&job, &file, buf[:n]); err != nil {
				job.Status = domain.JobFailed
				job.Err = err
				break
			}
		}
		if readErr != nil {
			h.resolveEnd(&job, file != nil, readErr)
		}
	}

	if file != nil {
		h.finalize(&job, file)
	}
	job.FinishedAt = h.now()
	h.report(job)
	if h.sink != nil {
		h.sink.Publish(job)
	}
	return job
}

// consume writes or drops one chunk depending on the discard flag at the
// moment the chunk was received.
func (h *ConnectionHandler) consume(job *domain.Job, file *spoolFile, chunk []byte) error {
	if h.control.IsDiscardEnabled() {
		job.BytesDiscarded += uint64(len(chunk))
		return nil
	}
	if *file == nil {
		f, err := h.create(job, chunk)
		if err != nil {
			return err
		}
		*file = f
	}
	written, err := (*file).Write(chunk)
	job.BytesWritten += uint64(written)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrWriteFailed, job.Path, err)
	}
	return nil
}

// create reserves a name and opens it exclusively, so no two jobs can ever
// share a destination file.
func (h *ConnectionHandler) create(job *domain.Job, firstChunk []byte) (spoolFile, error) {
	var lastErr error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		path, err := h.namer.NextPath(h.outputDir)
		if err != nil {
			return nil, err
		}
		f, err := h.openFile(path)
		if errors.Is(err, fs.ErrExist) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrDirectoryUnwritable, path, err)
		}
		job.Path = path
		job.ContentType = string(mimetypes.Detect(firstChunk))
		return f, nil
	}
	return nil, fmt.Errorf("%w: no free name after %d attempts: %v", errs.ErrDirectoryUnwritable, maxCreateAttempts, lastErr)
}

// resolveEnd maps the way the peer ended the stream to a terminal status.
func (h *ConnectionHandler) resolveEnd(job *domain.Job, hasFile bool, readErr error) {
	orderly := errors.Is(readErr, io.EOF)
	switch {
	case hasFile && orderly:
		job.Status = domain.JobCompletedClean
	case hasFile:
		job.Status = domain.JobCompletedTruncated
		job.Err = readErr
	case job.BytesDiscarded > 0:
		job.Status = domain.JobDiscarded
		if !orderly {
			job.Err = readErr
		}
	case orderly:
		// Empty connection, nothing to keep.
		job.Status = domain.JobCompletedClean
	default:
		job.Status = domain.JobFailed
		job.Err = readErr
	}
}

// finalize flushes and closes the destination file. The file is never
// removed, whatever the job status. A job whose file was unlinked while it
// was written fails, since nothing remains at its path.
func (h *ConnectionHandler) finalize(job *domain.Job, file spoolFile) {
	written, statErr := file.Stat()
	syncErr := file.Sync()
	closeErr := file.Close()
	if job.Status == domain.JobFailed {
		return
	}
	if err := errors.Join(syncErr, closeErr); err != nil {
		job.Status = domain.JobFailed
		job.Err = fmt.Errorf("%w: %s: %v", errs.ErrWriteFailed, job.Path, err)
		return
	}
	onDisk, err := os.Stat(job.Path)
	if statErr == nil && err == nil && os.SameFile(written, onDisk) {
		return
	}
	job.Status = domain.JobFailed
	job.Err = fmt.Errorf("%w: %s: file no longer in output directory", errs.ErrWriteFailed, job.Path)
}

func createExclusive(path string) (spoolFile, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

func (h *ConnectionHandler) report(job domain.Job) {
	level := slog.LevelInfo
	msg := "Job saved"
	switch job.Status {
	case domain.JobCompletedClean:
		if !job.HasArtifact() {
			msg = "Empty connection, nothing saved"
		}
	case domain.JobCompletedTruncated:
		level = slog.LevelWarn
		msg = "Job truncated by peer, received data kept"
	case domain.JobDiscarded:
		msg = "Job discarded"
	case domain.JobFailed:
		level = slog.LevelError
		msg = "Job failed"
	}

	attrs := []any{
		"job_id", job.ID,
		"remote", job.RemoteAddr,
		"path", job.Destination(),
		"bytes", job.BytesWritten,
		"status", job.Status,
		"duration", job.Duration(),
	}
	if job.BytesDiscarded > 0 {
		attrs = append(attrs, "discarded_bytes", job.BytesDiscarded)
	}
	if job.ContentType != "" {
		attrs = append(attrs, "content_type", job.ContentType)
	}
	if job.Err != nil {
		attrs = append(attrs, "error", job.Err)
	}
	h.log.Log(context.Background(), level, msg, attrs...)
}
