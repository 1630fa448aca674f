// Package client streams documents to a raw (port 9100) spooler the way a
// printing host does: connect, write, close.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const defaultChunkSize = 32 * 1024

type Options struct {
	// ChunkSize is the size of each write. Zero means 32 KiB.
	ChunkSize int
	// Pause is slept between two writes, to spread a job over time.
	Pause time.Duration
	// Reset ends the job with a TCP reset instead of an orderly close.
	Reset bool
}

type Result struct {
	Bytes    int64
	Duration time.Duration
}

// Send writes everything read from r to addr. With an orderly close it
// half-closes the connection and waits for the spooler to close its side,
// so the job is finished on the server when Send returns.
func Send(ctx context.Context, addr string, r io.Reader, opts Options) (Result, error) {
	start := time.Now()
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Result{}, fmt.Errorf("dial %s: %w", addr, err)
	}
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return Result{}, fmt.Errorf("dial %s: not a TCP connection", addr)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = tcp.SetDeadline(deadline)
	}

	sent, err := stream(ctx, tcp, r, opts)
	result := Result{Bytes: sent}
	if err != nil {
		_ = tcp.Close()
		result.Duration = time.Since(start)
		return result, err
	}

	if opts.Reset {
		if err := tcp.SetLinger(0); err != nil {
			_ = tcp.Close()
			return result, err
		}
		err = tcp.Close()
		result.Duration = time.Since(start)
		return result, err
	}

	if err := tcp.CloseWrite(); err != nil {
		_ = tcp.Close()
		return result, err
	}
	// The spooler never answers; EOF means it closed the job.
	_, err = io.Copy(io.Discard, tcp)
	closeErr := tcp.Close()
	result.Duration = time.Since(start)
	return result, errors.Join(err, closeErr)
}

func stream(ctx context.Context, w io.Writer, r io.Reader, opts Options) (int64, error) {
	size := opts.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	buf := make([]byte, size)
	var sent int64
	for {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			written, err := w.Write(buf[:n])
			sent += int64(written)
			if err != nil {
				return sent, err
			}
			if opts.Pause > 0 {
				select {
				case <-ctx.Done():
					return sent, ctx.Err()
				case <-time.After(opts.Pause):
				}
			}
		}
		if errors.Is(readErr, io.EOF) {
			return sent, nil
		}
		if readErr != nil {
			return sent, readErr
		}
	}
}
