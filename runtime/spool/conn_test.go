package spool

import (
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// step is one scripted Read result. before runs right before the read
// returns, which lets a test flip the discard flag between two chunks.
type step struct {
	data   []byte
	err    error
	before func()
}

// scriptedConn is a net.Conn replaying a fixed sequence of reads.
// Reads past the end of the script return io.EOF.
type scriptedConn struct {
	mu     sync.Mutex
	steps  []step
	closed bool
}

func newScriptedConn(steps ...step) *scriptedConn {
	return &scriptedConn{steps: steps}
}

func (c *scriptedConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.steps) == 0 {
		return 0, io.EOF
	}
	s := c.steps[0]
	c.steps = c.steps[1:]
	if s.before != nil {
		s.before()
	}
	n := copy(p, s.data)
	return n, s.err
}

func (c *scriptedConn) Write(p []byte) (int, error) { return len(p), nil }

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *scriptedConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *scriptedConn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9100}
}

func (c *scriptedConn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 50123}
}

func (c *scriptedConn) SetDeadline(time.Time) error      { return nil }
func (c *scriptedConn) SetReadDeadline(time.Time) error  { return nil }
func (c *scriptedConn) SetWriteDeadline(time.Time) error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
