package spool

import (
	"errors"
	"fmt"
	"log/slog"
	"miniraw/contract"
	errs "miniraw/errors"
	"miniraw/observability"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = 1 * time.Second
)

// Listener owns the server socket and the accept loop. Every accepted
// connection is handed to its own goroutine, so a slow job never delays the
// next accept.
type Listener struct {
	log      *slog.Logger
	address  string
	control  contract.IControlState
	handler  contract.ConnectionHandler
	stats    *observability.SpoolStats
	mu       sync.Mutex
	ln       net.Listener
	serving  bool
	served   chan struct{}
	stopped  atomic.Bool
	inFlight sync.WaitGroup
}

func NewListener(
	log *slog.Logger,
	address string,
	control contract.IControlState,
	handler contract.ConnectionHandler,
	stats *observability.SpoolStats,
) *Listener {
	return &Listener{
		log:     log,
		address: address,
		control: control,
		handler: handler,
		stats:   stats,
	}
}

// Start binds the listening socket. A bind failure is returned wrapped in
// ErrBind and never retried.
func (l *Listener) Start() error {
	ln, err := net.Listen("tcp", l.address)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrBind, l.address, err)
	}
	l.mu.Lock()
	l.ln = ln
	l.serving = false
	l.served = make(chan struct{})
	l.stopped.Store(false)
	l.mu.Unlock()
	l.control.SetListening(true)
	l.log.Info("Started listener", "address", ln.Addr().String())
	return nil
}

// Addr returns the bound address, nil before Start.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Serve runs the accept loop until Stop is called (nil) or the listening
// socket becomes unusable (ErrListenerDown). Transient accept failures are
// logged and retried with a bounded back-off.
func (l *Listener) Serve() error {
	l.mu.Lock()
	if l.served == nil {
		l.served = make(chan struct{})
	}
	ln, served := l.ln, l.served
	if ln == nil {
		l.mu.Unlock()
		return fmt.Errorf("%w: listener not started", errs.ErrListenerDown)
	}
	if l.stopped.Load() {
		l.mu.Unlock()
		l.control.SetListening(false)
		return nil
	}
	l.serving = true
	l.mu.Unlock()
	defer close(served)
	defer l.control.SetListening(false)

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if l.stopped.Load() {
				l.log.Info("Listener stopped", "address", l.address)
				return nil
			}
			if isTransient(err) {
				delay = nextDelay(delay)
				l.log.Warn("Accept failed, retrying", "error", err, "retry_in", delay)
				time.Sleep(delay)
				continue
			}
			l.log.Error("Listener down, no longer accepting jobs", "address", l.address, "error", err)
			return fmt.Errorf("%w: %v", errs.ErrListenerDown, err)
		}
		delay = 0
		l.dispatch(conn)
	}
}

func (l *Listener) dispatch(conn net.Conn) {
	l.inFlight.Add(1)
	l.stats.JobStarted()
	go func() {
		defer l.inFlight.Done()
		defer l.stats.JobEnded()
		defer func() {
			if r := recover(); r != nil {
				_ = conn.Close()
				l.log.Error("Connection handler panicked", "remote", conn.RemoteAddr().String(),
					"error", fmt.Errorf("%w: %v", errs.ErrWorkerPanic, r))
			}
		}()
		l.handler.Handle(conn)
	}()
}

// Stop closes the listening socket. In-flight jobs keep running until their
// peer ends them; use Wait to block until they are done. Start binds again
// after a Stop.
func (l *Listener) Stop() error {
	l.stopped.Store(true)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return nil
	}
	if err := l.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Wait blocks until the accept loop has returned and every dispatched job
// is done. A connection accepted while Stop was closing the socket is still
// dispatched and waited for.
func (l *Listener) Wait() {
	l.mu.Lock()
	serving, served := l.serving, l.served
	l.mu.Unlock()
	if serving {
		<-served
	}
	l.inFlight.Wait()
}

func isTransient(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE) ||
		errors.Is(err, syscall.ENOBUFS) ||
		errors.Is(err, syscall.ENOMEM) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNRESET)
}

func nextDelay(delay time.Duration) time.Duration {
	if delay == 0 {
		return minAcceptDelay
	}
	delay *= 2
	if delay > maxAcceptDelay {
		return maxAcceptDelay
	}
	return delay
}
