// Package runtime assembles the spooler: the listener and its handlers, the
// control state, the supervised background workers and the control server.
// It owns lifecycles, not business rules.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"miniraw/infrastructure/storage"
	"miniraw/internal"
	"miniraw/observability"
	"miniraw/runtime/spool"
	"miniraw/runtime/workers"
	"miniraw/services"
	"net"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

type Engine struct {
	log           *slog.Logger
	config        internal.Config
	Control       *services.ControlState
	Stats         *observability.SpoolStats
	Jobs          storage.IJobRepository
	listener      *spool.Listener
	supervisor    *workers.Supervisor
	controlServer *internal.ControlServer
	controlLn     net.Listener
	stopWorkers   context.CancelFunc
	supervisorEnd chan struct{}
}

// NewEngine wires every component without starting anything.
// The badger db holds the persisted settings and the job journal.
func NewEngine(log *slog.Logger, config internal.Config, db *badger.DB) *Engine {
	stats := observability.NewSpoolStats()
	jobs := storage.NewJobRepository(db, log)
	control := services.NewControlState(log, storage.NewSettingsRepository(db))

	journal := workers.NewJobJournalWorker(log, jobs, stats, config.JournalBufferSize)
	handler := spool.NewConnectionHandler(
		log, control, spool.NewFileNamer(config.FileExtension), journal,
		config.OutputDir, config.ChunkSize(),
	)
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(journal, workers.NewStatsReporterWorker(log, stats, config.StatsInterval))

	e := &Engine{
		log:           log,
		config:        config,
		Control:       control,
		Stats:         stats,
		Jobs:          jobs,
		listener:      spool.NewListener(log, config.Address(), control, handler, stats),
		supervisor:    supervisor,
		supervisorEnd: make(chan struct{}),
	}
	if config.DebugPort > 0 {
		e.controlServer = internal.NewControlServer(log, control, jobs, stats)
	}
	return e
}

// Start applies the DISCARD override, starts the background workers, binds
// the spool port and the optional control port. Nothing is left running
// when it returns an error.
func (e *Engine) Start(ctx context.Context) error {
	if e.config.Discard != nil {
		e.Control.SetDiscard(*e.config.Discard)
	}
	e.log.Info("Discard received files", "enabled", e.Control.IsDiscardEnabled())

	if err := e.listener.Start(); err != nil {
		return err
	}

	if e.controlServer != nil {
		address := net.JoinHostPort(e.config.Host, strconv.Itoa(e.config.DebugPort))
		ln, err := net.Listen("tcp", address)
		if err != nil {
			_ = e.listener.Stop()
			e.Control.SetListening(false)
			return fmt.Errorf("control server: %w", err)
		}
		e.controlLn = ln
		go func() {
			if err := e.controlServer.Serve(ln); err != nil {
				e.log.Error("Control server stopped", "error", err)
			}
		}()
	}

	workersCtx, cancel := context.WithCancel(ctx)
	e.stopWorkers = cancel
	go func() {
		defer close(e.supervisorEnd)
		e.supervisor.Run(workersCtx)
	}()
	return nil
}

// Serve blocks on the accept loop. It returns nil once Shutdown has been
// called and ErrListenerDown if the spool socket died.
func (e *Engine) Serve() error {
	return e.listener.Serve()
}

func (e *Engine) Addr() net.Addr {
	return e.listener.Addr()
}

func (e *Engine) ControlAddr() net.Addr {
	if e.controlLn == nil {
		return nil
	}
	return e.controlLn.Addr()
}

// Shutdown stops accepting jobs and waits for the in-flight ones until ctx
// expires. Jobs still running at that point keep what they wrote so far.
// The journal is flushed last so every finished job is recorded.
func (e *Engine) Shutdown(ctx context.Context) error {
	err := e.listener.Stop()

	drained := make(chan struct{})
	go func() {
		e.listener.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		e.log.Debug("All in-flight jobs finished")
	case <-ctx.Done():
		e.log.Warn("Shutdown deadline reached with jobs still in progress", "active", e.Stats.Snapshot().ActiveJobs)
	}

	if e.controlServer != nil && e.controlLn != nil {
		if shutdownErr := e.controlServer.Shutdown(ctx); shutdownErr != nil {
			e.log.Debug("Control server shutdown interrupted", "error", shutdownErr)
		}
	}

	if e.stopWorkers == nil {
		return err
	}
	e.stopWorkers()
	select {
	case <-e.supervisorEnd:
	case <-ctx.Done():
	}
	return err
}
