//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"miniraw/domain"
	"net"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IControlState is the discard toggle shared by the operator and every
// connection handler. Reads must reflect the latest write.
type IControlState interface {
	SetDiscard(enabled bool)
	IsDiscardEnabled() bool
	SetListening(listening bool)
	IsListening() bool
}

// ConnectionHandler takes full ownership of an accepted connection and
// returns the job once it reached a terminal status.
type ConnectionHandler interface {
	Handle(conn net.Conn) domain.Job
}

type PathNamer interface {
	NextPath(baseDir string) (string, error)
}

// JobSink receives every job once it reached a terminal status.
// Publish must never block the caller.
type JobSink interface {
	Publish(job domain.Job)
}
