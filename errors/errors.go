package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Listener scope, propagated to the caller.
	ErrBind         = fmt.Errorf("bind error")
	ErrListenerDown = fmt.Errorf("listener down")

	// Job scope, contained in the connection handler.
	ErrDirectoryUnwritable = fmt.Errorf("directory unwritable")
	ErrWriteFailed         = fmt.Errorf("write failed")

	ErrInvalidConfig = fmt.Errorf("invalid config")
)
