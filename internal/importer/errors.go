package importer

import "errors"

var (
	// ErrAlreadyStarted indicates Execute was called on a session that was
	// already executed, in this process or another one.
	ErrAlreadyStarted = errors.New("import already started")

	// ErrRunNotFound indicates no run is recorded for the import.
	ErrRunNotFound = errors.New("import run not found")
)
