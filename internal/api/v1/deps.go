package v1

import (
	"context"
	"errors"

	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
	"github.com/vmunix/pagecomplete/internal/importer"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Executor runs a parsed session.
type Executor interface {
	Execute(ctx context.Context, s *csvimport.Session, tr importer.Tracker) (*importer.Run, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Parser   *csvimport.Parser
	Sessions *csvimport.SessionStore
	Executor Executor
	History  *importer.HistoryStore

	// Optional dependencies (nil if not configured)
	EventLog *events.EventLog
	Mapping  *csvimport.ColumnMapping // binding used when a request names none; nil means DefaultMapping
}

func (d ServerDeps) defaultMapping() csvimport.ColumnMapping {
	if d.Mapping != nil {
		return *d.Mapping
	}
	return csvimport.DefaultMapping()
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	switch {
	case d.Parser == nil:
		return errors.Join(ErrMissingDependency, errors.New("parser is required"))
	case d.Sessions == nil:
		return errors.Join(ErrMissingDependency, errors.New("session store is required"))
	case d.Executor == nil:
		return errors.Join(ErrMissingDependency, errors.New("executor is required"))
	case d.History == nil:
		return errors.Join(ErrMissingDependency, errors.New("history store is required"))
	}
	return nil
}
