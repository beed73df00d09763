package csvimport

import "errors"

var (
	// ErrImportFormat indicates the input could not be tokenized. It aborts
	// the whole import before any record is produced.
	ErrImportFormat = errors.New("invalid import file")

	// ErrEmptyInput indicates a well-formed file without data rows.
	ErrEmptyInput = errors.New("empty csv file")

	// ErrUnsupportedEncoding is wrapped together with ErrImportFormat.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrUnknownDelimiter is wrapped together with ErrImportFormat.
	ErrUnknownDelimiter = errors.New("unknown delimiter")

	ErrSessionNotFound = errors.New("import session not found")

	// ErrSessionStarted indicates the session was already claimed for execution.
	ErrSessionStarted = errors.New("import session already started")
)
