// Package csvimport turns delimited uploads into import sessions: it
// tokenizes and decodes the file, binds rows to logical columns, and keeps
// the parsed rows in a durable store for the execute phase.
package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// ImportType tags sessions created by this importer in the session store.
const ImportType = "uploadpagecompletion"

// Options controls how an upload is tokenized.
type Options struct {
	Encoding  string // defaults to UTF-8
	Delimiter string // comma, semicolon, colon, tab or cfg; defaults to comma
	Mapping   ColumnMapping
}

// Session is a parsed upload ready for execution.
type Session struct {
	ImportID int64
	Mapping  ColumnMapping

	headers []string
	records []Record
	store   *SessionStore

	mu      sync.Mutex
	started bool
}

// Headers returns the header row as found in the file.
func (s *Session) Headers() []string { return slices.Clone(s.headers) }

// Records returns the records in file order.
func (s *Session) Records() []Record { return slices.Clone(s.records) }

// Len returns the number of records.
func (s *Session) Len() int { return len(s.records) }

// Started reports whether Start was called successfully.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Start claims the session for execution. It fails with ErrSessionStarted
// on every call after the first, including claims made by another process
// through the session store.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("%w: %d", ErrSessionStarted, s.ImportID)
	}
	if s.store != nil {
		if err := s.store.MarkStarted(ctx, s.ImportID); err != nil {
			if errors.Is(err, ErrSessionStarted) {
				s.started = true
			}
			return err
		}
	}
	s.started = true
	return nil
}

// Release gives the claim taken by Start back, so an interrupted session
// can be reopened and executed again.
func (s *Session) Release(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if err := s.store.ReleaseStarted(ctx, s.ImportID); err != nil {
			return err
		}
	}
	s.started = false
	return nil
}

// NewSession builds an in-memory session that is not backed by a store.
func NewSession(importID int64, headers []string, records []Record) *Session {
	return &Session{
		ImportID: importID,
		Mapping:  DefaultMapping(),
		headers:  slices.Clone(headers),
		records:  slices.Clone(records),
	}
}

// Parser creates and reopens import sessions.
type Parser struct {
	store           *SessionStore
	customDelimiter rune
	log             *slog.Logger
}

// NewParser creates a parser. customDelimiter is used for the "cfg"
// delimiter name; zero selects DefaultCustomDelimiter.
func NewParser(store *SessionStore, customDelimiter rune, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		store:           store,
		customDelimiter: customDelimiter,
		log:             logger.With("component", "csvimport"),
	}
}

// Parse tokenizes r and persists the result under a new import id.
// Format problems fail with ErrImportFormat and a file without data rows
// fails with ErrEmptyInput; in both cases nothing is persisted.
func (p *Parser) Parse(ctx context.Context, r io.Reader, opts Options) (*Session, error) {
	if opts.Delimiter == "" {
		opts.Delimiter = "comma"
	}
	if opts.Encoding == "" {
		opts.Encoding = DefaultEncoding
	}

	delim, err := ResolveDelimiter(opts.Delimiter, p.customDelimiter)
	if err != nil {
		return nil, err
	}
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	t, err := readTable(decodeReader(r, enc), delim)
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, ErrEmptyInput
	}

	id, err := p.store.Create(ctx, ImportType, opts.Encoding, opts.Delimiter, t.headers, t.rows)
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	p.log.Info("import parsed", "import_id", id, "records", len(t.rows), "headers", t.headers)

	return p.session(id, opts.Mapping, t.headers, t.rows, false), nil
}

// Reopen rebuilds a session from the store without the original text,
// binding the stored rows with mapping.
func (p *Parser) Reopen(ctx context.Context, importID int64, mapping ColumnMapping) (*Session, error) {
	info, rows, err := p.store.Open(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportFormat, err)
	}
	if info.Type != ImportType {
		return nil, fmt.Errorf("%w: session %d has type %q", ErrImportFormat, importID, info.Type)
	}
	return p.session(importID, mapping, info.Headers, rows, info.Started()), nil
}

func (p *Parser) session(id int64, mapping ColumnMapping, headers []string, rows [][]string, started bool) *Session {
	records := make([]Record, len(rows))
	for i, cells := range rows {
		records[i] = mapping.Apply(cells)
	}
	return &Session{
		ImportID: id,
		Mapping:  mapping,
		headers:  headers,
		records:  records,
		store:    p.store,
		started:  started,
	}
}
