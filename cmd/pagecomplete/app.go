package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/vmunix/pagecomplete/internal/completion"
	"github.com/vmunix/pagecomplete/internal/config"
	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
	"github.com/vmunix/pagecomplete/internal/importer"
	"github.com/vmunix/pagecomplete/internal/lms"
	"github.com/vmunix/pagecomplete/internal/migrations"
	_ "modernc.org/sqlite"
)

// app bundles everything a command needs.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	logger   *slog.Logger
	bus      *events.Bus
	eventLog *events.EventLog
	catalog  *lms.Store
	sessions *csvimport.SessionStore
	history  *importer.HistoryStore
	parser   *csvimport.Parser
	importer *importer.Importer
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger. Logs go to w (stderr) so reports
// on stdout stay clean.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openDB opens the SQLite database and applies migrations.
func openDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; serialize through a single connection.
	db.SetMaxOpenConns(1)
	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// loadConfig resolves the config file and applies flag overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

func (o *globalOptions) open(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Log, cmd.ErrOrStderr())

	db, err := openDB(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		eventLog: events.NewEventLog(db),
		catalog:  lms.NewStore(db),
		sessions: csvimport.NewSessionStore(db),
		history:  importer.NewHistoryStore(db),
	}
	a.bus = events.NewBus(a.eventLog, logger.With("component", "bus"))

	custom, _ := utf8.DecodeRuneInString(cfg.Import.CustomDelimiter)
	a.parser = csvimport.NewParser(a.sessions, custom, logger)
	resolver := completion.NewResolver(a.catalog, a.bus, cfg.Import.StudentRole, logger)
	a.importer = importer.New(resolver, a.bus, a.history, logger)
	return a, nil
}

// Close releases the bus and the database.
func (a *app) Close() error {
	_ = a.bus.Close()
	return a.db.Close()
}

// mapping returns the configured column mapping.
func (a *app) mapping() csvimport.ColumnMapping { return configMapping(a.cfg) }

func configMapping(cfg *config.Config) csvimport.ColumnMapping {
	return csvimport.ColumnMapping{
		CourseIDNumber: cfg.Import.CourseColumn,
		UserUsername:   cfg.Import.UserColumn,
	}
}
