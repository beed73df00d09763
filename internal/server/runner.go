// Package server runs the long-lived components behind "pagecomplete serve".
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	v1 "github.com/vmunix/pagecomplete/internal/api/v1"
	"github.com/vmunix/pagecomplete/internal/completion"
	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
	"github.com/vmunix/pagecomplete/internal/handlers"
	"github.com/vmunix/pagecomplete/internal/importer"
	"github.com/vmunix/pagecomplete/internal/lms"
	"golang.org/x/sync/errgroup"
)

// Config for the server.
type Config struct {
	Addr            string
	CustomDelimiter rune
	StudentRole     string
	Mapping         *csvimport.ColumnMapping // nil means csvimport.DefaultMapping
	SessionTTL      time.Duration
	PruneInterval   time.Duration
	EventRetention  time.Duration
	ShutdownTimeout time.Duration
}

// Runner wires the stores, the event bus, the HTTP API and the handlers.
type Runner struct {
	db     *sql.DB
	config Config
	logger *slog.Logger

	mu   sync.Mutex
	addr net.Addr
}

// NewRunner creates a new runner.
func NewRunner(db *sql.DB, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Runner{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// Addr returns the listening address, or nil before the server is up.
func (r *Runner) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

// Run starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	// Create event bus with persistence
	eventLog := events.NewEventLog(r.db)
	bus := events.NewBus(eventLog, r.logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// Create stores
	catalog := lms.NewStore(r.db)
	sessions := csvimport.NewSessionStore(r.db)
	history := importer.NewHistoryStore(r.db)

	resolver := completion.NewResolver(catalog, bus, r.config.StudentRole, r.logger)
	api, err := v1.New(v1.ServerDeps{
		Parser:   csvimport.NewParser(sessions, r.config.CustomDelimiter, r.logger),
		Sessions: sessions,
		Executor: importer.New(resolver, bus, history, r.logger),
		History:  history,
		EventLog: eventLog,
		Mapping:  r.config.Mapping,
	}, r.logger)
	if err != nil {
		return fmt.Errorf("create api: %w", err)
	}

	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", r.config.Addr, err)
	}
	r.mu.Lock()
	r.addr = ln.Addr()
	r.mu.Unlock()

	srv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	hs := []handlers.Handler{
		handlers.NewAuditHandler(bus, r.logger),
		handlers.NewPruneHandler(bus, sessions, eventLog, handlers.PruneConfig{
			Interval:       r.config.PruneInterval,
			SessionTTL:     r.config.SessionTTL,
			EventRetention: r.config.EventRetention,
		}, r.logger),
	}

	// Use errgroup to manage component lifecycle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), r.config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	for _, h := range hs {
		g.Go(func() error {
			r.logger.Debug("handler started", "handler", h.Name())
			if err := h.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("handler %s: %w", h.Name(), err)
			}
			return nil
		})
	}

	err = g.Wait()
	if ctx.Err() != nil && err == nil {
		return ctx.Err()
	}
	return err
}
