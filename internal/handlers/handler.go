// Package handlers holds the background jobs run by "pagecomplete serve":
// consumers of the import event bus and periodic maintenance.
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/pagecomplete/internal/events"
)

// Handler is a background job. Start blocks until ctx is done or the job
// fails; the server runner stops every job when one of them returns an error.
type Handler interface {
	Start(ctx context.Context) error
	Name() string
}

// BaseHandler carries what every job shares: its name, the import event
// bus and a logger tagged with the job name.
type BaseHandler struct {
	name   string
	bus    *events.Bus
	logger *slog.Logger
}

// NewBaseHandler tags logger (slog.Default when nil) with component=name.
func NewBaseHandler(name string, bus *events.Bus, logger *slog.Logger) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{
		name:   name,
		bus:    bus,
		logger: logger.With("component", name),
	}
}

func (h *BaseHandler) Name() string { return h.name }

func (h *BaseHandler) Bus() *events.Bus { return h.bus }

func (h *BaseHandler) Logger() *slog.Logger { return h.logger }
