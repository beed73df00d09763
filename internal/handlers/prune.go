package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
)

// PruneConfig configures the prune handler.
type PruneConfig struct {
	Interval       time.Duration
	SessionTTL     time.Duration // zero keeps sessions forever
	EventRetention time.Duration // zero keeps events forever
}

// PruneHandler periodically removes expired import sessions and old events.
type PruneHandler struct {
	*BaseHandler
	sessions *csvimport.SessionStore
	log      *events.EventLog // may be nil
	config   PruneConfig
}

// NewPruneHandler creates a prune handler.
func NewPruneHandler(bus *events.Bus, sessions *csvimport.SessionStore, eventLog *events.EventLog, config PruneConfig, logger *slog.Logger) *PruneHandler {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &PruneHandler{
		BaseHandler: NewBaseHandler("prune", bus, logger),
		sessions:    sessions,
		log:         eventLog,
		config:      config,
	}
}

// Start prunes once immediately and then on every tick.
func (h *PruneHandler) Start(ctx context.Context) error {
	ticker := time.NewTicker(h.config.Interval)
	defer ticker.Stop()

	h.prune(ctx)
	for {
		select {
		case <-ticker.C:
			h.prune(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *PruneHandler) prune(ctx context.Context) {
	if h.config.SessionTTL > 0 {
		n, err := h.sessions.Prune(ctx, h.config.SessionTTL)
		if err != nil {
			h.Logger().Error("prune sessions failed", "error", err)
		} else if n > 0 {
			h.Logger().Info("pruned import sessions", "count", n, "ttl", h.config.SessionTTL)
		}
	}
	if h.log != nil && h.config.EventRetention > 0 {
		n, err := h.log.Prune(h.config.EventRetention)
		if err != nil {
			h.Logger().Error("prune events failed", "error", err)
		} else if n > 0 {
			h.Logger().Info("pruned events", "count", n)
		}
	}
}
