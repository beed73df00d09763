package handlers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vmunix/pagecomplete/internal/events"
)

// AuditHandler writes every bus event to the log and keeps per-type counts.
type AuditHandler struct {
	*BaseHandler

	mu     sync.Mutex
	counts map[string]int
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(bus *events.Bus, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		BaseHandler: NewBaseHandler("audit", bus, logger),
		counts:      make(map[string]int),
	}
}

// Start begins processing events.
func (h *AuditHandler) Start(ctx context.Context) error {
	ch := h.Bus().SubscribeAll(256)
	defer h.Bus().Unsubscribe(ch)

	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return nil // Bus closed
			}
			h.record(e)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *AuditHandler) record(e events.Event) {
	h.mu.Lock()
	h.counts[e.EventType()]++
	h.mu.Unlock()

	attrs := []any{"type", e.EventType(), "entity_type", e.EntityType(), "entity_id", e.EntityID()}
	switch ev := e.(type) {
	case *events.CourseIDNumberAmbiguous:
		h.Logger().Warn("duplicate course idnumber seen during import",
			append(attrs, "idnumber", ev.IDNumber, "course_ids", ev.CourseIDs)...)
	case *events.ImportCompleted:
		h.Logger().Info("import finished",
			append(attrs, "total", ev.Total, "added", ev.Added, "skipped", ev.Skipped, "errors", ev.Errors)...)
	default:
		h.Logger().Debug("event", attrs...)
	}
}

// Counts returns a snapshot of events seen per type.
func (h *AuditHandler) Counts() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]int, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}
