package events

import (
	"context"
	"log/slog"
	"sync"
)

// allEvents is the subscription key for subscribers of every event type.
const allEvents = ""

type subscription struct {
	eventType string
	ch        chan Event
}

// Bus is an in-process publish/subscribe hub. Delivery never blocks the
// publisher: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	log    *EventLog // may be nil
	logger *slog.Logger
	closed bool
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish persists e (when a log is configured) and hands it to every
// matching subscriber.
func (b *Bus) Publish(_ context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			// Delivery still happens; the log is best effort.
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, s := range b.subs {
		if s.eventType != allEvents && s.eventType != e.EventType() {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(eventType, bufferSize)
}

// SubscribeAll returns a channel receiving every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add(allEvents, bufferSize)
}

func (b *Bus) add(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, subscription{eventType: eventType, ch: ch})
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
