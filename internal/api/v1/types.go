package v1

import (
	"time"

	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
)

// importResponse is the preview of a parsed upload.
type importResponse struct {
	ImportID  int64                   `json:"import_id"`
	Headers   []string                `json:"headers"`
	Mapping   csvimport.ColumnMapping `json:"mapping"`
	Records   int                     `json:"records"`
	Started   bool                    `json:"started"`
	CreatedAt *time.Time              `json:"created_at,omitempty"`
}

// listImportsResponse is the response for GET /imports.
type listImportsResponse struct {
	Items []importResponse `json:"items"`
	Total int              `json:"total"`
}

// runResponse is the API representation of an executed import.
type runResponse struct {
	ID         int64     `json:"id"`
	ImportID   int64     `json:"import_id"`
	Total      int       `json:"total"`
	Added      int       `json:"added"`
	Skipped    int       `json:"skipped"`
	Errors     int       `json:"errors"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

type listRunsResponse struct {
	Items []runResponse `json:"items"`
	Total int           `json:"total"`
}

// EventResponse is a persisted event. Payload is omitted for event types
// this build does not know.
type EventResponse struct {
	ID         int64        `json:"id"`
	EventType  string       `json:"event_type"`
	EntityType string       `json:"entity_type"`
	EntityID   int64        `json:"entity_id"`
	OccurredAt string       `json:"occurred_at"`
	Payload    events.Event `json:"payload,omitempty"`
}

type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}
