package events

// ImportStarted is emitted when execution of an import session begins.
type ImportStarted struct {
	BaseEvent
	ImportID int64 `json:"import_id"`
	Records  int   `json:"records"`
}

// ImportCompleted is emitted after the last record of a session was processed.
type ImportCompleted struct {
	BaseEvent
	ImportID int64 `json:"import_id"`
	Total    int   `json:"total"`
	Added    int   `json:"added"`
	Skipped  int   `json:"skipped"`
	Errors   int   `json:"errors"`
}
