// Package v1 implements the two-phase import REST API.
package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
	"github.com/vmunix/pagecomplete/internal/importer"
	"github.com/vmunix/pagecomplete/internal/tracker"
)

// maxUploadBytes bounds the size of an uploaded file.
const maxUploadBytes = 32 << 20

// Server is the v1 API server.
type Server struct {
	deps     ServerDeps
	registry *events.Registry
	log      *slog.Logger
}

// New creates a new v1 API server.
func New(deps ServerDeps, logger *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		deps:     deps,
		registry: events.DefaultRegistry(),
		log:      logger.With("component", "api"),
	}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Imports
	mux.HandleFunc("POST /api/v1/imports", s.createImport)
	mux.HandleFunc("GET /api/v1/imports", s.listImports)
	mux.HandleFunc("GET /api/v1/imports/{id}", s.getImport)
	mux.HandleFunc("POST /api/v1/imports/{id}/execute", s.executeImport)
	mux.HandleFunc("DELETE /api/v1/imports/{id}", s.deleteImport)
	mux.HandleFunc("GET /api/v1/imports/{id}/events", s.requireEventLog(s.importEvents))

	// History & events
	mux.HandleFunc("GET /api/v1/history", s.listHistory)
	mux.HandleFunc("GET /api/v1/events", s.requireEventLog(s.listEvents))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Handler returns a mux with all routes and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return logRequests(s.log, mux)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts the integer "id" path parameter.
func pathID(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, errors.New("missing path parameter: id")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// writeImportError maps csvimport and importer errors to responses.
func writeImportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, csvimport.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, importer.ErrAlreadyStarted), errors.Is(err, csvimport.ErrSessionStarted):
		writeError(w, http.StatusConflict, "ALREADY_STARTED", err.Error())
	case errors.Is(err, csvimport.ErrEmptyInput):
		writeError(w, http.StatusUnprocessableEntity, "EMPTY_FILE", err.Error())
	case errors.Is(err, csvimport.ErrImportFormat):
		writeError(w, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "IMPORT_ERROR", err.Error())
	}
}

func (s *Server) createImport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := csvimport.Options{
		Delimiter: q.Get("delimiter"),
		Encoding:  q.Get("encoding"),
		Mapping:   s.deps.defaultMapping(),
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	session, err := s.deps.Parser.Parse(r.Context(), body, opts)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error())
			return
		}
		writeImportError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, importResponse{
		ImportID: session.ImportID,
		Headers:  session.Headers(),
		Mapping:  csvimport.SuggestMapping(session.Headers()),
		Records:  session.Len(),
	})
}

func toImportResponse(info *csvimport.SessionInfo) importResponse {
	created := info.CreatedAt
	return importResponse{
		ImportID:  info.ID,
		Headers:   info.Headers,
		Mapping:   csvimport.SuggestMapping(info.Headers),
		Records:   info.RowCount,
		Started:   info.Started(),
		CreatedAt: &created,
	}
}

func (s *Server) listImports(w http.ResponseWriter, r *http.Request) {
	infos, err := s.deps.Sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	resp := listImportsResponse{Items: make([]importResponse, len(infos)), Total: len(infos)}
	for i, info := range infos {
		resp.Items[i] = toImportResponse(info)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	info, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toImportResponse(info))
}

// executeRequest carries the confirmed column mapping. An empty body keeps
// the default mapping.
type executeRequest struct {
	Mapping *csvimport.ColumnMapping `json:"mapping"`
}

func (s *Server) executeImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	mapping := s.deps.defaultMapping()
	if req.Mapping != nil {
		mapping = *req.Mapping
	}

	mode := tracker.ModeHTML
	if f := r.URL.Query().Get("format"); f != "" {
		m, err := tracker.ParseMode(f)
		if err != nil || m == tracker.ModeSilent || m == tracker.ModePlain {
			writeError(w, http.StatusBadRequest, "INVALID_FORMAT", fmt.Sprintf("unsupported format %q", f))
			return
		}
		mode = m
	}

	// A client disconnect must not stop a run half-way.
	ctx := context.WithoutCancel(r.Context())
	session, err := s.deps.Parser.Reopen(ctx, id, mapping)
	if err != nil {
		writeImportError(w, err)
		return
	}

	// The report is buffered so a rejected execution still gets a proper status.
	var buf bytes.Buffer
	tr := tracker.New(&buf, mode)
	run, err := s.deps.Executor.Execute(ctx, session, tr)
	if err != nil && run == nil {
		writeImportError(w, err)
		return
	}
	if err != nil {
		s.log.Warn("import interrupted", "import_id", id, "error", err)
	}

	contentType := "text/html; charset=utf-8"
	if mode == tracker.ModeJSON {
		contentType = "application/x-ndjson"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Import-Total", strconv.Itoa(run.Total))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) deleteImport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	if err := s.deps.Sessions.Cleanup(r.Context(), id); err != nil {
		writeImportError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	filter := importer.RunFilter{Limit: queryInt(r, "limit", 50)}
	if v := r.URL.Query().Get("import_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid import_id")
			return
		}
		filter.ImportID = &id
	}

	runs, err := s.deps.History.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	resp := listRunsResponse{Items: make([]runResponse, len(runs)), Total: len(runs)}
	for i, run := range runs {
		resp.Items[i] = runResponse(*run)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	raw, err := s.deps.EventLog.Query(events.Filter{
		EventType:  r.URL.Query().Get("type"),
		EntityType: r.URL.Query().Get("entity_type"),
		Limit:      limit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.toEventsResponse(raw))
}

// importEvents returns the lifecycle events of one import, oldest first.
func (s *Server) importEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	raw, err := s.deps.EventLog.ForEntity(events.EntityImport, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.toEventsResponse(raw))
}

func (s *Server) toEventsResponse(raw []events.RawEvent) listEventsResponse {
	resp := listEventsResponse{Items: make([]EventResponse, len(raw)), Total: len(raw)}
	for i, e := range raw {
		item := EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
		payload, err := s.registry.Unmarshal(e)
		if err != nil {
			s.log.Debug("event payload not decoded", "id", e.ID, "type", e.EventType, "error", err)
		} else {
			item.Payload = payload
		}
		resp.Items[i] = item
	}
	return resp
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
