// Package tracker renders per-record import outcomes and the final totals.
package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmunix/pagecomplete/internal/completion"
)

// Mode selects the output format.
type Mode int

const (
	ModeSilent Mode = iota
	ModePlain
	ModeHTML
	ModeJSON
)

var modeNames = map[string]Mode{
	"silent": ModeSilent,
	"plain":  ModePlain,
	"html":   ModeHTML,
	"json":   ModeJSON,
}

func (m Mode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode maps "silent", "plain", "html" or "json" to a Mode.
func ParseMode(s string) (Mode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ModeSilent, fmt.Errorf("unknown output format %q", s)
	}
	return m, nil
}

// plainColumns are the header cells of plain output.
var plainColumns = []string{"line", "result", "user", "id", "fullname"}

// Tracker writes the import report. It keeps no totals: only a row
// counter used for zebra striping in HTML mode. The first write error is
// kept and returned by Err; later writes are dropped.
type Tracker struct {
	w     io.Writer
	mode  Mode
	rownb int
	err   error
}

// New creates a tracker writing to w. A nil w behaves like ModeSilent.
func New(w io.Writer, mode Mode) *Tracker {
	if w == nil {
		mode = ModeSilent
	}
	return &Tracker{w: w, mode: mode}
}

// Mode returns the output mode.
func (t *Tracker) Mode() Mode { return t.mode }

// Err returns the first write error.
func (t *Tracker) Err() error { return t.err }

// Start writes the report header.
func (t *Tracker) Start() {
	switch t.mode {
	case ModePlain:
		t.printf("%s\n", strings.Join(plainColumns, "\t"))
	case ModeHTML:
		t.execute("start", t.rownb)
	}
}

// row is one rendered record line.
type row struct {
	Line     int      `json:"line"`
	OK       bool     `json:"ok"`
	Username string   `json:"username"`
	CourseID string   `json:"course_id"`
	FullName string   `json:"course_fullname"`
	Status   []string `json:"status"`
	Class    string   `json:"-"`
}

func newRow(line int, ok bool, status []string, out *completion.Outcome) row {
	r := row{Line: line, OK: ok, Status: status}
	if r.Status == nil {
		r.Status = []string{}
	}
	if out == nil {
		return r
	}
	if out.User != nil {
		r.Username = out.User.Username
	}
	if out.Course != nil {
		r.CourseID = strconv.FormatInt(out.Course.ID, 10)
		r.FullName = out.Course.FullName
	}
	return r
}

// Output writes one record line. out may be nil for invalid records, in
// which case the user and course columns are empty.
func (t *Tracker) Output(line int, ok bool, status []string, out *completion.Outcome) {
	if t.mode == ModeSilent {
		return
	}
	r := newRow(line, ok, status, out)

	switch t.mode {
	case ModePlain:
		result := "NOK"
		if ok {
			result = "OK"
		}
		t.printf("%s\n", strings.Join([]string{strconv.Itoa(line), result, r.Username, r.CourseID, r.FullName}, "\t"))
		for _, st := range status {
			t.printf("  %s\n", st)
		}
	case ModeHTML:
		t.rownb++
		r.Class = "r" + strconv.Itoa(t.rownb%2)
		t.execute("row", r)
	case ModeJSON:
		t.encode(r)
	}
}

// Finish closes the record table.
func (t *Tracker) Finish() {
	if t.mode == ModeHTML {
		t.printf("</table>\n")
	}
}

// Totals is the summary written by Results.
type Totals struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

func (s Totals) lines() []string {
	return []string{
		fmt.Sprintf("Completions total: %d", s.Total),
		fmt.Sprintf("Completions added: %d", s.Added),
		fmt.Sprintf("Completions skipped: %d", s.Skipped),
		fmt.Sprintf("Completions errors: %d", s.Errors),
	}
}

// Results writes the totals supplied by the caller.
func (t *Tracker) Results(total, added, skipped, errors int) {
	s := Totals{Total: total, Added: added, Skipped: skipped, Errors: errors}
	switch t.mode {
	case ModePlain:
		for _, l := range s.lines() {
			t.printf("%s\n", l)
		}
	case ModeHTML:
		t.execute("results", s.lines())
	case ModeJSON:
		t.encode(struct {
			Totals Totals `json:"totals"`
		}{s})
	}
}

func (t *Tracker) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *Tracker) execute(name string, data any) {
	if t.err != nil {
		return
	}
	t.err = htmlTemplates.ExecuteTemplate(t.w, name, data)
}

func (t *Tracker) encode(v any) {
	if t.err != nil {
		return
	}
	t.err = json.NewEncoder(t.w).Encode(v)
}
