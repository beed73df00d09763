package importer

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/pagecomplete/internal/completion"
	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/lms"
	"github.com/vmunix/pagecomplete/internal/migrations"
	_ "modernc.org/sqlite"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err, "open db")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(db), "apply schema")
	return db
}

// seedCatalog creates course CRS1 with its page and users alice and bob.
func seedCatalog(t *testing.T, db *sql.DB) *lms.Store {
	t.Helper()
	store := lms.NewStore(db)
	_, err := store.Seed(context.Background(), &lms.Fixtures{
		Courses: []lms.CourseFixture{{IDNumber: "CRS1", FullName: "Course One", Page: "Intro"}},
		Users:   []lms.UserFixture{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err, "seed catalog")
	return store
}

func parse(t *testing.T, db *sql.DB, text string) *csvimport.Session {
	t.Helper()
	p := csvimport.NewParser(csvimport.NewSessionStore(db), 0, testLogger())
	s, err := p.Parse(context.Background(), strings.NewReader(text), csvimport.Options{Mapping: csvimport.DefaultMapping()})
	require.NoError(t, err, "parse")
	return s
}

// outputLine is one recorded Tracker.Output call.
type outputLine struct {
	line    int
	ok      bool
	status  []string
	outcome *completion.Outcome
}

// recordingTracker records calls in order.
type recordingTracker struct {
	calls   []string
	lines   []outputLine
	results [4]int
}

func (r *recordingTracker) Start() { r.calls = append(r.calls, "start") }

func (r *recordingTracker) Output(line int, ok bool, status []string, out *completion.Outcome) {
	r.calls = append(r.calls, "output")
	r.lines = append(r.lines, outputLine{line, ok, status, out})
}

func (r *recordingTracker) Finish() { r.calls = append(r.calls, "finish") }

func (r *recordingTracker) Results(total, added, skipped, errors int) {
	r.calls = append(r.calls, "results")
	r.results = [4]int{total, added, skipped, errors}
}
