// Package importer executes parsed import sessions: it validates and
// resolves every record in file order and reports each outcome to a tracker.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/pagecomplete/internal/completion"
	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
)

// Status headings written before the resolver message.
const (
	StatusAdded   = "Page completion added"
	StatusSkipped = "Page completion skipped"
	StatusInvalid = "Invalid Import Record"
	StatusFailed  = "Page completion failed"
)

// Tracker receives the report of an execution.
type Tracker interface {
	Start()
	Output(line int, ok bool, status []string, out *completion.Outcome)
	Finish()
	Results(total, added, skipped, errors int)
}

// Resolver resolves one validated record.
type Resolver interface {
	Resolve(ctx context.Context, rec csvimport.Record) (completion.Outcome, error)
}

// Importer runs sessions through validation and resolution.
type Importer struct {
	resolver  Resolver
	publisher completion.Publisher // nil if events are disabled
	history   *HistoryStore        // nil if runs are not recorded
	log       *slog.Logger
}

// New creates an importer.
func New(resolver Resolver, publisher completion.Publisher, history *HistoryStore, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		resolver:  resolver,
		publisher: publisher,
		history:   history,
		log:       logger.With("component", "importer"),
	}
}

// Execute processes every record of s sequentially and in order, then
// writes totals to tr. Record-level problems never stop the loop; they are
// counted and reported inline. A session runs to completion at most once:
// later calls fail with ErrAlreadyStarted.
//
// If ctx is cancelled the loop stops early, the partial totals are still
// reported and recorded, and the context error is returned with them. The
// session claim is then released, so a reopened session executes again.
func (i *Importer) Execute(ctx context.Context, s *csvimport.Session, tr Tracker) (*Run, error) {
	if err := s.Start(ctx); err != nil {
		if errors.Is(err, csvimport.ErrSessionStarted) {
			return nil, fmt.Errorf("%w: import %d", ErrAlreadyStarted, s.ImportID)
		}
		return nil, fmt.Errorf("start import %d: %w", s.ImportID, err)
	}

	records := s.Records()
	run := &Run{ImportID: s.ImportID, StartedAt: time.Now()}
	i.log.Info("import started", "import_id", s.ImportID, "records", len(records))
	i.publish(ctx, &events.ImportStarted{
		BaseEvent: events.NewBaseEvent(events.EventImportStarted, events.EntityImport, s.ImportID),
		ImportID:  s.ImportID,
		Records:   len(records),
	})

	tr.Start()
	var stopErr error
	line := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}
		line++

		if !csvimport.Validate(rec) {
			run.Errors++
			tr.Output(line, false, []string{StatusInvalid}, nil)
			continue
		}

		out, err := i.resolver.Resolve(ctx, rec)
		if err != nil {
			run.Errors++
			i.log.Error("resolve failed", "import_id", s.ImportID, "line", line, "error", err)
			tr.Output(line, false, []string{StatusFailed, err.Error()}, nil)
			continue
		}

		run.Added += out.Added
		run.Skipped += out.Skipped
		heading := StatusSkipped
		if out.Added > 0 {
			heading = StatusAdded
		}
		tr.Output(line, true, []string{heading, out.Message}, &out)
	}
	run.Total = line
	run.FinishedAt = time.Now()

	tr.Finish()
	tr.Results(run.Total, run.Added, run.Skipped, run.Errors)

	// Bookkeeping below must survive a cancelled ctx.
	bg := context.WithoutCancel(ctx)
	if stopErr != nil {
		// Unreached records stay importable.
		if err := s.Release(bg); err != nil {
			i.log.Error("release interrupted import failed", "import_id", s.ImportID, "error", err)
		} else {
			i.log.Warn("import interrupted, session released", "import_id", s.ImportID, "processed", run.Total)
		}
	}
	if i.history != nil {
		if err := i.history.Add(bg, run); err != nil {
			i.log.Error("record run failed", "import_id", s.ImportID, "error", err)
		}
	}
	i.publish(bg, &events.ImportCompleted{
		BaseEvent: events.NewBaseEvent(events.EventImportCompleted, events.EntityImport, s.ImportID),
		ImportID:  s.ImportID,
		Total:     run.Total,
		Added:     run.Added,
		Skipped:   run.Skipped,
		Errors:    run.Errors,
	})
	i.log.Info("import complete", "import_id", s.ImportID,
		"total", run.Total, "added", run.Added, "skipped", run.Skipped, "errors", run.Errors,
		"duration", run.FinishedAt.Sub(run.StartedAt))

	return run, stopErr
}

func (i *Importer) publish(ctx context.Context, e events.Event) {
	if i.publisher == nil {
		return
	}
	if err := i.publisher.Publish(ctx, e); err != nil {
		i.log.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}
