// Package completion resolves import records against the catalog and
// records the designated page of a course as viewed by a user.
package completion

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/vmunix/pagecomplete/internal/completion Catalog,Publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vmunix/pagecomplete/internal/csvimport"
	"github.com/vmunix/pagecomplete/internal/events"
	"github.com/vmunix/pagecomplete/internal/lms"
)

// Outcome messages.
const (
	MsgCourseMissing = "Course with idnumber %s does not exist"
	MsgUserMissing   = "User with username %s does not exist"
	MsgPageMissing   = "Page with idnumber %s does not exist"
	MsgViewedSet     = "Page - Completion Viewed set to true."
	MsgViewedExists  = "Page completion viewed already exists."
)

// DefaultStudentRole is the role shortname new enrolments receive.
const DefaultStudentRole = "student"

// Catalog is the entity store the resolver reads and writes.
type Catalog interface {
	CoursesByIDNumber(ctx context.Context, idnumber string) ([]*lms.Course, error)
	UserByUsername(ctx context.Context, username string) (*lms.User, error)
	PageForCourse(ctx context.Context, course *lms.Course) (*lms.Module, error)
	RoleByShortName(ctx context.Context, shortname string) (*lms.Role, error)
	Enrol(ctx context.Context, courseID, userID, roleID int64) (bool, error)
	MarkViewed(ctx context.Context, moduleID, userID int64) (lms.ViewResult, error)
}

// Publisher receives the events a resolution emits.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Outcome is the result of resolving one record. Exactly one of Added and
// Skipped is 1.
type Outcome struct {
	Course  *lms.Course
	User    *lms.User
	Added   int
	Skipped int
	Message string
}

func skipped(course *lms.Course, user *lms.User, format string, args ...any) Outcome {
	return Outcome{Course: course, User: user, Skipped: 1, Message: fmt.Sprintf(format, args...)}
}

// Resolver applies the completion rules to validated records.
type Resolver struct {
	catalog     Catalog
	publisher   Publisher // may be nil
	studentRole string
	log         *slog.Logger

	roleMu sync.Mutex
	role   *lms.Role
}

// NewResolver creates a resolver. An empty studentRole selects
// DefaultStudentRole; a nil publisher disables events.
func NewResolver(catalog Catalog, publisher Publisher, studentRole string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if studentRole == "" {
		studentRole = DefaultStudentRole
	}
	return &Resolver{
		catalog:     catalog,
		publisher:   publisher,
		studentRole: studentRole,
		log:         logger.With("component", "resolver"),
	}
}

// Resolve looks up the course, the user and the course page, enrols the
// user and marks the page viewed. Missing entities are reported as a
// skipped Outcome; an error is returned only when the catalog fails.
func (r *Resolver) Resolve(ctx context.Context, rec csvimport.Record) (Outcome, error) {
	course, err := r.course(ctx, rec.CourseIDNumber)
	if err != nil {
		return Outcome{}, err
	}
	if course == nil {
		return skipped(nil, nil, MsgCourseMissing, rec.CourseIDNumber), nil
	}

	user, err := r.catalog.UserByUsername(ctx, rec.UserUsername)
	if errors.Is(err, lms.ErrNotFound) {
		return skipped(course, nil, MsgUserMissing, rec.UserUsername), nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("lookup user %q: %w", rec.UserUsername, err)
	}

	page, err := r.catalog.PageForCourse(ctx, course)
	if errors.Is(err, lms.ErrNotFound) {
		return skipped(course, user, MsgPageMissing, course.IDNumber), nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("lookup page of course %d: %w", course.ID, err)
	}

	if err := r.enrol(ctx, course, user); err != nil {
		return Outcome{}, err
	}

	result, err := r.catalog.MarkViewed(ctx, page.ID, user.ID)
	if err != nil {
		return Outcome{}, fmt.Errorf("mark page %d viewed for user %d: %w", page.ID, user.ID, err)
	}
	if result == lms.AlreadyViewed {
		return skipped(course, user, MsgViewedExists), nil
	}

	r.publish(ctx, &events.PageViewed{
		BaseEvent: events.NewBaseEvent(events.EventPageViewed, events.EntityModule, page.ID),
		ModuleID:  page.ID,
		CourseID:  course.ID,
		UserID:    user.ID,
		Username:  user.Username,
	})
	r.publish(ctx, &events.CompletionUpdated{
		BaseEvent: events.NewBaseEvent(events.EventCompletionUpdated, events.EntityModule, page.ID),
		ModuleID:  page.ID,
		UserID:    user.ID,
		Viewed:    true,
	})
	return Outcome{Course: course, User: user, Added: 1, Message: MsgViewedSet}, nil
}

// course returns the single course with idnumber, or nil when there is
// none or more than one.
func (r *Resolver) course(ctx context.Context, idnumber string) (*lms.Course, error) {
	courses, err := r.catalog.CoursesByIDNumber(ctx, idnumber)
	if err != nil {
		return nil, fmt.Errorf("lookup course %q: %w", idnumber, err)
	}
	switch len(courses) {
	case 0:
		return nil, nil
	case 1:
		return courses[0], nil
	}

	ids := make([]int64, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	r.log.Warn("course idnumber is ambiguous", "idnumber", idnumber, "course_ids", ids)
	r.publish(ctx, &events.CourseIDNumberAmbiguous{
		BaseEvent: events.NewBaseEvent(events.EventCourseIDNumberAmbiguous, events.EntityCourse, ids[0]),
		IDNumber:  idnumber,
		CourseIDs: ids,
	})
	return nil, nil
}

func (r *Resolver) enrol(ctx context.Context, course *lms.Course, user *lms.User) error {
	role, err := r.studentRoleID(ctx)
	if err != nil {
		return err
	}
	added, err := r.catalog.Enrol(ctx, course.ID, user.ID, role.ID)
	if err != nil {
		return fmt.Errorf("enrol user %d in course %d: %w", user.ID, course.ID, err)
	}
	if added {
		r.log.Debug("user enrolled", "course_id", course.ID, "user", user.Username, "role", role.ShortName)
		r.publish(ctx, &events.UserEnrolled{
			BaseEvent: events.NewBaseEvent(events.EventUserEnrolled, events.EntityUser, user.ID),
			CourseID:  course.ID,
			UserID:    user.ID,
			Role:      role.ShortName,
		})
	}
	return nil
}

// studentRoleID looks the role up once and caches it.
func (r *Resolver) studentRoleID(ctx context.Context) (*lms.Role, error) {
	r.roleMu.Lock()
	defer r.roleMu.Unlock()

	if r.role != nil {
		return r.role, nil
	}
	role, err := r.catalog.RoleByShortName(ctx, r.studentRole)
	if err != nil {
		return nil, fmt.Errorf("lookup role %q: %w", r.studentRole, err)
	}
	r.role = role
	return role, nil
}

func (r *Resolver) publish(ctx context.Context, e events.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, e); err != nil {
		r.log.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}
