// Package lms stores the learning-management entities an import resolves
// against: courses, users, roles, course modules, enrolments and completions.
package lms

import "time"

// ModulePage is the module name of a page activity.
const ModulePage = "page"

// Course is identified externally by IDNumber, which is not guaranteed unique.
type Course struct {
	ID        int64
	IDNumber  string
	ShortName string
	FullName  string
	CreatedAt time.Time
}

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

type Role struct {
	ID        int64
	ShortName string
	Name      string
}

// Module is an activity instance attached to a course.
type Module struct {
	ID       int64
	CourseID int64
	Module   string
	IDNumber string
	Name     string
	AddedAt  time.Time
}

type Enrolment struct {
	ID         int64
	CourseID   int64
	UserID     int64
	RoleID     int64
	EnrolledAt time.Time
}

// Completion is the completion state of one module for one user.
type Completion struct {
	ID        int64
	ModuleID  int64
	UserID    int64
	Viewed    bool
	UpdatedAt time.Time
}

// ViewResult tags the outcome of MarkViewed.
type ViewResult int

const (
	AlreadyViewed ViewResult = iota
	NewlyViewed
)

func (r ViewResult) String() string {
	if r == NewlyViewed {
		return "newly-viewed"
	}
	return "already-viewed"
}
