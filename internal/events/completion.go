package events

// PageViewed is emitted when a page activity is recorded as viewed by a user.
type PageViewed struct {
	BaseEvent
	ModuleID int64  `json:"module_id"`
	CourseID int64  `json:"course_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// CompletionUpdated is emitted when a stored completion state changes.
type CompletionUpdated struct {
	BaseEvent
	ModuleID int64 `json:"module_id"`
	UserID   int64 `json:"user_id"`
	Viewed   bool  `json:"viewed"`
}

// UserEnrolled is emitted when an import enrols a user who was not yet enrolled.
type UserEnrolled struct {
	BaseEvent
	CourseID int64  `json:"course_id"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
}

// CourseIDNumberAmbiguous flags an idnumber shared by several courses.
// The entity is the first matching course.
type CourseIDNumberAmbiguous struct {
	BaseEvent
	IDNumber  string  `json:"idnumber"`
	CourseIDs []int64 `json:"course_ids"`
}
