package csvimport

import "strings"

// Logical column names of the upload format.
const (
	ColumnCourseIDNumber = "COURSE_IDNUMBER"
	ColumnUserUsername   = "USER_USERNAME"
)

// ColumnAbsent marks a logical column that is not present in the file.
// Fields bound to it are always empty.
const ColumnAbsent = -1

// Record is one data row bound to its logical columns.
type Record struct {
	CourseIDNumber string
	UserUsername   string
}

// ColumnMapping binds logical columns to zero-based positions in a row.
type ColumnMapping struct {
	CourseIDNumber int `json:"course_idnumber"`
	UserUsername   int `json:"user_username"`
}

// DefaultMapping returns {0, 1}: course idnumber first, username second.
func DefaultMapping() ColumnMapping {
	return ColumnMapping{CourseIDNumber: 0, UserUsername: 1}
}

// Apply builds a Record from raw cells. Out of range or absent columns
// yield empty fields.
func (m ColumnMapping) Apply(cells []string) Record {
	return Record{
		CourseIDNumber: cell(cells, m.CourseIDNumber),
		UserUsername:   cell(cells, m.UserUsername),
	}
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// Validate reports whether r carries both required fields.
func Validate(r Record) bool {
	return strings.TrimSpace(r.CourseIDNumber) != "" && strings.TrimSpace(r.UserUsername) != ""
}
