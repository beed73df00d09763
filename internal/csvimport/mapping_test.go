package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestMapping(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    ColumnMapping
	}{
		{
			name:    "canonical order",
			headers: []string{"COURSE_IDNUMBER", "USER_USERNAME"},
			want:    ColumnMapping{CourseIDNumber: 0, UserUsername: 1},
		},
		{
			name:    "swapped",
			headers: []string{"USER_USERNAME", "COURSE_IDNUMBER"},
			want:    ColumnMapping{CourseIDNumber: 1, UserUsername: 0},
		},
		{
			name:    "lower case with spaces",
			headers: []string{"notes", "user username", "course idnumber"},
			want:    ColumnMapping{CourseIDNumber: 2, UserUsername: 1},
		},
		{
			name:    "unrelated headers fall back to defaults",
			headers: []string{"a", "b"},
			want:    DefaultMapping(),
		},
		{
			name:    "course found in user position",
			headers: []string{"x", "COURSE_IDNUMBER"},
			want:    ColumnMapping{CourseIDNumber: 1, UserUsername: 0},
		},
		{
			name: "no headers",
			want: DefaultMapping(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestMapping(tt.headers))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "COURSE_IDNUMBER", normalizeHeader(" course-idnumber "))
	assert.Equal(t, "USER_USERNAME", normalizeHeader("User  Username"))
	assert.Equal(t, "CAFE", normalizeHeader("café"))
}
