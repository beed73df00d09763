package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnMapping_Apply(t *testing.T) {
	cells := []string{"CRS1", "alice", "extra"}

	tests := []struct {
		name    string
		mapping ColumnMapping
		want    Record
	}{
		{"default", DefaultMapping(), Record{CourseIDNumber: "CRS1", UserUsername: "alice"}},
		{"swapped", ColumnMapping{CourseIDNumber: 1, UserUsername: 0}, Record{CourseIDNumber: "alice", UserUsername: "CRS1"}},
		{"absent user", ColumnMapping{CourseIDNumber: 0, UserUsername: ColumnAbsent}, Record{CourseIDNumber: "CRS1"}},
		{"out of range", ColumnMapping{CourseIDNumber: 7, UserUsername: 1}, Record{UserUsername: "alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mapping.Apply(cells))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"complete", Record{CourseIDNumber: "CRS1", UserUsername: "alice"}, true},
		{"empty course", Record{UserUsername: "alice"}, false},
		{"empty username", Record{CourseIDNumber: "CRS1"}, false},
		{"whitespace username", Record{CourseIDNumber: "CRS1", UserUsername: "  \t"}, false},
		{"both empty", Record{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.rec))
		})
	}
}

func TestResolveDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		custom rune
		want   rune
	}{
		{"comma", 0, ','},
		{"semicolon", 0, ';'},
		{"colon", 0, ':'},
		{"tab", 0, '\t'},
		{"cfg", 0, '|'},
		{"cfg", '#', '#'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDelimiter(tt.name, tt.custom)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ResolveDelimiter("pipe", 0)
	assert.ErrorIs(t, err, ErrUnknownDelimiter)
	assert.ErrorIs(t, err, ErrImportFormat)
}

func TestDelimiterNames(t *testing.T) {
	assert.Equal(t, []string{"cfg", "colon", "comma", "semicolon", "tab"}, DelimiterNames())
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"UTF-8", "utf-8", "ISO-8859-1", "windows-1252", ""} {
		assert.True(t, SupportedEncoding(name), name)
	}

	_, err := LookupEncoding("klingon")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
	assert.ErrorIs(t, err, ErrImportFormat)
}
