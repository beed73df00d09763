package csvimport

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minHeaderScore is the Jaro-Winkler similarity a header needs to be bound
// to a logical column by SuggestMapping.
const minHeaderScore = 0.85

// SuggestMapping proposes a ColumnMapping by fuzzy-matching headers against
// COURSE_IDNUMBER and USER_USERNAME. Columns without a confident match
// keep their DefaultMapping position.
func SuggestMapping(headers []string) ColumnMapping {
	m := DefaultMapping()
	course, courseScore := bestHeader(ColumnCourseIDNumber, headers)
	user, userScore := bestHeader(ColumnUserUsername, headers)

	if course == user && course >= 0 {
		// Both names picked the same header; the closer one keeps it.
		if courseScore >= userScore {
			user = -1
		} else {
			course = -1
		}
	}
	if course >= 0 {
		m.CourseIDNumber = course
	}
	if user >= 0 {
		m.UserUsername = user
	}
	if m.CourseIDNumber == m.UserUsername {
		// The unmatched column moves to the position the matched one vacated.
		if course >= 0 {
			m.UserUsername = DefaultMapping().CourseIDNumber
		} else {
			m.CourseIDNumber = DefaultMapping().UserUsername
		}
	}
	return m
}

func bestHeader(name string, headers []string) (int, float64) {
	want := normalizeHeader(name)
	best, bestScore := -1, 0.0
	for i, h := range headers {
		score := float64(edlib.JaroWinklerSimilarity(want, normalizeHeader(h)))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if bestScore < minHeaderScore {
		return -1, 0
	}
	return best, bestScore
}

// normalizeHeader upper-cases, strips accents and collapses separators to "_".
func normalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ := transform.String(t, strings.ToUpper(strings.TrimSpace(h)))

	var b strings.Builder
	sep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}
