package csvimport

import (
	"fmt"
	"sort"
)

// DefaultCustomDelimiter is used for the "cfg" delimiter when none is configured.
const DefaultCustomDelimiter = '|'

var delimiters = map[string]rune{
	"comma":     ',',
	"semicolon": ';',
	"colon":     ':',
	"tab":       '\t',
}

// DelimiterNames lists the accepted delimiter names, including "cfg".
func DelimiterNames() []string {
	names := make([]string, 0, len(delimiters)+1)
	for name := range delimiters {
		names = append(names, name)
	}
	names = append(names, "cfg")
	sort.Strings(names)
	return names
}

// ResolveDelimiter maps a delimiter name to its rune. "cfg" resolves to
// custom, or to DefaultCustomDelimiter when custom is zero.
func ResolveDelimiter(name string, custom rune) (rune, error) {
	if name == "cfg" {
		if custom == 0 {
			return DefaultCustomDelimiter, nil
		}
		return custom, nil
	}
	if r, ok := delimiters[name]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %w: %q", ErrImportFormat, ErrUnknownDelimiter, name)
}
