package csvimport

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is assumed when no encoding name is given.
const DefaultEncoding = "UTF-8"

// LookupEncoding resolves an encoding label such as "UTF-8", "latin1" or
// "windows-1252". Matching is case-insensitive.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q", ErrImportFormat, ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// SupportedEncoding reports whether name is a known encoding label.
func SupportedEncoding(name string) bool {
	_, err := LookupEncoding(name)
	return err == nil
}

// decodeReader converts r from enc to UTF-8. A byte order mark takes
// precedence over enc and is dropped.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}
