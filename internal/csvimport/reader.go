package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// table is the tokenized content of an upload.
type table struct {
	headers []string
	rows    [][]string
}

// readTable tokenizes r. The first non-blank row is the header row; every
// following row must have as many cells as the header. Cells are trimmed.
func readTable(r io.Reader, delimiter rune) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	t := &table{}
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrImportFormat, err)
		}
		trimCells(cells)
		if blank(cells) {
			continue
		}

		if t.headers == nil {
			t.headers = cells
			continue
		}
		if len(cells) != len(t.headers) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d columns, expected %d",
				ErrImportFormat, line, len(cells), len(t.headers))
		}
		t.rows = append(t.rows, cells)
	}

	if len(t.headers) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrImportFormat)
	}
	return t, nil
}

func trimCells(cells []string) {
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
}

// blank reports a line holding nothing but whitespace.
func blank(cells []string) bool {
	return len(cells) == 1 && cells[0] == ""
}
