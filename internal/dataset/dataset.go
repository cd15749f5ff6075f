package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

const (
	// ReviewColumn must be present in every input dataset.
	ReviewColumn = "review"

	inputDelimiter = ';'
)

// ErrParse marks datasets that could not be decoded or parsed.
var ErrParse = errors.New("invalid dataset")

// Dataset is an in-memory tabular snapshot of one input file. Rows keep
// their original order; columns beyond the review column pass through
// untouched.
type Dataset struct {
	headers []string
	rows    [][]string
}

// Load parses a semicolon-delimited CSV stream encoded as Windows-1252,
// the legacy encoding the review exports are produced in.
func Load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(charmap.Windows1252.NewDecoder().Reader(r))
	reader.Comma = inputDelimiter
	reader.LazyQuotes = true
	// Leading whitespace is kept: a whitespace-only review cell must stay
	// distinguishable from an absent one during validation.
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse CSV: %v", ErrParse, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrParse)
	}

	headers := all[0]
	rows := all[1:]

	// Short rows are padded so every row lines up with the header.
	for i := range rows {
		for len(rows[i]) < len(headers) {
			rows[i] = append(rows[i], "")
		}
	}

	return &Dataset{headers: headers, rows: rows}, nil
}

// LoadFile opens and parses a dataset from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	return Load(f)
}

// Len reports the number of data rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// HasColumn reports whether a header with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.columnIndex(name)
	return ok
}

// Column returns the named column's cells in row order.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx, ok := d.columnIndex(name)
	if !ok {
		return nil, false
	}

	cells := make([]string, len(d.rows))
	for i, row := range d.rows {
		cells[i] = row[idx]
	}
	return cells, true
}

func (d *Dataset) columnIndex(name string) (int, bool) {
	for i, h := range d.headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}
