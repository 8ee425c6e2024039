package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	DefaultIDColumn   = "record_id"
	DefaultDataColumn = "data_json"
)

// Columns names the input columns. Matching is case-insensitive.
type Columns struct {
	ID   string
	Data string
}

func (c Columns) withDefaults() Columns {
	if c.ID == "" {
		c.ID = DefaultIDColumn
	}
	if c.Data == "" {
		c.Data = DefaultDataColumn
	}
	return c
}

// ColumnError reports a required column missing from the header.
type ColumnError struct {
	Column string
	Header []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("missing column %q (header: %s)", e.Column, strings.Join(e.Header, ", "))
}

// Row is one input record. Line is the 1-based line where it starts.
type Row struct {
	Line int
	ID   string
	Data string
}

// Reader yields rows from a CSV with a header line.
type Reader struct {
	r        *csv.Reader
	id, data int
}

// NewReader consumes the header and locates the id and data columns.
func NewReader(r io.Reader, cols Columns) (*Reader, error) {
	cols = cols.withDefaults()
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	rd := &Reader{r: cr, id: -1, data: -1}
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case rd.id < 0 && strings.EqualFold(h, cols.ID):
			rd.id = i
		case rd.data < 0 && strings.EqualFold(h, cols.Data):
			rd.data = i
		}
	}
	if rd.id < 0 {
		return nil, &ColumnError{Column: cols.ID, Header: header}
	}
	if rd.data < 0 {
		return nil, &ColumnError{Column: cols.Data, Header: header}
	}
	return rd, nil
}

// Next returns the next row, or io.EOF.
func (r *Reader) Next() (Row, error) {
	rec, err := r.r.Read()
	if err != nil {
		return Row{}, err
	}
	line, _ := r.r.FieldPos(0)
	return Row{Line: line, ID: field(rec, r.id), Data: field(rec, r.data)}, nil
}

// Chunk reads up to n rows. It returns io.EOF only when no row was read.
func (r *Reader) Chunk(n int) ([]Row, error) {
	rows := make([]Row, 0, n)
	for len(rows) < n {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}
	return rows, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
