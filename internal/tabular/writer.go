package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/redactyl/piiredact/internal/ctxparse"
	"github.com/redactyl/piiredact/internal/types"
)

// OutputHeader is the header of every output file.
var OutputHeader = []string{"record_id", "redacted_data_json", "is_pii"}

// FormatBool renders the is_pii column.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Writer writes output rows and keeps an xxhash64 digest of everything
// written, so identical runs can be compared without storing data.
type Writer struct {
	w      *csv.Writer
	digest *xxhash.Digest
	rows   int
}

// NewWriter writes the header row.
func NewWriter(w io.Writer) (*Writer, error) {
	out := &Writer{w: csv.NewWriter(w), digest: xxhash.New()}
	if err := out.write(OutputHeader); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Writer) write(rec []string) error {
	for _, f := range rec {
		_, _ = w.digest.WriteString(f)
		_, _ = w.digest.Write([]byte{0})
	}
	if err := w.w.Write(rec); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// WriteVerdict writes one verdict. Malformed records keep their original
// data cell and are never marked sensitive.
func (w *Writer) WriteVerdict(v types.Verdict) error {
	data := v.Raw
	sensitive := false
	if !v.Malformed {
		s, err := ctxparse.EncodeJSON(v.Output)
		if err != nil {
			return fmt.Errorf("record %s: %w", v.ID, err)
		}
		data, sensitive = s, v.Sensitive
	}
	w.rows++
	return w.write([]string{v.ID, data, FormatBool(sensitive)})
}

// Flush flushes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Rows is the number of records written, excluding the header.
func (w *Writer) Rows() int { return w.rows }

// Digest is the xxhash64 of all rows written so far.
func (w *Writer) Digest() uint64 { return w.digest.Sum64() }

// Result is a row of an output file.
type Result struct {
	ID        string
	Data      string
	Sensitive bool
}

// ReadResults loads an output file written by Writer.
func ReadResults(r io.Reader) ([]Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range OutputHeader {
		if _, ok := idx[c]; !ok {
			return nil, &ColumnError{Column: c, Header: header}
		}
	}
	var out []Result
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read row: %w", err)
		}
		out = append(out, Result{
			ID:        field(rec, idx["record_id"]),
			Data:      field(rec, idx["redacted_data_json"]),
			Sensitive: strings.EqualFold(field(rec, idx["is_pii"]), "true"),
		})
	}
}
