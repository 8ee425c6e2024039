package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/redactyl/piiredact/internal/types"
)

type PrintOptions struct {
	NoColor bool
}

// PrintTable renders the run summary: totals, then masked spans per
// identifier.
func PrintTable(w io.Writer, s Summary, opts PrintOptions) error {
	if s.Records == 0 {
		fmt.Fprintln(w, "No records processed")
		return nil
	}
	totals := tablewriter.NewWriter(w)
	totals.Header("RECORDS", "SENSITIVE", "CLEAN", "MALFORMED", "UNCLASSIFIED FIELDS")
	clean := s.Records - s.Sensitive - s.Malformed
	if err := totals.Append([]string{
		strconv.Itoa(s.Records),
		paint(strconv.Itoa(s.Sensitive), red, opts.NoColor || s.Sensitive == 0),
		strconv.Itoa(clean),
		paint(strconv.Itoa(s.Malformed), yellow, opts.NoColor || s.Malformed == 0),
		strconv.Itoa(s.Unclassified),
	}); err != nil {
		return err
	}
	if err := totals.Render(); err != nil {
		return err
	}

	if ids := s.Identifiers(); len(ids) > 0 {
		fmt.Fprintln(w)
		byID := tablewriter.NewWriter(w)
		byID.Header("IDENTIFIER", "MASKED")
		for _, id := range ids {
			if err := byID.Append([]string{id, strconv.Itoa(s.ByIdentifier[id])}); err != nil {
				return err
			}
		}
		if err := byID.Render(); err != nil {
			return err
		}
	}
	if s.Duration > 0 {
		fmt.Fprintf(w, "\nDuration: %.2fs\n", s.Duration.Seconds())
	}
	return nil
}

// PrintRedactions lists the masked spans of one record.
func PrintRedactions(w io.Writer, rs []types.Redaction) error {
	if len(rs) == 0 {
		fmt.Fprintln(w, "Nothing masked")
		return nil
	}
	t := tablewriter.NewWriter(w)
	t.Header("PATH", "IDENTIFIER", "CATEGORY", "KIND")
	for _, r := range rs {
		if err := t.Append([]string{r.Path, r.Identifier, string(r.Category), string(r.Kind)}); err != nil {
			return err
		}
	}
	return t.Render()
}

// Verdict renders the is_pii flag for terminals.
func Verdict(sensitive, noColor bool) string {
	if sensitive {
		return paint("PII", red, noColor)
	}
	return paint("clean", green, noColor)
}

const (
	red    = "31"
	green  = "32"
	yellow = "33"
)

func paint(s, color string, noColor bool) string {
	if noColor {
		return s
	}
	return "\x1b[" + color + "m" + s + "\x1b[0m"
}

// Row is a generic table row used by list commands.
type Row []string

// PrintRows renders header and rows as a table, or as a GitHub markdown
// table when markdown is set.
func PrintRows(w io.Writer, header []string, rows []Row, markdown bool) error {
	if markdown {
		fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))
		seps := make([]string, len(header))
		for i := range seps {
			seps[i] = "---"
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
		for _, r := range rows {
			cells := make([]string, len(r))
			for i, c := range r {
				cells[i] = strings.ReplaceAll(c, "|", `\|`)
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
		}
		return nil
	}
	t := tablewriter.NewWriter(w)
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = strings.ToUpper(h)
	}
	t.Header(hdr...)
	for _, r := range rows {
		if err := t.Append([]string(r)); err != nil {
			return err
		}
	}
	return t.Render()
}
