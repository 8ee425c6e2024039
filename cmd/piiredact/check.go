package piiredact

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/redactyl/piiredact/internal/ctxparse"
	"github.com/redactyl/piiredact/internal/report"
	"github.com/redactyl/piiredact/internal/tui"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	checkData         string
	checkCopy         bool
	checkPolicy       string
	checkNoComposites bool
	checkDisable      string
	checkJSON         bool
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func init() {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Mask one JSON record from --data or stdin",
		Example: `  piiredact check --data '{"name": "John Doe", "phone": "9876543210"}'
  echo '{"email": "john@example.com", "address": "12 MG Road, Pune 411001"}' | piiredact check`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&checkData, "data", "", "record JSON (default: read stdin)")
	cmd.Flags().BoolVar(&checkCopy, "copy", false, "copy the redacted JSON to the clipboard")
	cmd.Flags().StringVar(&checkPolicy, "policy", "", "combination policy: threshold|mask-on-sensitive")
	cmd.Flags().BoolVar(&checkNoComposites, "no-composites", false, "disable sibling-key rules")
	cmd.Flags().StringVar(&checkDisable, "disable", "", "disable these identifiers (comma-separated names)")
	cmd.Flags().BoolVar(&checkJSON, "json", false, "print the verdict as JSON")
}

// checkOutput is the --json shape of a single verdict.
type checkOutput struct {
	Sensitive    bool              `json:"is_pii"`
	Data         rawJSON           `json:"redacted_data"`
	Redactions   []types.Redaction `json:"redactions"`
	Unclassified []string          `json:"unclassified,omitempty"`
}

type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) { return []byte(r), nil }

func runCheck(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg, err := loadConfigs()
	if err != nil {
		return err
	}
	data := checkData
	if data == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		data = string(b)
	}
	root, err := ctxparse.Parse(strings.TrimSpace(data))
	if err != nil {
		return err
	}
	proc, err := buildProcessor(processorFlags{
		policy:       checkPolicy,
		noComposites: checkNoComposites,
		disable:      checkDisable,
	}, lcfg, gcfg)
	if err != nil {
		return err
	}
	v := proc.Process(types.Record{ID: "-", Root: root})
	redacted, err := ctxparse.EncodeJSON(v.Output)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if checkJSON {
		if v.Redactions == nil {
			v.Redactions = []types.Redaction{}
		}
		if err := writeIndentedJSON(w, checkOutput{
			Sensitive:    v.Sensitive,
			Data:         rawJSON(redacted),
			Redactions:   v.Redactions,
			Unclassified: v.Unclassified,
		}); err != nil {
			return err
		}
	} else {
		nc := noColor(lcfg, gcfg)
		body := tui.PrettyJSON(redacted)
		if !nc && isTerminal(w) {
			body = tui.HighlightJSON(body)
		}
		fmt.Fprintln(w, body)
		fmt.Fprintf(w, "\nis_pii: %s\n\n", report.Verdict(v.Sensitive, nc))
		if err := report.PrintRedactions(w, v.Redactions); err != nil {
			return err
		}
	}

	if checkCopy {
		if err := writeClipboard(redacted); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "copied redacted JSON to clipboard")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
