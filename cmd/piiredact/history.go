package piiredact

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/redactyl/piiredact/internal/audit"
	"github.com/redactyl/piiredact/internal/report"
	"github.com/spf13/cobra"
)

var (
	historyLog      string
	historyDelete   int
	historyMarkdown bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scan runs from the audit log",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().StringVar(&historyLog, "audit-log", "", "audit log path (default "+audit.DefaultPath+")")
	cmd.Flags().IntVar(&historyDelete, "delete", 0, "delete the run at this 1-based position (newest first)")
	cmd.Flags().BoolVar(&historyMarkdown, "markdown", false, "print a markdown table")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg, err := loadConfigs()
	if err != nil {
		return err
	}
	log := audit.NewAuditLog(pickString(historyLog, lcfg.AuditLog, gcfg.AuditLog))
	w := cmd.OutOrStdout()

	if historyDelete > 0 {
		if err := log.DeleteRecord(historyDelete - 1); err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted run %d from %s\n", historyDelete, log.Path())
		return nil
	}

	runs, err := log.LoadHistory()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(w, "No runs recorded in %s\n", log.Path())
		return nil
	}
	rows := make([]report.Row, len(runs))
	for i, r := range runs {
		rows[i] = report.Row{
			strconv.Itoa(i + 1),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			shortID(r.RunID),
			strings.Join(r.Inputs, ","),
			r.Policy,
			strconv.Itoa(r.Records),
			strconv.Itoa(r.Sensitive),
			strconv.Itoa(r.Malformed),
			r.Duration,
			r.OutputDigest,
		}
	}
	header := []string{"#", "TIME", "RUN", "INPUTS", "POLICY", "RECORDS", "PII", "MALFORMED", "DURATION", "DIGEST"}
	return report.PrintRows(w, header, rows, historyMarkdown)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
