package piiredact

import (
	"strings"

	"github.com/redactyl/piiredact/internal/report"
	"github.com/spf13/cobra"
)

var flagMarkdown bool

func init() {
	cmd := &cobra.Command{
		Use:     "identifiers",
		Aliases: []string{"detectors"},
		Short:   "List identifier definitions, including custom ones from config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lcfg, gcfg, err := loadConfigs()
			if err != nil {
				return err
			}
			proc, err := buildProcessor(processorFlags{}, lcfg, gcfg)
			if err != nil {
				return err
			}
			reg := proc.Registry()
			var rows []report.Row
			for _, d := range reg.Lookup() {
				rows = append(rows, report.Row{d.Name, string(d.Kind), string(d.Category), strings.Join(d.Hints, ",")})
			}
			for _, c := range reg.Composites() {
				rows = append(rows, report.Row{c.Name, string(c.Kind), string(c.Category), "keys: " + strings.Join(c.Keys, "+")})
			}
			return report.PrintRows(cmd.OutOrStdout(), []string{"NAME", "KIND", "CATEGORY", "HINTS / KEYS"}, rows, flagMarkdown)
		},
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "print a markdown table")
}
