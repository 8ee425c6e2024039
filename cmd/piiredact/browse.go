package piiredact

import (
	"errors"
	"fmt"
	"os"

	"github.com/redactyl/piiredact/internal/cache"
	"github.com/redactyl/piiredact/internal/tabular"
	"github.com/redactyl/piiredact/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse [output.csv]",
		Short: "Browse a redacted output file interactively (default: the last scan's first output)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := browseTarget(args)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open output: %w", err)
			}
			defer f.Close()
			results, err := tabular.ReadResults(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return tui.Run(results, path)
		},
	}
	rootCmd.AddCommand(cmd)
}

func browseTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	db, err := cache.Load(cache.DefaultPath)
	if err != nil || len(db.LastOutputs) == 0 {
		return "", errors.New("no previous scan found; pass an output file")
	}
	return db.LastOutputs[0], nil
}
