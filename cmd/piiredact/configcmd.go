package piiredact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redactyl/piiredact/internal/audit"
	"github.com/redactyl/piiredact/internal/cache"
	"github.com/redactyl/piiredact/internal/config"
	"github.com/redactyl/piiredact/internal/engine"
	"github.com/redactyl/piiredact/internal/files"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput     string
	cfgForce      bool
	cfgPolicy     string
	cfgThreads    int
	cfgDisable    string
	cfgNoColor    bool
	cfgNoExamples bool
	cfgAddIgnore  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .piiredact.yml with default options and an example custom identifier",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".piiredact.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&cfgPolicy, "policy", "threshold", "combination policy: threshold|mask-on-sensitive")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated identifier names to disable")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgNoExamples, "no-examples", false, "leave out the example custom identifier")
	initCmd.Flags().BoolVar(&cfgAddIgnore, "add-ignore", false, "add the scan cache and audit log to .gitignore")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the global config location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.GlobalPath())
		},
	}
	cfgCmd.AddCommand(pathCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	policy, err := engine.ParsePolicy(cfgPolicy)
	if err != nil {
		return err
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", cfgOutput)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	fc := config.Sample()
	fc.Policy = strPtr(policy.String())
	fc.Threads = intPtr(cfgThreads)
	fc.Disable = parseCSVList(cfgDisable)
	if cfgNoColor {
		fc.NoColor = boolPtr(true)
	}
	if cfgNoExamples {
		fc.Identifiers = nil
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)

	if cfgAddIgnore {
		n, err := files.AppendIgnore(filepath.Dir(cfgOutput), cache.DefaultPath, audit.DefaultPath)
		if err != nil {
			return fmt.Errorf("update .gitignore: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d entries to .gitignore\n", n)
	}
	return nil
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
