package piiredact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/redactyl/piiredact/internal/config"
	"github.com/redactyl/piiredact/internal/detectors"
	"github.com/redactyl/piiredact/internal/engine"
	"github.com/redactyl/piiredact/internal/tabular"
	"gopkg.in/yaml.v3"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func pickList(cli string, local, global []string) []string {
	if l := parseCSVList(cli); len(l) > 0 {
		return l
	}
	if len(local) > 0 {
		return local
	}
	return global
}

func parseCSVList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadConfigs returns the local and global configuration. An explicit
// --config file replaces the local lookup and must exist.
func loadConfigs() (local, global config.FileConfig, err error) {
	if flagConfig != "" {
		if local, err = config.LoadFile(flagConfig); err != nil {
			return local, global, fmt.Errorf("load config: %w", err)
		}
	} else if wd, werr := os.Getwd(); werr == nil {
		if local, err = config.LoadLocal(wd); err != nil && !errors.Is(err, config.ErrNotFound) {
			return local, global, fmt.Errorf("load config: %w", err)
		}
	}
	if global, err = config.LoadGlobal(); err != nil && !errors.Is(err, config.ErrNotFound) {
		return local, global, fmt.Errorf("load global config: %w", err)
	}
	return local, global, nil
}

// noColor resolves color output: CLI > local > global.
func noColor(local, global config.FileConfig) bool {
	return pickBool(flagNoColor, local.NoColor, global.NoColor)
}

type processorFlags struct {
	policy       string
	noComposites bool
	disable      string
}

// buildProcessor assembles the registry (built-ins, custom identifiers,
// disabled names) and the processor options from flags and config.
func buildProcessor(pf processorFlags, local, global config.FileConfig) (*engine.Processor, error) {
	reg, err := detectors.Extend(detectors.Default(), config.Identifiers(local, global))
	if err != nil {
		return nil, fmt.Errorf("custom identifiers: %w", err)
	}
	if disable := pickList(pf.disable, local.Disable, global.Disable); len(disable) > 0 {
		known := map[string]bool{}
		for _, id := range reg.IDs() {
			known[id] = true
		}
		for _, c := range reg.Composites() {
			known[c.Name] = true
		}
		for _, id := range disable {
			if !known[id] {
				slog.Warn("unknown identifier in disable list", "identifier", id)
			}
		}
		reg = reg.Without(disable...)
	}

	policy, err := engine.ParsePolicy(pickString(pf.policy, local.Policy, global.Policy))
	if err != nil {
		return nil, err
	}
	noComposites := pf.noComposites
	if !noComposites {
		if local.Composites != nil {
			noComposites = !*local.Composites
		} else if global.Composites != nil {
			noComposites = !*global.Composites
		}
	}
	return engine.New(engine.Options{Registry: reg, Policy: policy, NoComposites: noComposites}), nil
}

// expandInputs resolves input arguments (paths or doublestar globs) into a
// sorted, de-duplicated file list, minus anything matching exclude.
func expandInputs(args []string, exclude []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, a := range args {
		matches, err := doublestar.FilepathGlob(a)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", a, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no input matches %q", a)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if matchAnyGlob(filepath.ToSlash(m), exclude) || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no input files")
	}
	sort.Strings(out)
	return out, nil
}

func parseGlobsList(s string) []string {
	var out []string
	for _, p := range parseCSVList(s) {
		out = append(out, p, trimGlobPrefix(p))
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}

// outputPath is <dir>/<name>_redacted.csv for an input <dir>/<name>.csv.
func outputPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + "_redacted.csv"
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// settingsKey captures everything besides the input bytes that changes a
// scan's output.
func settingsKey(proc *engine.Processor, cols tabular.Columns, specs []detectors.CustomSpec) (string, error) {
	custom, err := yaml.Marshal(specs)
	if err != nil {
		return "", err
	}
	names := proc.Registry().IDs()
	for _, c := range proc.Registry().Composites() {
		names = append(names, c.Name)
	}
	return strings.Join([]string{
		version,
		proc.Policy().String(),
		strings.Join(names, ","),
		cols.ID,
		cols.Data,
		string(custom),
	}, "\x00"), nil
}
