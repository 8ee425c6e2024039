package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redactyl/piiredact/internal/detectors"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for piiredact.
// Pointer fields distinguish "unset" from zero values so that CLI flags,
// the local file and the global file can be layered.
type FileConfig struct {
	Threads    *int     `yaml:"threads,omitempty"`
	Policy     *string  `yaml:"policy,omitempty"`
	Composites *bool    `yaml:"composites,omitempty"`
	Disable    []string `yaml:"disable,omitempty"`
	DataColumn *string  `yaml:"data_column,omitempty"`
	IDColumn   *string  `yaml:"id_column,omitempty"`
	Output     *string  `yaml:"output,omitempty"`
	AuditLog   *string  `yaml:"audit_log,omitempty"`
	NoColor    *bool    `yaml:"no_color,omitempty"`

	// Identifiers extend the built-in registry.
	Identifiers []detectors.CustomSpec `yaml:"identifiers,omitempty"`
}

// ErrNotFound is returned when no config file exists at the searched
// locations. Callers usually ignore it.
var ErrNotFound = errors.New("no config file")

// LocalNames are searched in order in the working directory.
var LocalNames = []string{".piiredact.yml", ".piiredact.yaml", "piiredact.yml", "piiredact.yaml"}

// LoadFile reads a YAML config file from the provided path. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches dir for one of LocalNames.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNotFound
}

// GlobalPath is $XDG_CONFIG_HOME/piiredact/config.yml, falling back to
// ~/.config. It is empty when neither can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "piiredact", "config.yml")
}

// LoadGlobal loads the global config file.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, ErrNotFound
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// Identifiers returns the custom identifiers of local followed by those of
// global that local does not redefine.
func Identifiers(local, global FileConfig) []detectors.CustomSpec {
	out := append([]detectors.CustomSpec(nil), local.Identifiers...)
	seen := map[string]bool{}
	for _, s := range local.Identifiers {
		seen[s.Name] = true
	}
	for _, s := range global.Identifiers {
		if !seen[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// Sample is the configuration written by `piiredact config init`.
func Sample() FileConfig {
	threads := 0
	policy := "threshold"
	composites := true
	return FileConfig{
		Threads:    &threads,
		Policy:     &policy,
		Composites: &composites,
		Identifiers: []detectors.CustomSpec{{
			Name:      "employee_id",
			Kind:      "standalone",
			Category:  "employee",
			Pattern:   `\bEMP\d{6}\b`,
			Mask:      "keep-first",
			Hints:     []string{"employee", "emp_id"},
			MinLength: 9,
		}},
	}
}
