package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Prefs holds browser preferences that persist across sessions.
type Prefs struct {
	// SensitiveOnly hides rows that were not flagged as PII.
	SensitiveOnly bool `json:"sensitive_only"`
	// Highlight enables syntax colouring of the detail pane.
	Highlight bool `json:"highlight"`
}

func DefaultPrefs() Prefs {
	return Prefs{Highlight: true}
}

func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".piiredact", "tui_prefs.json"), nil
}

// LoadPrefs loads preferences from disk, returning defaults if not found.
func LoadPrefs() Prefs {
	prefs := DefaultPrefs()
	path, err := prefsPath()
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	_ = json.Unmarshal(data, &prefs) //nolint:errcheck // fall back to defaults
	return prefs
}

// SavePrefs persists preferences to disk.
func SavePrefs(prefs Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
