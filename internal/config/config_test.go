package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redactyl/piiredact/internal/detectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "piiredact.yaml", `
threads: 4
policy: mask-on-sensitive
composites: false
disable: [ip_address, device_id]
data_column: payload
identifiers:
  - name: employee_id
    pattern: '\bEMP\d{6}\b'
    kind: standalone
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Threads)
	assert.Equal(t, 4, *cfg.Threads)
	assert.Equal(t, "mask-on-sensitive", *cfg.Policy)
	assert.False(t, *cfg.Composites)
	assert.Equal(t, []string{"ip_address", "device_id"}, cfg.Disable)
	assert.Equal(t, "payload", *cfg.DataColumn)
	assert.Nil(t, cfg.IDColumn)
	require.Len(t, cfg.Identifiers, 1)
	assert.Equal(t, "employee_id", cfg.Identifiers[0].Name)
}

func TestLoadFile_UnknownKey(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "c.yml", "thread: 4\n")
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestLoadFile_Empty(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "c.yml", "")
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Nil(t, cfg.Threads)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "piiredact.yaml", "threads: 1\n")
	writeTemp(t, dir, ".piiredact.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, *cfg.Threads)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadGlobal_XDG(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "piiredact"), 0o755))
	writeTemp(t, filepath.Join(dir, "piiredact"), "config.yml", "threads: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, 9, *cfg.Threads)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.Error(t, err)
}

func TestIdentifiersLocalWins(t *testing.T) {
	local := FileConfig{Identifiers: []detectors.CustomSpec{{Name: "a", Pattern: "x"}}}
	global := FileConfig{Identifiers: []detectors.CustomSpec{{Name: "a", Pattern: "y"}, {Name: "b", Pattern: "z"}}}
	got := Identifiers(local, global)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Pattern)
	assert.Equal(t, "b", got[1].Name)
}

func TestSampleRoundTrips(t *testing.T) {
	b, err := yaml.Marshal(Sample())
	require.NoError(t, err)
	p := writeTemp(t, t.TempDir(), ".piiredact.yml", string(b))
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "threshold", *cfg.Policy)

	_, err = detectors.Extend(detectors.Default(), cfg.Identifiers)
	assert.NoError(t, err)
}
