package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redactyl/piiredact/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAndLoadHistory(t *testing.T) {
	log := NewAuditLog(filepath.Join(t.TempDir(), "logs", "audit.jsonl"))
	for i, in := range []string{"a.csv", "b.csv", "c.csv"} {
		s := report.Summary{Inputs: []string{in}, Records: i + 1}
		require.NoError(t, log.LogRun(NewRun(s, "threshold", uint64(i+1))))
	}

	runs, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c.csv"}, runs[0].Inputs)
	assert.Equal(t, 3, runs[0].Records)
	assert.Equal(t, "0000000000000003", runs[0].OutputDigest)
	_, err = uuid.Parse(runs[0].RunID)
	assert.NoError(t, err)

	info, err := os.Stat(log.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLogRunFillsDefaults(t *testing.T) {
	log := NewAuditLog(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, log.LogRun(RunRecord{Records: 1}))
	runs, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].RunID)
	assert.WithinDuration(t, time.Now(), runs[0].Timestamp, time.Minute)
}

func TestDeleteRecord(t *testing.T) {
	log := NewAuditLog(filepath.Join(t.TempDir(), "audit.jsonl"))
	for _, in := range []string{"a", "b", "c"} {
		require.NoError(t, log.LogRun(RunRecord{Inputs: []string{in}}))
	}
	require.NoError(t, log.DeleteRecord(1))

	runs, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].Inputs[0])
	assert.Equal(t, "a", runs[1].Inputs[0])

	assert.Error(t, log.DeleteRecord(5))
}

func TestMissingLog(t *testing.T) {
	_, err := NewAuditLog(filepath.Join(t.TempDir(), "none.jsonl")).LoadHistory()
	assert.Error(t, err)
}
