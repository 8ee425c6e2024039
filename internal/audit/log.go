package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redactyl/piiredact/internal/report"
)

// RunRecord is one line of the audit log. It carries counts only, never
// record ids or data.
type RunRecord struct {
	Timestamp    time.Time      `json:"timestamp"`
	RunID        string         `json:"run_id"`
	Inputs       []string       `json:"inputs"`
	Outputs      []string       `json:"outputs,omitempty"`
	Policy       string         `json:"policy"`
	Records      int            `json:"records"`
	Sensitive    int            `json:"sensitive"`
	Malformed    int            `json:"malformed"`
	ByIdentifier map[string]int `json:"by_identifier,omitempty"`
	Duration     string         `json:"duration"`
	OutputDigest string         `json:"output_digest,omitempty"`
}

// NewRun builds a record from a run summary. digest is the xxhash64 of the
// output rows; zero leaves it out.
func NewRun(s report.Summary, policy string, digest uint64) RunRecord {
	r := RunRecord{
		Timestamp:    time.Now().UTC(),
		RunID:        uuid.NewString(),
		Inputs:       s.Inputs,
		Outputs:      s.Outputs,
		Policy:       policy,
		Records:      s.Records,
		Sensitive:    s.Sensitive,
		Malformed:    s.Malformed,
		ByIdentifier: s.ByIdentifier,
		Duration:     s.Duration.Round(time.Millisecond).String(),
	}
	if digest != 0 {
		r.OutputDigest = FormatDigest(digest)
	}
	return r
}

// FormatDigest renders a digest as 16 lowercase hex digits.
func FormatDigest(sum uint64) string {
	s := strconv.FormatUint(sum, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

// DefaultPath is used when no log path is configured.
const DefaultPath = ".piiredact_audit.jsonl"

type AuditLog struct {
	logPath string
}

// NewAuditLog uses path, or DefaultPath in the working directory when path
// is empty.
func NewAuditLog(path string) *AuditLog {
	if path == "" {
		path = DefaultPath
	}
	return &AuditLog{logPath: filepath.Clean(path)}
}

// Path is the log file location.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all runs, newest first. Lines that fail to decode are
// skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogRun appends record to the log, assigning a run id when missing.
func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	if dir := filepath.Dir(a.logPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create audit log dir: %w", err)
		}
	}
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the run at index, counted newest first as returned
// by LoadHistory.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = append(records[:index], records[index+1:]...)

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for i := len(records) - 1; i >= 0; i-- {
		if err := encoder.Encode(records[i]); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}
