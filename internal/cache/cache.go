package cache

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/redactyl/piiredact/internal/report"
)

// DefaultPath is the cache location in the working directory.
const DefaultPath = ".piiredact_cache.json"

// Entry remembers the last run over one input file.
type Entry struct {
	// Fingerprint covers the input bytes and every setting that changes
	// the output.
	Fingerprint string `json:"fingerprint"`
	Output      string `json:"output"`
	// FileDigest is the xxhash of the output file bytes.
	FileDigest string `json:"file_digest"`
	// RowDigest is the output row digest recorded in the audit log.
	RowDigest uint64         `json:"row_digest"`
	Summary   report.Summary `json:"summary"`
}

type DB struct {
	// Input path -> last run
	Entries map[string]Entry `json:"entries"`
	// LastOutputs are the outputs of the most recent scan, for browse.
	LastOutputs []string `json:"last_outputs,omitempty"`
}

// Load reads the cache at path. On any error it returns an empty,
// usable DB along with the error.
func Load(path string) (DB, error) {
	var db DB
	f, err := os.ReadFile(path)
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(path string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// FileDigest hashes the contents of path.
func FileDigest(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return hexDigest(xxhash.Sum64(b)), nil
}

// Fingerprint hashes an input file together with a settings key.
func Fingerprint(path, settings string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	d := xxhash.New()
	_, _ = d.Write(b)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(settings)
	return hexDigest(d.Sum64()), nil
}

// Fresh reports whether e still describes the output of input under
// fingerprint: the fingerprint matches and the output file is untouched.
func (db DB) Fresh(input, fingerprint string) (Entry, bool) {
	e, ok := db.Entries[input]
	if !ok || e.Fingerprint != fingerprint {
		return Entry{}, false
	}
	got, err := FileDigest(e.Output)
	if err != nil || got != e.FileDigest {
		return Entry{}, false
	}
	return e, true
}

func hexDigest(sum uint64) string {
	const hex = "0123456789abcdef"
	var b [16]byte
	for i := 15; i >= 0; i-- {
		b[i] = hex[sum&0xf]
		sum >>= 4
	}
	return string(b[:])
}
