package files

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// AppendIgnore ensures each pattern is present in .gitignore under dir. It
// creates the file if missing and returns how many lines it added.
// Idempotent.
func AppendIgnore(dir string, patterns ...string) (int, error) {
	path := filepath.Join(dir, ".gitignore")
	existing := map[string]bool{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		existing[strings.TrimSpace(sc.Text())] = true
	}

	var add []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" && !existing[p] {
			existing[p] = true
			add = append(add, p)
		}
	}
	if len(add) == 0 {
		return 0, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	var b strings.Builder
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	for _, p := range add {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return 0, err
	}
	return len(add), f.Close()
}
