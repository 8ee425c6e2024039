package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendIgnore_IdempotentAndCreates(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".gitignore")
	n, err := AppendIgnore(dir, ".piiredact_cache.json", ".piiredact_audit.jsonl")
	if err != nil {
		t.Fatalf("AppendIgnore: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 lines added, got %d", n)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != ".piiredact_cache.json\n.piiredact_audit.jsonl\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}

	n, err = AppendIgnore(dir, ".piiredact_cache.json")
	if err != nil {
		t.Fatalf("AppendIgnore second: %v", err)
	}
	b2, _ := os.ReadFile(p)
	if n != 0 || strings.Count(string(b2), ".piiredact_cache.json") != 1 {
		t.Fatalf("expected single occurrence, got: %q", string(b2))
	}
}

func TestAppendIgnore_MissingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(p, []byte("dist/"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := AppendIgnore(dir, "*.csv", "dist/"); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "dist/\n*.csv\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
}
