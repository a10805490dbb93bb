package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandGlobsMatchesRecursively(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	os.WriteFile(filepath.Join(dir, "a.md"), []byte("# a\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "sub", "b.md"), []byte("# b\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "c.txt"), []byte("not markdown\n"), 0o644)

	files, err := expandGlobs([]string{filepath.Join(dir, "**/*.md")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %v, want 2 matches", files)
	}
}

func TestExpandGlobsDeduplicatesOverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.md"), []byte("# a\n"), 0o644)

	pattern := filepath.Join(dir, "*.md")
	files, err := expandGlobs([]string{pattern, pattern})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %v, want exactly one deduplicated match", files)
	}
}

func TestExpandGlobsSingleFileWithNoGlobMeta(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.md")
	os.WriteFile(path, []byte("# p\n"), 0o644)

	files, err := expandGlobs([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("got %v, want [%s]", files, path)
	}
}

func TestExpandGlobsNoMatchesReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	files, err := expandGlobs([]string{filepath.Join(dir, "*.md")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("got %v, want no matches", files)
	}
}
