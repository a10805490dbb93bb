package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcoeng/marco/pkg/htmlrender"
)

func TestLoadConfigDefaultsWithNoPath(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	opts, cacheOpts, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := htmlrender.DefaultOptions()
	if opts != want {
		t.Fatalf("got %+v, want defaults %+v", opts, want)
	}
	if cacheOpts.MaxDocuments != 256 || cacheOpts.MaxRenders != 512 {
		t.Fatalf("got %+v, want default cache sizes", cacheOpts)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marco.toml")
	content := "theme_mode = \"dark\"\nhtml_passthrough = false\nmax_renders = 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	opts, cacheOpts, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.ThemeMode != htmlrender.ThemeDark {
		t.Fatalf("theme_mode = %v, want dark", opts.ThemeMode)
	}
	if opts.HTMLPassthrough {
		t.Fatalf("html_passthrough = true, want false")
	}
	if cacheOpts.MaxRenders != 10 {
		t.Fatalf("max_renders = %d, want 10", cacheOpts.MaxRenders)
	}
	// Unset fields keep their default.
	if opts.Tagfilter != htmlrender.DefaultOptions().Tagfilter {
		t.Fatalf("tagfilter should keep its default when unset in the file")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marco.yaml")
	content := "theme_mode: dark\nexternal_link_target: _blank\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	opts, _, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.ThemeMode != htmlrender.ThemeDark {
		t.Fatalf("theme_mode = %v, want dark", opts.ThemeMode)
	}
	if opts.ExternalLinkTarget != htmlrender.TargetBlank {
		t.Fatalf("external_link_target = %v, want _blank", opts.ExternalLinkTarget)
	}
}

func TestDiscoverConfigFindsTOMLFirst(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	os.Chdir(dir)

	os.WriteFile("marco.toml", []byte(""), 0o644)
	os.WriteFile("marco.yaml", []byte(""), 0o644)

	if got := discoverConfig(); got != "marco.toml" {
		t.Fatalf("discoverConfig() = %q, want marco.toml", got)
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	_, _, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
