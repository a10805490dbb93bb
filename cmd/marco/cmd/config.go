package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/marcoeng/marco/pkg/cache"
	"github.com/marcoeng/marco/pkg/htmlrender"
)

// fileConfig is the on-disk shape cmd/marco loads, TOML by default with a
// YAML fallback keyed off the file extension (the teacher's pkg/config
// editor_toml.go/editor_yaml.go split, reduced to this engine's two knobs:
// render options and cache tier sizes).
type fileConfig struct {
	ThemeMode          string `toml:"theme_mode" yaml:"theme_mode"`
	HardBreakHTML      string `toml:"hard_break_html" yaml:"hard_break_html"`
	ExternalLinkTarget string `toml:"external_link_target" yaml:"external_link_target"`
	HTMLPassthrough    *bool  `toml:"html_passthrough" yaml:"html_passthrough"`
	Tagfilter          *bool  `toml:"tagfilter" yaml:"tagfilter"`

	MaxDocuments int `toml:"max_documents" yaml:"max_documents"`
	MaxRenders   int `toml:"max_renders" yaml:"max_renders"`
}

// loadConfig discovers and parses a marco config file, merging it onto the
// engine defaults. An empty path first auto-discovers marco.toml/marco.yaml/
// marco.yml in the current directory (discoverConfig); when none exists the
// defaults are returned rather than an error: a config file is an optional
// override, not a requirement (spec §6 treats htmlrender.Options as already
// fully defaulted).
func loadConfig(path string) (htmlrender.Options, cache.Options, error) {
	opts := htmlrender.DefaultOptions()
	cacheOpts := cache.DefaultOptions()

	if path == "" {
		path = discoverConfig()
	}
	if path == "" {
		return opts, cacheOpts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, cacheOpts, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return opts, cacheOpts, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return opts, cacheOpts, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	}

	applyFileConfig(&opts, &cacheOpts, fc)
	return opts, cacheOpts, nil
}

func applyFileConfig(opts *htmlrender.Options, cacheOpts *cache.Options, fc fileConfig) {
	if fc.ThemeMode != "" {
		opts.ThemeMode = htmlrender.ThemeMode(fc.ThemeMode)
	}
	if fc.HardBreakHTML != "" {
		opts.HardBreakHTML = fc.HardBreakHTML
	}
	if fc.ExternalLinkTarget != "" {
		opts.ExternalLinkTarget = htmlrender.ExternalLinkTarget(fc.ExternalLinkTarget)
	}
	if fc.HTMLPassthrough != nil {
		opts.HTMLPassthrough = *fc.HTMLPassthrough
	}
	if fc.Tagfilter != nil {
		opts.Tagfilter = *fc.Tagfilter
	}
	if fc.MaxDocuments > 0 {
		cacheOpts.MaxDocuments = fc.MaxDocuments
	}
	if fc.MaxRenders > 0 {
		cacheOpts.MaxRenders = fc.MaxRenders
	}
}

// discoverConfig looks for marco.toml then marco.yaml/marco.yml in the
// current directory, matching the teacher's config.Discover auto-discovery
// convention (simplified to the engine's own two candidate filenames).
func discoverConfig() string {
	for _, name := range []string{"marco.toml", "marco.yaml", "marco.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
