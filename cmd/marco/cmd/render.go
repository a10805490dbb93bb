package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/marcoeng/marco/pkg/engine"
)

var renderOutputDir string

var renderCmd = &cobra.Command{
	Use:   "render <glob...>",
	Short: "Render one or more Markdown files to HTML",
	Long: `Render expands each argument as a doublestar glob pattern (** for
recursive matching, matching the teacher's glob-discovery convention) and
renders every matched file.

Example usage:
  marco render post.md
  marco render '**/*.md' --output dist`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRenderCommand,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutputDir, "output", "o", "", "write rendered .html files under this directory instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRenderCommand(_ *cobra.Command, args []string) error {
	opts, _, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched: %s", strings.Join(args, ", "))
	}

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		html := engine.ParseAndRender(source, opts)

		if renderOutputDir == "" {
			fmt.Print(html)
			continue
		}
		if err := writeRendered(file, html); err != nil {
			return err
		}
	}
	return nil
}

// expandGlobs resolves each pattern with doublestar, deduplicating and
// sorting the result (grounded on the teacher's GlobPlugin.scanFiles).
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
				matches = []string{pattern}
			}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = struct{}{}
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func writeRendered(sourcePath, html string) error {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath)) + ".html"
	outPath := filepath.Join(renderOutputDir, base)
	if err := os.MkdirAll(renderOutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", renderOutputDir, err)
	}
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil { //nolint:gosec // rendered HTML is world-readable output
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
