package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/marcoeng/marco/pkg/cache"
	"github.com/marcoeng/marco/pkg/engine"
	"github.com/marcoeng/marco/pkg/htmlrender"
)

var watchOutputDir string

var watchCmd = &cobra.Command{
	Use:   "watch <glob...>",
	Short: "Re-render matched Markdown files whenever they change",
	Long: `watch resolves each argument as a doublestar glob, watches the
containing directories with fsnotify, and re-renders a changed file through
the engine's content-addressed cache on every write.

Each rebuild is a whole-file reparse -- incremental reparse is out of
scope (spec §1 Non-goals) -- but a burst of events for one save (editors
that write via temp-file-then-rename fire several) collapses to one
single-flighted rebuild per content hash, since an unchanged hash is
served straight from cache.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatchCommand,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputDir, "output", "o", "", "write rendered .html files under this directory instead of stdout")
	rootCmd.AddCommand(watchCmd)
}

func runWatchCommand(_ *cobra.Command, args []string) error {
	opts, cacheOpts, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	c := cache.New(cacheOpts)

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched: %s", strings.Join(args, ", "))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Dir(f)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	matched := make(map[string]bool, len(files))
	for _, f := range files {
		matched[f] = true
		rebuildFile(c, f, opts)
	}
	fmt.Fprintf(os.Stderr, "watching %d file(s), ctrl-c to stop\n", len(files))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !matched[event.Name] {
				continue
			}
			rebuildFile(c, event.Name, opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func rebuildFile(c *cache.Cache, file string, opts htmlrender.Options) {
	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", file, err)
		return
	}

	start := time.Now()
	html := engine.RenderWithCache(c, source, opts)
	elapsed := time.Since(start)

	if watchOutputDir == "" {
		fmt.Printf("--- %s (%s) ---\n%s", file, elapsed, html)
		return
	}
	if err := writeRendered(file, html); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
