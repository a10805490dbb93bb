// Package cmd provides the CLI commands for marco.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the config file specified via --config flag.
	cfgFile string

	// verbose enables verbose output.
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "marco",
	Short: "A CommonMark+GFM+Marco Markdown engine",
	Long: `marco parses and renders Markdown documents using CommonMark, GFM,
and Marco's own extensions (headerless pipe tables, mark/sup/sub spans,
emoji shortcodes, platform mentions, inline task checkboxes).

Example usage:
  marco render post.md             # Render a file to HTML
  marco parse post.md              # Print the parsed AST
  marco highlight post.md          # Print editor highlight spans
  marco cache-stats post.md        # Show cache hit/miss counters after a warm run
  marco watch 'content/**/*.md'    # Re-render on file change`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: auto-discover marco.toml/marco.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	if verbose {
		fmt.Fprintln(os.Stderr, "verbose mode enabled")
	}
}
