package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcoeng/marco/pkg/engine"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <file>",
	Short: "Print the editor highlight spans for a Markdown file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightCommand,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
}

// highlightRecord is the JSON shape emitted for one computed highlight --
// a flattened view of highlight.Highlight for easy consumption by an editor
// process reading marco's stdout.
type highlightRecord struct {
	Tag   string `json:"tag"`
	Start int    `json:"start_offset"`
	End   int    `json:"end_offset"`
}

func runHighlightCommand(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	doc := engine.Parse(source)
	spans := engine.ComputeHighlights(doc)

	records := make([]highlightRecord, len(spans))
	for i, h := range spans {
		records[i] = highlightRecord{
			Tag:   string(h.Tag),
			Start: h.Span.StartOffset,
			End:   h.Span.EndOffset,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
