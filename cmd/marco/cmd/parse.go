package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcoeng/marco/pkg/ast"
	"github.com/marcoeng/marco/pkg/engine"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Markdown file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseCommand,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParseCommand(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	doc := engine.Parse(source)
	if doc.Repairs > 0 {
		fmt.Fprintf(os.Stderr, "warning: repaired %d invalid UTF-8 sequence(s), first at byte %d\n",
			doc.Repairs, doc.FirstRepairOffset)
	}
	dumpNode(os.Stdout, doc.Root, 0)
	return nil
}

// dumpNode prints an indented one-line-per-node tree, in the spirit of the
// teacher's goldmark-derived ast.Dump usage in pkg/plugins, adapted to this
// engine's own Node shape rather than a foreign ast.Node.
func dumpNode(w io.Writer, n *ast.Node, depth int) {
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), n.Kind, nodeDetail(n))
	for _, c := range n.Children {
		dumpNode(w, c, depth+1)
	}
}

func nodeDetail(n *ast.Node) string {
	switch n.Kind {
	case ast.KindHeading:
		return fmt.Sprintf(" level=%d", n.Level)
	case ast.KindText:
		return fmt.Sprintf(" %q", n.Text)
	case ast.KindCodeSpan:
		return fmt.Sprintf(" %q", n.Text)
	case ast.KindCodeBlock:
		return fmt.Sprintf(" lang=%q", n.Lang)
	case ast.KindLink, ast.KindImage:
		return fmt.Sprintf(" url=%q title=%q", n.URL, n.Title)
	case ast.KindAdmonition:
		return fmt.Sprintf(" kind=%q style=%s", n.AdmonitionKind, n.AdmonitionStyle)
	case ast.KindList:
		return fmt.Sprintf(" ordered=%v tight=%v", n.Ordered, n.Tight)
	case ast.KindTaskCheckbox, ast.KindTaskCheckboxInline:
		return fmt.Sprintf(" checked=%v", n.Checked)
	default:
		return ""
	}
}
