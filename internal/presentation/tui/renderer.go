package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/picker/pkg/machine"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		return r.Render(markdown)
	}
}

// DescribeMarkdown renders a machine description and its transitions as a
// markdown document.
func DescribeMarkdown(desc machine.Description, edges []machine.Edge) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", desc.Kind)
	fmt.Fprintf(&sb, "%s\n\n", desc.Summary)
	fmt.Fprintf(&sb, "Selection type: **%s**\n\n", desc.SelectionType)

	sb.WriteString("| From | Input | Commands | To |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, e := range edges {
		cmds := strings.Trim(e.Commands.String(), "[]")
		if cmds == "" {
			cmds = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", e.FromName, e.Probe, cmds, e.ToName)
	}
	return sb.String()
}
