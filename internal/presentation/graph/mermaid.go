package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/picker/pkg/machine"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	CurrentState string
}

// GenerateMermaid produces a Mermaid state diagram from explored edges.
// Probes that share source, target and commands are folded into one
// transition whose label lists them all. Transitions emitting End are drawn
// back to idle like any other; the label shows the commands after the slash.
func GenerateMermaid(edges []machine.Edge, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString("    [*] --> idle\n")

	type key struct{ from, to, cmds string }
	var order []key
	probes := make(map[key][]string)

	for _, e := range edges {
		k := key{sanitizeMermaidID(e.FromName), sanitizeMermaidID(e.ToName), e.Commands.String()}
		if _, seen := probes[k]; !seen {
			order = append(order, k)
		}
		probes[k] = append(probes[k], e.Probe)
	}

	for _, k := range order {
		label := strings.Join(probes[k], ", ")
		if k.cmds != "[]" {
			label += " / " + strings.Trim(k.cmds, "[]")
		}
		// Mermaid reserves ':' inside transition labels.
		label = strings.ReplaceAll(label, ":", " ")
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n", k.from, k.to, label))
	}

	// Apply Overlay Styles
	if overlay != nil && overlay.CurrentState != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(overlay.CurrentState)))
	}

	return sb.String()
}

// GenerateMermaidForKind explores a registered machine and renders it.
func GenerateMermaidForKind(kind machine.Kind, overlay *GraphOverlay) (string, error) {
	edges, err := machine.ExploreKind(kind)
	if err != nil {
		return "", err
	}
	return GenerateMermaid(edges, overlay), nil
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
