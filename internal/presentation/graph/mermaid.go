// Package graph renders the indexed design tree as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
)

// Overlay marks workflow progress on the graph.
type Overlay struct {
	// Next is the node the cursor points at; empty when done.
	Next string
}

// GenerateMermaid produces a Mermaid flowchart of state's tree in breadth-first order.
// Shapes follow the node's content:
// - Root: ((Circle))
// - TEXT: ([Stadium])
// - Image paint: [/Parallelogram/]
// - Default: [Rectangle]
// Decided nodes show their component base under the name. With an overlay,
// nodes are classed decided, pending or next.
func GenerateMermaid(state *domain.State, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range state.BFS {
		rec, err := state.Node(id)
		if err != nil {
			continue
		}
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == state.RootID:
			opener, closer = "((", "))"
		case rec.Facts.Text != nil:
			opener, closer = "([", "])"
		case rec.Facts.Image != nil:
			opener, closer = "[/", "/]"
		}

		label := escapeLabel(rec.Name)
		if d, ok := state.Decision(id); ok {
			if base := d.Base(); base != "" {
				label += "<br/>" + escapeLabel(base)
			}
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		for _, child := range rec.ChildIDs {
			if _, ok := state.Nodes[child]; !ok {
				continue
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, sanitizeMermaidID(child))
		}
	}

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Progress\n")
	sb.WriteString("    classDef decided fill:#e8f5e9,stroke:#2e7d32,color:#000;\n")
	sb.WriteString("    classDef pending fill:#fafafa,stroke:#9e9e9e,stroke-dasharray:3 3,color:#000;\n")
	sb.WriteString("    classDef next fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	var decided, pending []string
	for _, id := range state.BFS {
		if id == overlay.Next {
			continue
		}
		if _, ok := state.Decisions[id]; ok {
			decided = append(decided, sanitizeMermaidID(id))
		} else {
			pending = append(pending, sanitizeMermaidID(id))
		}
	}
	if len(decided) > 0 {
		fmt.Fprintf(&sb, "    class %s decided;\n", strings.Join(decided, ","))
	}
	if len(pending) > 0 {
		fmt.Fprintf(&sb, "    class %s pending;\n", strings.Join(pending, ","))
	}
	if overlay.Next != "" {
		fmt.Fprintf(&sb, "    class %s next;\n", sanitizeMermaidID(overlay.Next))
	}
	return sb.String()
}

// sanitizeMermaidID maps design ids like "12:34" or "I1;2" to Mermaid-safe identifiers.
func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(":", "_", ";", "_", ".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return "n" + r.Replace(id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
