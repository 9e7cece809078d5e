// Package markdown renders query results as Markdown for people reading a terminal.
package markdown

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
)

// Skeleton renders a skeleton tree as a nested list.
func Skeleton(res *domain.SkeletonResult) string {
	var sb strings.Builder
	sb.WriteString("# Skeleton\n\n")
	if res == nil || res.Node == nil {
		sb.WriteString("_empty_\n")
		return sb.String()
	}
	writeTree(&sb, res.Node, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, n *domain.Skeleton, indent int) {
	fmt.Fprintf(sb, "%s- %s\n", strings.Repeat("  ", indent), skeletonLine(n))
	for _, c := range n.Children {
		writeTree(sb, c, indent+1)
	}
}

func skeletonLine(n *domain.Skeleton) string {
	line := fmt.Sprintf("**%s** `%s` %s", escape(n.Name), n.ID, n.Type)
	if n.ChildCount > 0 {
		line += fmt.Sprintf(" (%d children)", n.ChildCount)
	}
	return line
}

// Next renders the context bundle for one node.
func Next(res *domain.NextResult) string {
	var sb strings.Builder
	if res == nil || res.Done {
		sb.WriteString("# Done\n\nEvery node has a decision.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "# Next: %s\n\n", escape(res.Node.Name))
	fmt.Fprintf(&sb, "- **Node**: `%s` %s, depth %d\n", res.Node.ID, res.Node.Type, res.Node.Depth)
	fmt.Fprintf(&sb, "- **UI system**: %s\n", res.UISystem)
	if res.Parent != nil {
		parent := fmt.Sprintf("**%s** `%s`", escape(res.Parent.Name), res.Parent.ID)
		if base := res.ParentDecision.Base(); base != "" {
			parent += " as `" + base + "`"
		}
		fmt.Fprintf(&sb, "- **Parent**: %s\n", parent)
	} else {
		sb.WriteString("- **Parent**: none (root)\n")
	}

	req := res.Requirements
	if req.MustUseComponentBase != "" || len(req.AllowedComponentBases) > 0 || req.Hint != "" {
		sb.WriteString("\n## Requirements\n\n")
		if req.MustUseComponentBase != "" {
			fmt.Fprintf(&sb, "- Must use `%s`\n", req.MustUseComponentBase)
		}
		if len(req.AllowedComponentBases) > 0 {
			fmt.Fprintf(&sb, "- Allowed: %s\n", codeList(req.AllowedComponentBases))
		}
		if req.Role != "" {
			fmt.Fprintf(&sb, "- Role: %s\n", req.Role)
		}
		if req.Hint != "" {
			fmt.Fprintf(&sb, "- %s\n", req.Hint)
		}
	}

	h := res.Hints
	if h.ComponentHint != nil || h.PinsCandidate != "" || h.CellSizingHint != nil || h.ContentModeHint != "" {
		sb.WriteString("\n## Hints\n\n")
		if ch := h.ComponentHint; ch != nil {
			fmt.Fprintf(&sb, "- Component: `%s`", ch.Base)
			if ch.Axis != "" {
				fmt.Fprintf(&sb, " (%s)", ch.Axis)
			}
			if len(ch.Reasons) > 0 {
				fmt.Fprintf(&sb, ": %s", strings.Join(ch.Reasons, ", "))
			}
			sb.WriteString("\n")
		}
		if h.PinsCandidate != "" {
			fmt.Fprintf(&sb, "- Pins: `%s`\n", h.PinsCandidate)
		}
		if cs := h.CellSizingHint; cs != nil {
			fmt.Fprintf(&sb, "- Cell sizing: %s (%s)\n", cs.CellSizing, cs.Reason)
		}
		if h.ContentModeHint != "" {
			fmt.Fprintf(&sb, "- Content mode: `%s`\n", h.ContentModeHint)
		}
	}

	if len(res.Children) > 0 {
		sb.WriteString("\n## Children\n\n")
		for _, c := range res.Children {
			fmt.Fprintf(&sb, "- %s\n", skeletonLine(c))
		}
	}

	if res.Facts != nil {
		facts, err := json.MarshalIndent(res.Facts, "", "  ")
		if err == nil {
			fmt.Fprintf(&sb, "\n## Facts\n\n```json\n%s\n```\n", facts)
		}
	}
	return sb.String()
}

// Batch renders a slice of the breadth-first order as a table.
func Batch(res *domain.BatchResult) string {
	var sb strings.Builder
	end := res.Start + len(res.Items)
	fmt.Fprintf(&sb, "# Batch %d-%d of %d\n\n", res.Start, max(end-1, res.Start), res.TotalNodes)
	if len(res.Items) == 0 {
		sb.WriteString("_no nodes in range_\n")
		return sb.String()
	}

	sb.WriteString("| # | ID | Name | Type | Parent | Decided |\n")
	sb.WriteString("|---|----|------|------|--------|---------|\n")
	for _, it := range res.Items {
		parent := "-"
		if it.ParentID != nil {
			parent = "`" + *it.ParentID + "`"
		}
		decided := ""
		if it.Decided {
			decided = "yes"
		}
		fmt.Fprintf(&sb, "| %d | `%s` | %s | %s | %s | %s |\n",
			it.Index, it.Node.ID, escapeCell(it.Node.Name), it.Node.Type, parent, decided)
	}
	return sb.String()
}

func codeList(items []string) string {
	quoted := slices.Clone(items)
	for i, s := range quoted {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

var escaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, "`", "\\`")

func escape(s string) string {
	return escaper.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escape(s), "|", `\|`)
}
