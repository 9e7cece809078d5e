// Package export reassembles decisions into a nested specification tree.
package export

import (
	"github.com/aretw0/figspec/pkg/domain"
)

// Options controls export post-processing.
type Options struct {
	// Absorb folds label and image children into their button or image parents.
	Absorb bool
}

// WarningMissingDecision is attached to nodes exported without a decision.
const WarningMissingDecision = "missing_decision"

// Build reassembles the tree from the root of state. The state is not modified.
func Build(state *domain.State, opts Options) *domain.ExportDocument {
	doc := &domain.ExportDocument{UISystem: state.UISystem}
	if _, err := state.Node(state.RootID); err != nil {
		return doc
	}
	doc.Root = build(state, state.RootID, make(map[string]bool))
	if opts.Absorb {
		Absorb(doc.Root, state.Profile())
	}
	return doc
}

func build(state *domain.State, id string, visiting map[string]bool) *domain.ExportNode {
	rec := state.Nodes[id]
	visiting[id] = true
	defer delete(visiting, id)

	n := &domain.ExportNode{
		Source:   domain.Source{ID: rec.ID, Name: rec.Name, Type: rec.Type},
		Fields:   make(map[string]any),
		Children: []*domain.ExportNode{},
	}

	dec, ok := state.Decision(id)
	if ok && len(dec) > 0 {
		for k, v := range dec {
			if k == "source" || k == "children" {
				continue
			}
			n.Fields[k] = v
		}
	} else {
		n.Fields["component"] = map[string]any{"base": domain.UndecidedBase}
		n.Fields["warnings"] = []any{WarningMissingDecision}
	}

	for _, cid := range rec.ChildIDs {
		if _, err := state.Node(cid); err != nil || visiting[cid] {
			continue
		}
		n.Children = append(n.Children, build(state, cid, visiting))
	}
	return n
}
