// Package validator checks recorded decisions against per-node and parent/child rules.
//
// Validation never depends on traversal order: it walks the breadth-first
// order only to make its output deterministic.
package validator

import (
	"slices"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/pins"
)

// Issue codes.
const (
	CodeMissingDecision        = "missing_decision"
	CodeMissingComponentObject = "missing_component_object"
	CodeMissingComponentBase   = "missing_component_base"
	CodeLayoutNotObject        = "layout_not_object"
	CodeLayoutKindNotString    = "layout_kind_not_string"
	CodeLayoutKindUnknown      = "layout_kind_unknown"
	CodeInvalidPins            = "invalid_pins_string"
	CodeStackAxis              = "stack_axis_missing_or_invalid"
	CodeCellMissingLayout      = "cell_missing_layout"
	CodeCellSizing             = "cellSizing_missing_or_invalid"
	CodeFixedCellSize          = "fixed_cell_requires_fixedSize_width_height"
	CodeChildMissingUnderList  = "child_missing_decision_under_list_container"
	CodeChildMustBeCell        = "child_component_must_be_cell"
	CodeUnexpectedChildPrefix  = "unexpected_child_under_"
)

type report struct {
	errors   []domain.Issue
	warnings []domain.Issue
}

func (r *report) err(id, code string, detail any) {
	r.errors = append(r.errors, domain.Issue{NodeID: id, Code: code, Detail: detail})
}

func (r *report) warn(id, code string, detail any) {
	r.warnings = append(r.warnings, domain.Issue{NodeID: id, Code: code, Detail: detail})
}

// Validate runs both passes over state.
func Validate(state *domain.State) *domain.ValidationReport {
	profile := state.Profile()
	r := &report{}

	ids := orderedIDs(state)
	for _, id := range ids {
		checkDecision(r, id, state, profile)
	}
	for _, id := range ids {
		checkChildren(r, id, state, profile)
	}

	out := &domain.ValidationReport{
		OK:       len(r.errors) == 0,
		Errors:   r.errors,
		Warnings: r.warnings,
	}
	if out.Errors == nil {
		out.Errors = []domain.Issue{}
	}
	if out.Warnings == nil {
		out.Warnings = []domain.Issue{}
	}
	return out
}

// orderedIDs lists node ids in BFS order, then any record the order does not reach, sorted.
func orderedIDs(state *domain.State) []string {
	seen := make(map[string]bool, len(state.Nodes))
	ids := make([]string, 0, len(state.Nodes))
	for _, id := range state.BFS {
		if _, ok := state.Nodes[id]; ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	var rest []string
	for id := range state.Nodes {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(ids, rest...)
}

// checkDecision is the per-node shape pass.
func checkDecision(r *report, id string, state *domain.State, p domain.Profile) {
	dec, ok := state.Decision(id)
	if !ok {
		r.warn(id, CodeMissingDecision, nil)
		return
	}
	if _, ok := dec.Component(); !ok {
		r.err(id, CodeMissingComponentObject, nil)
		return
	}
	base := dec.Base()
	if base == "" {
		r.err(id, CodeMissingComponentBase, nil)
	}

	rawLayout, hasLayout := dec.RawLayout()
	layout, isObject := rawLayout.(map[string]any)
	if hasLayout && !isObject {
		r.err(id, CodeLayoutNotObject, nil)
		hasLayout = false
	}

	var spec *domain.LayoutSpec
	if hasLayout {
		// Wrong-typed fields decode to zero values, which the checks below report.
		spec, _ = dec.LayoutSpec()
		if spec == nil {
			spec = &domain.LayoutSpec{}
		}

		kind, kindPresent := layout["kind"]
		_, kindIsString := kind.(string)
		switch {
		case kindPresent && kind != nil && !kindIsString:
			r.err(id, CodeLayoutKindNotString, nil)
		case kindIsString && !slices.Contains(domain.KnownLayoutKinds, spec.Kind):
			r.warn(id, CodeLayoutKindUnknown, spec.Kind)
		}

		if raw, ok := layout["pins"]; ok && raw != nil {
			if _, errs := pins.Parse(raw); len(errs) > 0 {
				r.err(id, CodeInvalidPins, errs)
			}
		}

		if spec.Kind == domain.LayoutKindStack && spec.Axis != "horizontal" && spec.Axis != "vertical" {
			r.err(id, CodeStackAxis, nil)
		}
	}

	if base != "" && p.IsCell(base) {
		if spec == nil {
			r.err(id, CodeCellMissingLayout, nil)
			return
		}
		if spec.CellSizing != domain.CellSelfSizing && spec.CellSizing != domain.CellFixed {
			r.err(id, CodeCellSizing, nil)
		}
		if spec.CellSizing == domain.CellFixed && !spec.FixedSize.Complete() {
			r.err(id, CodeFixedCellSize, nil)
		}
	}
}

// checkChildren is the structural pass: a decided parent's class constrains its direct children.
func checkChildren(r *report, id string, state *domain.State, p domain.Profile) {
	rec := state.Nodes[id]
	if len(rec.ChildIDs) == 0 {
		return
	}
	dec, ok := state.Decision(id)
	if !ok {
		return
	}
	parentBase := dec.Base()
	if parentBase == "" {
		return
	}

	childBase := func(cid string) (string, bool) {
		d, ok := state.Decision(cid)
		if !ok || d.Base() == "" {
			return "", false
		}
		return d.Base(), true
	}

	switch {
	case isCellContainer(p, parentBase):
		must, _ := p.CellFor(parentBase)
		for _, cid := range rec.ChildIDs {
			base, ok := childBase(cid)
			switch {
			case !ok:
				r.warn(cid, CodeChildMissingUnderList, map[string]any{"parent": id, "mustBe": must})
			case base != must:
				r.err(cid, CodeChildMustBeCell, map[string]any{"parent": id, "mustBe": must, "actual": base})
			}
		}

	case parentBase == p.Button:
		for _, cid := range rec.ChildIDs {
			if base, ok := childBase(cid); ok && !p.AllowsButtonChild(base) {
				r.warn(cid, CodeUnexpectedChildPrefix+parentBase, map[string]any{"parent": id, "actual": base})
			}
		}

	case parentBase == p.List && len(p.ListRows) > 0:
		for _, cid := range rec.ChildIDs {
			if base, ok := childBase(cid); ok && !slices.Contains(p.ListRows, base) {
				r.warn(cid, CodeUnexpectedChildPrefix+parentBase, map[string]any{"parent": id, "actual": base})
			}
		}
	}
}

func isCellContainer(p domain.Profile, base string) bool {
	_, ok := p.CellFor(base)
	return ok
}
