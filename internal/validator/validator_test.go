package validator_test

import (
	"testing"

	"github.com/aretw0/figspec/internal/validator"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree builds root -> a, b and a -> a1.
func tree(uiSystem string) *domain.State {
	ptr := func(s string) *string { return &s }
	nodes := map[string]*domain.NodeRecord{
		"root": {ID: "root", Type: "FRAME", ChildIDs: []string{"a", "b"}},
		"a":    {ID: "a", Type: "FRAME", ParentID: ptr("root"), Depth: 1, ChildIDs: []string{"a1"}},
		"b":    {ID: "b", Type: "TEXT", ParentID: ptr("root"), Depth: 1, ChildIDs: []string{}},
		"a1":   {ID: "a1", Type: "FRAME", ParentID: ptr("a"), Depth: 2, ChildIDs: []string{}},
	}
	return domain.NewState(uiSystem, "root", nodes, []string{"root", "a", "b", "a1"})
}

func component(base string) domain.Decision {
	return domain.Decision{"component": map[string]any{"base": base}}
}

func withLayout(d domain.Decision, layout any) domain.Decision {
	d["layout"] = layout
	return d
}

func codes(issues []domain.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.NodeID+":"+i.Code)
	}
	return out
}

func TestValidate_EmptyStoreOnlyWarns(t *testing.T) {
	rep := validator.Validate(tree(domain.UIKit))
	assert.True(t, rep.OK)
	assert.Empty(t, rep.Errors)
	assert.Equal(t, []string{"root:missing_decision", "a:missing_decision", "b:missing_decision", "a1:missing_decision"}, codes(rep.Warnings))
}

func TestValidate_PerNodeShape(t *testing.T) {
	tests := []struct {
		name     string
		decision domain.Decision
		errors   []string
		warnings []string
	}{
		{name: "valid", decision: component("UIView")},
		{name: "no component", decision: domain.Decision{"layout": map[string]any{}}, errors: []string{"root:missing_component_object"}},
		{name: "component not object", decision: domain.Decision{"component": "UIView"}, errors: []string{"root:missing_component_object"}},
		{name: "blank base", decision: component("  "), errors: []string{"root:missing_component_base"}},
		{name: "layout not object", decision: withLayout(component("UIView"), "pins"), errors: []string{"root:layout_not_object"}},
		{name: "kind not string", decision: withLayout(component("UIView"), map[string]any{"kind": 3.0}), errors: []string{"root:layout_kind_not_string"}},
		{name: "unknown kind", decision: withLayout(component("UIView"), map[string]any{"kind": "grid"}), warnings: []string{"root:layout_kind_unknown"}},
		{name: "stack without axis", decision: withLayout(component("UIStackView"), map[string]any{"kind": "stack"}), errors: []string{"root:stack_axis_missing_or_invalid"}},
		{name: "stack with bad axis", decision: withLayout(component("UIStackView"), map[string]any{"kind": "stack", "axis": "diagonal"}), errors: []string{"root:stack_axis_missing_or_invalid"}},
		{name: "stack with axis", decision: withLayout(component("UIStackView"), map[string]any{"kind": "stack", "axis": "vertical"})},
		{name: "good pins", decision: withLayout(component("UIView"), map[string]any{"kind": "pins", "pins": "pins=L=0:T=0"})},
		{name: "bad pins", decision: withLayout(component("UIView"), map[string]any{"kind": "pins", "pins": "L=0"}), errors: []string{"root:invalid_pins_string"}},
		{name: "pins not string", decision: withLayout(component("UIView"), map[string]any{"pins": 5.0}), errors: []string{"root:invalid_pins_string"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tree(domain.UIKit)
			s.Decisions["root"] = tt.decision
			s.Decisions["a"] = component("UIView")
			s.Decisions["b"] = component("UILabel")
			s.Decisions["a1"] = component("UIView")

			rep := validator.Validate(s)
			assert.Equal(t, len(tt.errors) == 0, rep.OK)
			assert.ElementsMatch(t, tt.errors, codes(rep.Errors))
			assert.ElementsMatch(t, tt.warnings, codes(rep.Warnings))
		})
	}
}

func TestValidate_InvalidPinsDetail(t *testing.T) {
	s := tree(domain.UIKit)
	s.Decisions["root"] = withLayout(component("UIView"), map[string]any{"pins": "pins=Z=1"})

	rep := validator.Validate(s)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, []string{"pins_unknown_key:Z"}, rep.Errors[0].Detail)
}

func TestValidate_CellSizing(t *testing.T) {
	tests := []struct {
		name   string
		layout any
		errors []string
	}{
		{name: "missing layout", layout: nil, errors: []string{"a:cell_missing_layout"}},
		{name: "layout not object", layout: "x", errors: []string{"a:layout_not_object", "a:cell_missing_layout"}},
		{name: "missing sizing", layout: map[string]any{"kind": "list"}, errors: []string{"a:cellSizing_missing_or_invalid"}},
		{name: "self sizing", layout: map[string]any{"cellSizing": "selfSizing"}},
		{name: "fixed without size", layout: map[string]any{"cellSizing": "fixed"}, errors: []string{"a:fixed_cell_requires_fixedSize_width_height"}},
		{name: "fixed with partial size", layout: map[string]any{"cellSizing": "fixed", "fixedSize": map[string]any{"width": 10.0}}, errors: []string{"a:fixed_cell_requires_fixedSize_width_height"}},
		{name: "fixed with non-numeric size", layout: map[string]any{"cellSizing": "fixed", "fixedSize": map[string]any{"width": 10.0, "height": "44"}}, errors: []string{"a:fixed_cell_requires_fixedSize_width_height"}},
		{name: "fixed with size", layout: map[string]any{"cellSizing": "fixed", "fixedSize": map[string]any{"width": 320.0, "height": 44.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tree(domain.UIKit)
			s.Decisions["root"] = component("UITableView")
			cell := component("UITableViewCell")
			if tt.layout != nil {
				cell = withLayout(cell, tt.layout)
			}
			s.Decisions["a"] = cell
			s.Decisions["b"] = withLayout(component("UITableViewCell"), map[string]any{"cellSizing": "selfSizing"})

			rep := validator.Validate(s)
			assert.ElementsMatch(t, tt.errors, codes(rep.Errors))
		})
	}
}

func TestValidate_CellRulesAreUIKitOnly(t *testing.T) {
	s := tree(domain.SwiftUI)
	s.Decisions["a"] = component("UITableViewCell")
	assert.True(t, validator.Validate(s).OK)
}

func TestValidate_ListChildMustBeCell(t *testing.T) {
	s := tree(domain.UIKit)
	s.Decisions["root"] = component("UICollectionView")
	s.Decisions["a"] = component("UIView")

	rep := validator.Validate(s)
	assert.False(t, rep.OK)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "a", rep.Errors[0].NodeID)
	assert.Equal(t, validator.CodeChildMustBeCell, rep.Errors[0].Code)
	assert.Equal(t, map[string]any{"parent": "root", "mustBe": "UICollectionViewCell", "actual": "UIView"}, rep.Errors[0].Detail)

	assert.Contains(t, codes(rep.Warnings), "b:child_missing_decision_under_list_container")
}

func TestValidate_ButtonChildren(t *testing.T) {
	s := tree(domain.UIKit)
	s.Decisions["root"] = component("UIButton")
	s.Decisions["a"] = component("UIView")
	s.Decisions["b"] = component("UILabel")

	rep := validator.Validate(s)
	assert.True(t, rep.OK, "button child problems are warnings")
	assert.Contains(t, codes(rep.Warnings), "a:unexpected_child_under_UIButton")
	assert.NotContains(t, codes(rep.Warnings), "b:unexpected_child_under_UIButton")
}

func TestValidate_SwiftUIStructural(t *testing.T) {
	s := tree(domain.SwiftUI)
	s.Decisions["root"] = component("List")
	s.Decisions["a"] = component("HStack")
	s.Decisions["b"] = component("Button")
	s.Decisions["a1"] = component("Toggle")

	rep := validator.Validate(s)
	assert.True(t, rep.OK)
	assert.Contains(t, codes(rep.Warnings), "b:unexpected_child_under_List")
	assert.NotContains(t, codes(rep.Warnings), "a:unexpected_child_under_List")

	s.Decisions["a"] = component("Button")
	rep = validator.Validate(s)
	assert.Contains(t, codes(rep.Warnings), "a1:unexpected_child_under_Button")
}
