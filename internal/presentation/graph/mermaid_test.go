package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/figspec/internal/presentation/graph"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func sample() *domain.State {
	nodes := map[string]*domain.NodeRecord{
		"1:1": {ID: "1:1", Name: "Screen", Type: "FRAME", ChildIDs: []string{"1:2", "1:3", "1:4"}},
		"1:2": {ID: "1:2", Name: `Say "hi"`, Type: "TEXT", ParentID: ptr("1:1"), Depth: 1,
			ChildIDs: []string{}, Facts: domain.Facts{Text: &domain.TextFacts{Characters: "hi"}}},
		"1:3": {ID: "1:3", Name: "Logo", Type: "RECTANGLE", ParentID: ptr("1:1"), Depth: 1,
			ChildIDs: []string{}, Facts: domain.Facts{Image: &domain.ImageFacts{ImageHash: "abc"}}},
		"1:4": {ID: "1:4", Name: "Footer", Type: "FRAME", ParentID: ptr("1:1"), Depth: 1, ChildIDs: []string{}},
	}
	s := domain.NewState(domain.UIKit, "1:1", nodes, []string{"1:1", "1:2", "1:3", "1:4"})
	s.Decisions["1:1"] = domain.Decision{"component": map[string]any{"base": "UIView"}}
	return s
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(sample(), nil)

	tests := []struct {
		name string
		want string
	}{
		{"Header", "graph TD\n"},
		{"Root Shape With Base", `n1_1(("Screen<br/>UIView"))`},
		{"Text Shape And Escaping", `n1_2(["Say #quot;hi#quot;"])`},
		{"Image Shape", `n1_3[/"Logo"/]`},
		{"Default Shape", `n1_4["Footer"]`},
		{"Edges", "n1_1 --> n1_2\n    n1_1 --> n1_3\n    n1_1 --> n1_4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, got, tt.want)
		})
	}
	assert.NotContains(t, got, "classDef", "no overlay, no classes")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(sample(), &graph.Overlay{Next: "1:2"})

	assert.Contains(t, got, "class n1_1 decided;")
	assert.Contains(t, got, "class n1_3,n1_4 pending;")
	assert.Contains(t, got, "class n1_2 next;")
	assert.Equal(t, 1, strings.Count(got, "n1_2 next"))
}

func TestGenerateMermaid_Done(t *testing.T) {
	got := graph.GenerateMermaid(sample(), &graph.Overlay{})
	assert.NotContains(t, got, " next;")
}
