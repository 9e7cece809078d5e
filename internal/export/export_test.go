package export_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/figspec/internal/export"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newState builds a tree from "id" or "parent/id" paths, in order. The first entry is the root.
func newState(uiSystem string, paths ...string) *domain.State {
	nodes := make(map[string]*domain.NodeRecord)
	var bfs []string
	var root string
	for _, p := range paths {
		parent, id := "", p
		for i := len(p) - 1; i >= 0; i-- {
			if p[i] == '/' {
				parent, id = p[:i], p[i+1:]
				break
			}
		}
		rec := &domain.NodeRecord{ID: id, Name: "Node " + id, Type: "FRAME", ChildIDs: []string{}}
		if parent == "" {
			root = id
		} else {
			pid := parent
			if j := lastSlash(parent); j >= 0 {
				pid = parent[j+1:]
			}
			rec.ParentID = &pid
			rec.Depth = nodes[pid].Depth + 1
			nodes[pid].ChildIDs = append(nodes[pid].ChildIDs, id)
		}
		nodes[id] = rec
		bfs = append(bfs, id)
	}
	return domain.NewState(uiSystem, root, nodes, bfs)
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func decide(base string, props map[string]any) domain.Decision {
	d := domain.Decision{"component": map[string]any{"base": base}}
	if props != nil {
		d["properties"] = props
	}
	return d
}

func TestBuild_UndecidedNodes(t *testing.T) {
	s := newState(domain.UIKit, "btn", "btn/label", "btn/icon")
	s.Decisions["label"] = domain.Decision{}

	doc := export.Build(s, export.Options{})
	require.NotNil(t, doc.Root)
	assert.Equal(t, domain.UIKit, doc.UISystem)
	assert.Equal(t, domain.UndecidedBase, doc.Root.Base())
	assert.Equal(t, []any{export.WarningMissingDecision}, doc.Root.Fields["warnings"])

	require.Len(t, doc.Root.Children, 2)
	assert.Equal(t, domain.UndecidedBase, doc.Root.Children[0].Base(), "an empty decision exports as undecided")
	assert.Equal(t, domain.Source{ID: "label", Name: "Node label", Type: "FRAME"}, doc.Root.Children[0].Source)
}

func TestBuild_FlattensDecisionAndIgnoresReservedKeys(t *testing.T) {
	s := newState(domain.UIKit, "root", "root/a")
	s.Decisions["root"] = domain.Decision{
		"component": map[string]any{"base": "UIView"},
		"layout":    map[string]any{"kind": "root"},
		"source":    "spoofed",
		"children":  []any{"x"},
		"notes":     "kept",
	}

	doc := export.Build(s, export.Options{})
	assert.Equal(t, "UIView", doc.Root.Base())
	assert.Equal(t, "kept", doc.Root.Fields["notes"])
	assert.NotContains(t, doc.Root.Fields, "source")
	assert.NotContains(t, doc.Root.Fields, "children")
	require.Len(t, doc.Root.Children, 1)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	root := raw["root"].(map[string]any)
	assert.Equal(t, map[string]any{"id": "root", "name": "Node root", "type": "FRAME"}, root["source"])
	assert.Equal(t, map[string]any{"kind": "root"}, root["layout"])
	leaf := root["children"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{}, leaf["children"])
}

func TestBuild_ButtonAbsorbsLabelAndImage(t *testing.T) {
	for _, tc := range []struct {
		ui, button, label, image string
	}{
		{domain.UIKit, "UIButton", "UILabel", "UIImageView"},
		{domain.SwiftUI, "Button", "Text", "Image"},
	} {
		t.Run(tc.ui, func(t *testing.T) {
			s := newState(tc.ui, "btn", "btn/label", "btn/icon")
			s.Decisions["btn"] = decide(tc.button, nil)
			s.Decisions["label"] = decide(tc.label, map[string]any{"text": "Go"})
			s.Decisions["icon"] = decide(tc.image, map[string]any{"image": map[string]any{"asset": "arrow"}})

			doc := export.Build(s, export.Options{Absorb: true})
			props := doc.Root.Properties(false)
			require.NotNil(t, props)
			assert.Equal(t, "Go", props["title"])
			assert.Equal(t, "label", props["titleFrom"])
			assert.Equal(t, map[string]any{"asset": "arrow"}, props["image"])
			assert.Equal(t, "icon", props["imageFrom"])
			assert.Empty(t, doc.Root.Children)

			assert.Nil(t, s.Decisions["btn"].Properties(), "state decisions are not modified")
		})
	}
}

func TestBuild_ButtonKeepsOwnValues(t *testing.T) {
	s := newState(domain.UIKit, "btn", "btn/label", "btn/label2", "btn/other")
	s.Decisions["btn"] = decide("UIButton", map[string]any{"title": "Own"})
	s.Decisions["label"] = decide("UILabel", map[string]any{
		"text":      "Child",
		"textColor": map[string]any{"token": "primary"},
		"font":      map[string]any{"token": "body"},
	})
	s.Decisions["label2"] = decide("UILabel", map[string]any{"text": "Second"})
	s.Decisions["other"] = decide("UIView", nil)

	doc := export.Build(s, export.Options{Absorb: true})
	props := doc.Root.Properties(false)
	assert.Equal(t, "Own", props["title"])
	assert.NotContains(t, props, "titleFrom")
	assert.Equal(t, map[string]any{"token": "primary"}, props["titleColor"])
	assert.Equal(t, map[string]any{"token": "body"}, props["titleFont"])

	var ids []string
	for _, c := range doc.Root.Children {
		ids = append(ids, c.Source.ID)
	}
	assert.Equal(t, []string{"label2", "other"}, ids, "only the first label is absorbed")
}

func TestBuild_ImageAbsorbsNestedImage(t *testing.T) {
	s := newState(domain.UIKit, "frame", "frame/empty", "frame/inner")
	s.Decisions["frame"] = decide("UIImageView", nil)
	s.Decisions["empty"] = decide("UIImageView", nil)
	s.Decisions["inner"] = decide("UIImageView", map[string]any{"image": "hero"})

	doc := export.Build(s, export.Options{Absorb: true})
	props := doc.Root.Properties(false)
	assert.Equal(t, "hero", props["image"])
	assert.Equal(t, "inner", props["imageFrom"])
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "empty", doc.Root.Children[0].Source.ID)
}

func TestBuild_AbsorptionIsBottomUp(t *testing.T) {
	// button -> wrapper image -> image with asset
	s := newState(domain.SwiftUI, "btn", "btn/wrap", "btn/wrap/img")
	s.Decisions["btn"] = decide("Button", nil)
	s.Decisions["wrap"] = decide("Image", nil)
	s.Decisions["img"] = decide("Image", map[string]any{"image": map[string]any{"asset": "star"}})

	doc := export.Build(s, export.Options{Absorb: true})
	props := doc.Root.Properties(false)
	assert.Equal(t, map[string]any{"asset": "star"}, props["image"])
	assert.Equal(t, "wrap", props["imageFrom"])
	assert.Empty(t, doc.Root.Children)
}

func TestBuild_NoAbsorbRoundTrip(t *testing.T) {
	s := newState(domain.UIKit, "btn", "btn/label", "btn/icon", "btn/icon/x")
	s.Nodes["label"].Type = "TEXT"
	for id := range s.Nodes {
		s.Decisions[id] = decide("UIView", nil)
	}
	s.Decisions["btn"] = decide("UIButton", nil)
	s.Decisions["label"] = decide("UILabel", map[string]any{"text": "Go"})

	doc := export.Build(s, export.Options{Absorb: false})
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back domain.ExportDocument
	require.NoError(t, json.Unmarshal(data, &back))

	got := make(map[string]string)
	back.Root.Walk(func(n *domain.ExportNode) {
		got[n.Source.ID] = n.Source.Type
	})
	want := make(map[string]string)
	for id := range s.Decisions {
		want[id] = s.Nodes[id].Type
	}
	assert.Equal(t, want, got)
}
