package export

import (
	"maps"

	"github.com/aretw0/figspec/pkg/domain"
)

// Absorb folds simple children into their parents, bottom-up.
//
// A button takes its first label child as title (plus title color and font)
// and its first image child as image (plus content mode); both children are
// dropped. An image without its own image takes the first image child that
// has one. Values already present on the parent are never overwritten.
func Absorb(n *domain.ExportNode, p domain.Profile) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		Absorb(c, p)
	}
	if len(n.Children) == 0 {
		return
	}

	switch n.Base() {
	case "":
		return
	case p.Button:
		absorbIntoButton(n, p)
	case p.Image:
		absorbIntoImage(n, p)
	}
}

func absorbIntoButton(n *domain.ExportNode, p domain.Profile) {
	label, image := -1, -1
	for i, c := range n.Children {
		switch c.Base() {
		case p.Label:
			if label < 0 {
				label = i
			}
		case p.Image:
			if image < 0 {
				image = i
			}
		}
	}

	w := newWriter(n)
	if label >= 0 {
		c := n.Children[label]
		cp := c.Properties(false)
		if text, ok := cp["text"].(string); ok && w.set("title", text) {
			w.set("titleFrom", c.Source.ID)
		}
		if color, ok := cp["textColor"].(map[string]any); ok {
			w.set("titleColor", color)
		}
		if font, ok := cp["font"].(map[string]any); ok {
			w.set("titleFont", font)
		}
	}
	if image >= 0 {
		c := n.Children[image]
		cp := c.Properties(false)
		if img, ok := imageRef(cp["image"]); ok && w.set("image", img) {
			w.set("imageFrom", c.Source.ID)
		}
		if mode, ok := cp["contentMode"].(string); ok {
			w.set("imageContentMode", mode)
		}
	}
	n.Children = without(n.Children, label, image)
}

func absorbIntoImage(n *domain.ExportNode, p domain.Profile) {
	if _, ok := imageRef(n.Properties(false)["image"]); ok {
		return
	}
	w := newWriter(n)
	for i, c := range n.Children {
		if c.Base() != p.Image {
			continue
		}
		img, ok := imageRef(c.Properties(false)["image"])
		if !ok {
			continue
		}
		w.set("image", img)
		w.set("imageFrom", c.Source.ID)
		n.Children = without(n.Children, i)
		return
	}
}

// imageRef accepts an asset object or a non-empty asset name.
func imageRef(v any) (any, bool) {
	switch img := v.(type) {
	case map[string]any:
		return img, true
	case string:
		return img, img != ""
	}
	return nil, false
}

// writer copies the parent's properties on first write so decisions held by
// the state never change.
type writer struct {
	n      *domain.ExportNode
	props  map[string]any
	copied bool
}

func newWriter(n *domain.ExportNode) *writer {
	return &writer{n: n, props: n.Properties(false)}
}

// set stores v under key unless the key is already present, and reports whether it did.
func (w *writer) set(key string, v any) bool {
	if _, exists := w.props[key]; exists {
		return false
	}
	if !w.copied {
		next := make(map[string]any, len(w.props)+1)
		maps.Copy(next, w.props)
		w.props = next
		if w.n.Fields == nil {
			w.n.Fields = make(map[string]any)
		}
		w.n.Fields["properties"] = next
		w.copied = true
	}
	w.props[key] = v
	return true
}

func without(children []*domain.ExportNode, drop ...int) []*domain.ExportNode {
	out := make([]*domain.ExportNode, 0, len(children))
	for i, c := range children {
		skip := false
		for _, d := range drop {
			if d == i {
				skip = true
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}
