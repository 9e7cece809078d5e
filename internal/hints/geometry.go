package hints

import (
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/pins"
)

// Pins derives a candidate pins string from a node's constraints and
// geometry relative to its parent. It returns "" when no candidate applies:
// no parent, incomplete frames, no constraints, or a child laid out by an
// auto-layout parent without opting into absolute positioning.
//
// SCALE constraints only emit the leading (or top) pin. There is no single
// Cartesian translation of proportional scaling, so the hint stays minimal.
func Pins(rec, parent *domain.NodeRecord) string {
	if rec == nil || parent == nil {
		return ""
	}
	layout := rec.Facts.Layout
	if parent.Facts.Layout.IsAutoLayout() {
		if layout == nil || strings.ToUpper(layout.LayoutPositioning) != "ABSOLUTE" {
			return ""
		}
	}
	if layout == nil || layout.Constraints == nil {
		return ""
	}
	f, pf := rec.Facts.Frame, parent.Facts.Frame
	if !f.Complete() || !pf.HasSize() {
		return ""
	}

	x, y, w, h := *f.X, *f.Y, *f.Width, *f.Height
	pw, ph := *pf.Width, *pf.Height

	var b pins.Builder
	axis(&b, layout.Constraints.Horizontal, "L", "R", "CX", x, w, pw)
	axis(&b, layout.Constraints.Vertical, "T", "B", "CY", y, h, ph)

	if fixedOrUnset(layout.LayoutSizingHorizontal) {
		b.Add("W", w)
	}
	if fixedOrUnset(layout.LayoutSizingVertical) {
		b.Add("H", h)
	}

	if b.Len() == 0 {
		return ""
	}
	return b.Set().String()
}

// axis adds the pins for one axis. lead/trail/center name the keys for that axis.
func axis(b *pins.Builder, constraint, lead, trail, center string, offset, size, parentSize float64) {
	inset := parentSize - (offset + size)
	switch strings.ToUpper(constraint) {
	case "MIN":
		b.Add(lead, offset)
	case "MAX":
		b.Add(trail, -inset)
	case "CENTER":
		b.Add(center, (offset+size/2)-parentSize/2)
	case "STRETCH":
		b.Add(lead, offset)
		b.Add(trail, -inset)
	case "SCALE":
		b.Add(lead, offset)
	}
}

func fixedOrUnset(sizing string) bool {
	s := strings.ToUpper(sizing)
	return s == "" || s == "FIXED"
}

// CellSizing suggests self-sizing when either axis hugs its content, else a
// fixed size taken from the frame.
func CellSizing(rec *domain.NodeRecord) *domain.CellSizingHint {
	var h, v string
	if l := rec.Facts.Layout; l != nil {
		h = strings.ToUpper(l.LayoutSizingHorizontal)
		v = strings.ToUpper(l.LayoutSizingVertical)
	}
	if h == "HUG" || v == "HUG" {
		return &domain.CellSizingHint{
			CellSizing: domain.CellSelfSizing,
			Reason:     "layoutSizingHorizontal/Vertical has HUG",
		}
	}
	if f := rec.Facts.Frame; f.HasSize() {
		width, height := *f.Width, *f.Height
		return &domain.CellSizingHint{
			CellSizing: domain.CellFixed,
			FixedSize:  &domain.Size{Width: &width, Height: &height},
			Reason:     "no HUG sizing; using frame width/height",
		}
	}
	return &domain.CellSizingHint{
		CellSizing: domain.CellFixed,
		Reason:     "no HUG sizing; missing frame width/height",
	}
}

// ContentMode maps an image scale mode to the framework's nearest content mode.
// Unmapped modes yield "".
func ContentMode(f domain.Facts, p domain.Profile) string {
	if f.Image == nil || f.Image.ScaleMode == "" {
		return ""
	}
	return p.ContentModes[strings.ToUpper(f.Image.ScaleMode)]
}
