package facts

import (
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
)

// firstVisiblePaint returns the first visible paint of the given kind.
// Later paints of the same kind are ignored (top-most wins).
func firstVisiblePaint(paints any, kind string) map[string]any {
	list, ok := paints.([]any)
	if !ok {
		return nil
	}
	for _, item := range list {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := p["visible"].(bool); ok && !v {
			continue
		}
		if strings.ToUpper(stringOf(p["type"])) != kind {
			continue
		}
		return p
	}
	return nil
}

func colorSpec(raw any) *domain.Color {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	c := domain.Color{
		Token:       strings.TrimSpace(stringOf(m["colorVariableName"])),
		FallbackHex: strings.TrimSpace(stringOf(m["hexRGBA"])),
	}
	if c == (domain.Color{}) {
		return nil
	}
	return &c
}

func solidFill(paints any) *domain.Fill {
	paint := firstVisiblePaint(paints, "SOLID")
	if paint == nil {
		return nil
	}
	c := colorSpec(paint["color"])
	if c == nil {
		return nil
	}
	fill := &domain.Fill{Color: *c}
	if v := number(paint["opacity"]); v != nil && *v != 1 {
		fill.Opacity = v
	}
	return fill
}

func solidStroke(node map[string]any) *domain.Stroke {
	paint := firstVisiblePaint(node["strokes"], "SOLID")
	if paint == nil {
		return nil
	}
	c := colorSpec(paint["color"])
	if c == nil {
		return nil
	}
	s := &domain.Stroke{Color: *c, Align: stringOf(node["strokeAlign"])}

	weight, ok := node["strokeWeight"]
	if !ok {
		weight = node["strokeWidth"]
	}
	if v := number(weight); v != nil && *v != 0 {
		s.Width = v
	}
	if v := number(paint["opacity"]); v != nil && *v != 1 {
		s.Opacity = v
	}
	return s
}

func shadows(effects any) []domain.Shadow {
	list, ok := effects.([]any)
	if !ok {
		return nil
	}
	var out []domain.Shadow
	for _, item := range list {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := e["visible"].(bool); ok && !v {
			continue
		}
		kind := strings.ToUpper(stringOf(e["type"]))
		if kind != "DROP_SHADOW" && kind != "INNER_SHADOW" {
			continue
		}
		sh := domain.Shadow{
			Type:   kind,
			Color:  colorSpec(e["color"]),
			Radius: number(e["radius"]),
			Spread: number(e["spread"]),
		}
		if off, ok := e["offset"].(map[string]any); ok {
			x, y := number(off["x"]), number(off["y"])
			if x != nil && y != nil {
				sh.Offset = &domain.Offset{X: *x, Y: *y}
			}
		}
		if v := number(e["opacity"]); v != nil && *v != 1 {
			sh.Opacity = v
		}
		out = append(out, sh)
	}
	return out
}
