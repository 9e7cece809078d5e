// Package facts projects raw design nodes into bounded, deterministic Facts.
//
// Extraction only looks at the node itself, never at siblings or ancestors.
// Numbers are copied only when the raw value is numeric; absent values stay
// absent rather than defaulting to zero.
package facts

import (
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
)

// DefaultMaxTextLen is the default clip length for text characters, in runes.
const DefaultMaxTextLen = 200

// NoTextLimit disables text truncation.
const NoTextLimit = -1

// Options controls extraction.
type Options struct {
	// MaxTextLen clips text characters. Negative means no limit.
	MaxTextLen int
}

// DefaultOptions returns the extraction defaults.
func DefaultOptions() Options {
	return Options{MaxTextLen: DefaultMaxTextLen}
}

// Extract computes the Facts of one raw node.
func Extract(node map[string]any, opts Options) domain.Facts {
	f := domain.Facts{
		NameTokens: NameTokens(node["name"]),
		Visible:    truthy(node["visible"], true),
		Locked:     truthy(node["locked"], false),
		Frame:      extractFrame(node),
		Layout:     extractLayout(node),
		Style:      extractStyle(node),
		Image:      extractImage(node),
	}
	if strings.ToUpper(stringOf(node["type"])) == "TEXT" {
		f.Text = extractText(node, opts)
	}
	return f
}

func extractFrame(node map[string]any) *domain.Frame {
	fr := domain.Frame{
		X:        number(node["x"]),
		Y:        number(node["y"]),
		Width:    number(node["width"]),
		Height:   number(node["height"]),
		Rotation: number(node["rotation"]),
	}
	if fr == (domain.Frame{}) {
		return nil
	}
	return &fr
}

func extractLayout(node map[string]any) *domain.Layout {
	l := domain.Layout{
		LayoutMode:             stringOf(node["layoutMode"]),
		LayoutPositioning:      stringOf(node["layoutPositioning"]),
		LayoutSizingHorizontal: stringOf(node["layoutSizingHorizontal"]),
		LayoutSizingVertical:   stringOf(node["layoutSizingVertical"]),
		LayoutGrow:             number(node["layoutGrow"]),
		LayoutAlign:            stringOf(node["layoutAlign"]),
		ItemSpacing:            number(node["itemSpacing"]),
		PaddingLeft:            number(node["paddingLeft"]),
		PaddingRight:           number(node["paddingRight"]),
		PaddingTop:             number(node["paddingTop"]),
		PaddingBottom:          number(node["paddingBottom"]),
		PrimaryAxisAlignItems:  stringOf(node["primaryAxisAlignItems"]),
		CounterAxisAlignItems:  stringOf(node["counterAxisAlignItems"]),
		LayoutWrap:             stringOf(node["layoutWrap"]),
	}
	if c, ok := node["constraints"].(map[string]any); ok {
		l.Constraints = &domain.Constraints{
			Horizontal: stringOf(c["horizontal"]),
			Vertical:   stringOf(c["vertical"]),
		}
	}
	if l == (domain.Layout{}) {
		return nil
	}
	return &l
}

func extractStyle(node map[string]any) *domain.Style {
	var s domain.Style
	s.BackgroundColor = solidFill(node["fills"])
	s.Stroke = solidStroke(node)
	if v := number(node["cornerRadius"]); v != nil && *v != 0 {
		s.CornerRadius = v
	}
	if v := number(node["opacity"]); v != nil && *v != 1 {
		s.Opacity = v
	}
	if b, ok := node["clipsContent"].(bool); ok && b {
		s.ClipsContent = true
	}
	s.Shadows = shadows(node["effects"])

	if s.BackgroundColor == nil && s.Stroke == nil && s.CornerRadius == nil &&
		s.Opacity == nil && !s.ClipsContent && len(s.Shadows) == 0 {
		return nil
	}
	return &s
}

func extractText(node map[string]any, opts Options) *domain.TextFacts {
	var t domain.TextFacts

	chars := stringOf(node["characters"])
	if chars == "" {
		chars = stringOf(node["text"])
	}
	if chars != "" {
		runes := []rune(chars)
		if opts.MaxTextLen >= 0 && len(runes) > opts.MaxTextLen {
			t.Characters = string(runes[:opts.MaxTextLen]) + "..."
			t.CharactersTruncated = true
		} else {
			t.Characters = chars
		}
	}
	t.Font = font(node)
	if fill := solidFill(node["fills"]); fill != nil {
		c := fill.Color
		t.TextColor = &c
	}

	if t == (domain.TextFacts{}) {
		return nil
	}
	return &t
}

func font(node map[string]any) *domain.Font {
	token := strings.TrimSpace(stringOf(node["textVariableName"]))
	if token == "" {
		token = strings.TrimSpace(stringOf(node["textStyleVariableName"]))
	}

	var fb domain.FontFallback
	fb.Name = strings.TrimSpace(stringOf(node["fontName"]))
	fb.Size = number(node["fontSize"])
	if style, ok := node["style"].(map[string]any); ok {
		if fb.Name == "" {
			name := strings.TrimSpace(stringOf(style["fontPostScriptName"]))
			if name == "" {
				name = strings.TrimSpace(stringOf(style["fontFamily"]))
			}
			fb.Name = name
		}
		if fb.Size == nil {
			fb.Size = number(style["fontSize"])
		}
		fb.Weight = number(style["fontWeight"])
	}

	f := domain.Font{Token: token}
	if fb != (domain.FontFallback{}) {
		f.Fallback = &fb
	}
	if f.Token == "" && f.Fallback == nil {
		return nil
	}
	return &f
}

func extractImage(node map[string]any) *domain.ImageFacts {
	paint := firstVisiblePaint(node["fills"], "IMAGE")

	var hash string
	if paint != nil {
		hash = firstString(paint["imageHash"], paint["imageRef"])
	}
	if hash == "" {
		hash = firstString(node["imageHash"], node["imageRef"])
	}
	if paint == nil && hash == "" {
		return nil
	}

	img := domain.ImageFacts{ImageHash: hash}
	if paint != nil {
		img.ScaleMode = stringOf(paint["scaleMode"])
		if v := number(paint["opacity"]); v != nil && *v != 1 {
			img.Opacity = v
		}
	}
	if img == (domain.ImageFacts{}) {
		return nil
	}
	return &img
}
