package domain

import "strings"

// Facts is the compact projection of a raw design node.
// Optional numbers are pointers so that absent values stay absent instead of zero.
type Facts struct {
	NameTokens []string    `json:"nameTokens"`
	Visible    bool        `json:"visible"`
	Locked     bool        `json:"locked"`
	Frame      *Frame      `json:"frame,omitempty"`
	Layout     *Layout     `json:"layout,omitempty"`
	Style      *Style      `json:"style,omitempty"`
	Text       *TextFacts  `json:"text,omitempty"`
	Image      *ImageFacts `json:"image,omitempty"`
}

// Frame holds raw geometry.
type Frame struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// Complete reports whether position and size are all known.
func (f *Frame) Complete() bool {
	return f != nil && f.X != nil && f.Y != nil && f.Width != nil && f.Height != nil
}

// HasSize reports whether width and height are known.
func (f *Frame) HasSize() bool {
	return f != nil && f.Width != nil && f.Height != nil
}

// Layout holds auto-layout and constraint metadata.
type Layout struct {
	LayoutMode             string       `json:"layoutMode,omitempty"`
	LayoutPositioning      string       `json:"layoutPositioning,omitempty"`
	LayoutSizingHorizontal string       `json:"layoutSizingHorizontal,omitempty"`
	LayoutSizingVertical   string       `json:"layoutSizingVertical,omitempty"`
	Constraints            *Constraints `json:"constraints,omitempty"`
	LayoutGrow             *float64     `json:"layoutGrow,omitempty"`
	LayoutAlign            string       `json:"layoutAlign,omitempty"`
	ItemSpacing            *float64     `json:"itemSpacing,omitempty"`
	PaddingLeft            *float64     `json:"paddingLeft,omitempty"`
	PaddingRight           *float64     `json:"paddingRight,omitempty"`
	PaddingTop             *float64     `json:"paddingTop,omitempty"`
	PaddingBottom          *float64     `json:"paddingBottom,omitempty"`
	PrimaryAxisAlignItems  string       `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems  string       `json:"counterAxisAlignItems,omitempty"`
	LayoutWrap             string       `json:"layoutWrap,omitempty"`
}

// Constraints are the design tool's per-axis resizing constraints (MIN, MAX, CENTER, STRETCH, SCALE).
type Constraints struct {
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`
}

// Auto-layout modes.
const (
	LayoutHorizontal = "HORIZONTAL"
	LayoutVertical   = "VERTICAL"
)

// IsAutoLayout reports whether the layout mode arranges children along an axis.
func (l *Layout) IsAutoLayout() bool {
	if l == nil {
		return false
	}
	mode := strings.ToUpper(l.LayoutMode)
	return mode == LayoutHorizontal || mode == LayoutVertical
}

// Color is a design-token reference with a literal fallback.
type Color struct {
	Token       string `json:"token,omitempty"`
	FallbackHex string `json:"fallbackHex,omitempty"`
}

// Fill is a solid paint.
type Fill struct {
	Color   Color    `json:"color"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Stroke is a solid border paint.
type Stroke struct {
	Color   Color    `json:"color"`
	Width   *float64 `json:"width,omitempty"`
	Align   string   `json:"align,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Offset is a 2D displacement.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shadow is a drop or inner shadow effect.
type Shadow struct {
	Type    string   `json:"type"`
	Color   *Color   `json:"color,omitempty"`
	Offset  *Offset  `json:"offset,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
	Spread  *float64 `json:"spread,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Style holds visual attributes.
type Style struct {
	BackgroundColor *Fill    `json:"backgroundColor,omitempty"`
	Stroke          *Stroke  `json:"stroke,omitempty"`
	CornerRadius    *float64 `json:"cornerRadius,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
	ClipsContent    bool     `json:"clipsContent,omitempty"`
	Shadows         []Shadow `json:"shadows,omitempty"`
}

// Font is a text-style token with a literal fallback.
type Font struct {
	Token    string        `json:"token,omitempty"`
	Fallback *FontFallback `json:"fallback,omitempty"`
}

// FontFallback describes a font without a token.
type FontFallback struct {
	Name   string   `json:"name,omitempty"`
	Size   *float64 `json:"size,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// TextFacts is only present on TEXT nodes.
type TextFacts struct {
	Characters          string `json:"characters,omitempty"`
	CharactersTruncated bool   `json:"charactersTruncated,omitempty"`
	Font                *Font  `json:"font,omitempty"`
	TextColor           *Color `json:"textColor,omitempty"`
}

// ImageFacts describes an image paint or asset reference.
type ImageFacts struct {
	ImageHash string   `json:"imageHash,omitempty"`
	ScaleMode string   `json:"scaleMode,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
}
