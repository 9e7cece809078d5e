package domain

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decision is an externally supplied mapping from a node to a target component.
//
// Only component.base is required. Everything else (layout, properties and any
// future keys) is kept verbatim and decoded on demand.
type Decision map[string]any

// Component returns the component object, if the decision carries one.
func (d Decision) Component() (map[string]any, bool) {
	c, ok := d["component"].(map[string]any)
	return c, ok
}

// Base returns the trimmed component.base, or "" when missing or not a string.
func (d Decision) Base() string {
	c, ok := d.Component()
	if !ok {
		return ""
	}
	base, _ := c["base"].(string)
	return strings.TrimSpace(base)
}

// RawLayout returns the layout value and whether the key is present.
func (d Decision) RawLayout() (any, bool) {
	v, ok := d["layout"]
	return v, ok && v != nil
}

// Properties returns the properties object, or nil.
func (d Decision) Properties() map[string]any {
	p, _ := d["properties"].(map[string]any)
	return p
}

// Clone returns a shallow copy of the decision's top-level keys.
func (d Decision) Clone() Decision {
	out := make(Decision, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Layout kinds understood by the validator.
const (
	LayoutKindRoot      = "root"
	LayoutKindStack     = "stack"
	LayoutKindStackItem = "stackItem"
	LayoutKindPins      = "pins"
	LayoutKindList      = "list"
	LayoutKindScroll    = "scroll"
)

// KnownLayoutKinds lists every layout.kind the validator accepts without a warning.
var KnownLayoutKinds = []string{
	LayoutKindRoot, LayoutKindStack, LayoutKindStackItem,
	LayoutKindPins, LayoutKindList, LayoutKindScroll,
}

// Cell sizing modes.
const (
	CellSelfSizing = "selfSizing"
	CellFixed      = "fixed"
)

// LayoutSpec is the typed view of a decision's layout object.
type LayoutSpec struct {
	Kind       string         `mapstructure:"kind"`
	Axis       string         `mapstructure:"axis"`
	Pins       *string        `mapstructure:"pins"`
	CellSizing string         `mapstructure:"cellSizing"`
	FixedSize  *Size          `mapstructure:"fixedSize"`
	Extra      map[string]any `mapstructure:",remain"`
}

// Size is a width/height pair; either side may be missing.
type Size struct {
	Width  *float64 `mapstructure:"width" json:"width,omitempty"`
	Height *float64 `mapstructure:"height" json:"height,omitempty"`
}

// Complete reports whether both dimensions are set.
func (s *Size) Complete() bool {
	return s != nil && s.Width != nil && s.Height != nil
}

// LayoutSpec decodes the layout object. Fields whose values have the wrong
// type are left at their zero value and reported in the returned error; the
// rest of the spec is still populated. A nil spec means there is no layout
// object at all.
func (d Decision) LayoutSpec() (*LayoutSpec, error) {
	raw, ok := d.RawLayout()
	if !ok {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, nil
	}

	var spec LayoutSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return nil, err
	}
	return &spec, decoder.Decode(m)
}
