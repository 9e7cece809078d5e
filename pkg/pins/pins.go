// Package pins implements the compact geometric constraint grammar used in decisions and hints.
//
//	pins=K=V:K=V:...
//
// Keys are L (leading), R (trailing), T (top), B (bottom), CX and CY (centers,
// relative to the parent's midpoint), W and H (constant size). Values are points;
// trailing and bottom pins are usually negative insets.
package pins

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const prefix = "pins="

// Allowed lists the keys accepted by Parse.
var Allowed = []string{"L", "R", "T", "B", "CX", "CY", "W", "H"}

// Parse error codes.
const (
	ErrNotAString    = "pins_not_a_string"
	ErrMissingPrefix = "pins_missing_prefix"
	ErrEmpty         = "pins_empty"
	ErrNoPairs       = "pins_no_pairs"
	ErrBadPart       = "pins_bad_part:"
	ErrUnknownKey    = "pins_unknown_key:"
	ErrBadValue      = "pins_bad_value:"
)

// Pin is one key/value pair.
type Pin struct {
	Key   string
	Value float64
}

// Set is an ordered list of pins with unique keys.
type Set []Pin

// Get returns the value for key.
func (s Set) Get(key string) (float64, bool) {
	for _, p := range s {
		if p.Key == key {
			return p.Value, true
		}
	}
	return 0, false
}

// String formats the set in the pins grammar.
func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, p := range s {
		parts = append(parts, p.Key+"="+FormatValue(p.Value))
	}
	return prefix + strings.Join(parts, ":")
}

// Parse reads a raw decision value. It returns the parsed set, or the list
// of error codes when the value is not a well-formed pins string.
// Later duplicates of a key overwrite earlier ones in place.
func Parse(raw any) (Set, []string) {
	str, ok := raw.(string)
	if !ok || strings.TrimSpace(str) == "" {
		return nil, []string{ErrNotAString}
	}
	str = strings.TrimSpace(str)
	if !strings.HasPrefix(str, prefix) {
		return nil, []string{ErrMissingPrefix}
	}
	body := strings.TrimSpace(str[len(prefix):])
	if body == "" {
		return nil, []string{ErrEmpty}
	}

	var out Set
	var errs []string
	for _, part := range strings.Split(body, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, found := strings.Cut(part, "=")
		if !found {
			errs = append(errs, ErrBadPart+part)
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		if !slices.Contains(Allowed, key) {
			errs = append(errs, ErrUnknownKey+key)
			continue
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			errs = append(errs, ErrBadValue+key+"="+val)
			continue
		}
		if i := slices.IndexFunc(out, func(p Pin) bool { return p.Key == key }); i >= 0 {
			out[i].Value = f
			continue
		}
		out = append(out, Pin{Key: key, Value: f})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if len(out) == 0 {
		return nil, []string{ErrNoPairs}
	}
	return out, nil
}

// FormatValue renders integral values without a decimal point.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Builder accumulates pins, keeping the first value written for each key.
type Builder struct {
	set Set
}

// Add appends key=value unless key is already present.
func (b *Builder) Add(key string, value float64) {
	if _, ok := b.set.Get(key); ok {
		return
	}
	b.set = append(b.set, Pin{Key: key, Value: value})
}

// Len returns the number of pins collected.
func (b *Builder) Len() int { return len(b.set) }

// Set returns the collected pins.
func (b *Builder) Set() Set { return slices.Clone(b.set) }
