package facts

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	caseBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	wordRun      = regexp.MustCompile(`[a-z0-9]+`)
	separators   = strings.NewReplacer("/", " ", "-", " ", "_", " ")
)

// NameTokens splits a node name into lower-case word tokens on case and
// separator boundaries. "PrimaryButton/Label" yields [primary button label].
func NameTokens(raw any) []string {
	if raw == nil {
		return []string{}
	}
	s, ok := raw.(string)
	if !ok {
		s = fmt.Sprint(raw)
	}
	s = caseBoundary.ReplaceAllString(s, "$1 $2")
	s = separators.Replace(s)
	tokens := wordRun.FindAllString(strings.ToLower(s), -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// number returns a copy of a numeric value, or nil. Booleans are not numbers.
func number(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func firstString(vals ...any) string {
	for _, v := range vals {
		if s := stringOf(v); s != "" {
			return s
		}
	}
	return ""
}

// truthy mirrors the loose visibility flags found in exports: booleans are
// taken as-is, a missing value falls back to def, anything else counts by emptiness.
func truthy(v any, def bool) bool {
	switch b := v.(type) {
	case nil:
		return def
	case bool:
		return b
	case string:
		return b != ""
	case float64:
		return b != 0
	default:
		return true
	}
}
