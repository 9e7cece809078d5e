// Package hints computes advisory suggestions for the node an agent is about to decide.
//
// Every function here is a pure read of the indexed state. Hints are never
// binding and are never written back.
package hints

import (
	"strings"

	"github.com/aretw0/figspec/pkg/domain"
)

// Name-token synonym sets, checked in this priority order.
var (
	tableTokens      = tokenSet("table", "tableview", "list", "feed")
	collectionTokens = tokenSet("collection", "collectionview", "grid", "carousel", "gallery")
	scrollTokens     = tokenSet("scroll", "scrollview", "scroller", "pager", "pageview")
	buttonTokens     = tokenSet("button", "btn", "cta")
	imageTokens      = tokenSet("icon", "image", "img", "avatar", "photo", "logo", "thumbnail", "thumb")
	labelTokens      = tokenSet("label", "title", "subtitle", "caption", "headline", "body", "description", "text")
)

type tokens map[string]struct{}

func tokenSet(words ...string) tokens {
	s := make(tokens, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s tokens) any(words []string) bool {
	for _, w := range words {
		if _, ok := s[w]; ok {
			return true
		}
	}
	return false
}

// Component suggests a target class for rec.
//
// Precedence: node type, then auto-layout axis, then name tokens
// (list/grid/scroll, button, image, label), then the generic container.
func Component(rec *domain.NodeRecord, p domain.Profile) *domain.ComponentHint {
	switch strings.ToUpper(rec.Type) {
	case "TEXT":
		return &domain.ComponentHint{Base: p.Label, Reasons: []string{"figma_type=TEXT"}}
	case "IMAGE":
		return &domain.ComponentHint{Base: p.Image, Reasons: []string{"figma_type=IMAGE"}}
	}

	if l := rec.Facts.Layout; l.IsAutoLayout() {
		mode := strings.ToUpper(l.LayoutMode)
		hint := &domain.ComponentHint{Reasons: []string{"layoutMode=" + mode}}
		if mode == domain.LayoutHorizontal {
			hint.Base, hint.Axis = p.HStack, "horizontal"
		} else {
			hint.Base, hint.Axis = p.VStack, "vertical"
		}
		return hint
	}

	words := rec.Facts.NameTokens
	isTable := tableTokens.any(words)
	isCollection := collectionTokens.any(words)
	isScroll := scrollTokens.any(words)

	switch {
	case isTable || isCollection || isScroll:
		reasons := []string{"name_suggests_list_or_scroll"}
		switch {
		case isCollection:
			return &domain.ComponentHint{Base: p.Grid, Reasons: reasons}
		case isTable:
			return &domain.ComponentHint{Base: p.List, Reasons: reasons}
		default:
			return &domain.ComponentHint{Base: p.Scroll, Reasons: reasons}
		}
	case buttonTokens.any(words):
		return &domain.ComponentHint{Base: p.Button, Reasons: []string{"name_suggests_button"}}
	case imageTokens.any(words):
		return &domain.ComponentHint{Base: p.Image, Reasons: []string{"name_suggests_image"}}
	case labelTokens.any(words):
		return &domain.ComponentHint{Base: p.Label, Reasons: []string{"name_suggests_text"}}
	}

	return &domain.ComponentHint{Base: p.Container, Reasons: []string{"default"}}
}
