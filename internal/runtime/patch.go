package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/aretw0/figspec/pkg/domain"
)

// PatchItem is one normalized (id, decision) pair.
type PatchItem struct {
	ID       string
	Decision domain.Decision
}

// Patch is a normalized patch payload plus the items dropped while normalizing.
type Patch struct {
	Items   []PatchItem
	Skipped []domain.SkippedPatch
}

// ParsePatch normalizes the three accepted payload shapes:
//
//	{"id": "...", ...decision}
//	[{"id": "...", ...decision}, ...]
//	{"decisions": {"<id>": {...decision}, ...}}
//
// Items inside an accepted shape that are not objects or lack an id are
// skipped individually. A payload matching none of the shapes is ErrMalformedPatch.
func ParsePatch(data []byte) (*Patch, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrMalformedPatch)
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPatch, err)
		}
		p := &Patch{}
		for i, raw := range items {
			item, ok := decodeObject(raw)
			if !ok {
				p.Skipped = append(p.Skipped, domain.SkippedPatch{Reason: fmt.Sprintf("item %d is not an object", i)})
				continue
			}
			p.addWithID(item, fmt.Sprintf("item %d", i))
		}
		return p, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPatch, err)
		}
		if raw, ok := obj["decisions"]; ok {
			if p, ok := parseDecisionMap(raw); ok {
				return p, nil
			}
		}
		item, _ := decodeObject(data)
		if id, _ := item["id"].(string); id != "" {
			p := &Patch{}
			p.addWithID(item, "payload")
			return p, nil
		}
	}

	return nil, domain.ErrMalformedPatch
}

func (p *Patch) addWithID(item map[string]any, where string) {
	id, _ := item["id"].(string)
	if id == "" {
		p.Skipped = append(p.Skipped, domain.SkippedPatch{Reason: where + " has no string id"})
		return
	}
	dec := make(domain.Decision, len(item))
	for k, v := range item {
		if k != "id" {
			dec[k] = v
		}
	}
	p.Items = append(p.Items, PatchItem{ID: id, Decision: dec})
}

// parseDecisionMap reads {"<id>": {...}} keeping the payload's key order.
func parseDecisionMap(raw json.RawMessage) (*Patch, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}
	p := &Patch{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		id, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		obj, ok := decodeObject(value)
		switch {
		case id == "":
			p.Skipped = append(p.Skipped, domain.SkippedPatch{Reason: "empty id"})
		case !ok:
			p.Skipped = append(p.Skipped, domain.SkippedPatch{ID: id, Reason: "decision is not an object"})
		default:
			p.Items = append(p.Items, PatchItem{ID: id, Decision: obj})
		}
	}
	return p, true
}

func decodeObject(raw []byte) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Apply merges patch into a copy of state. Unknown ids are skipped with a
// warning; accepted items replace any earlier decision for the same id.
func (e *Engine) Apply(state *domain.State, patch *Patch) (*domain.State, *domain.ApplyResult) {
	next := state.Clone()
	res := &domain.ApplyResult{OK: true, Applied: []string{}, Skipped: slices.Clone(patch.Skipped)}

	for _, item := range patch.Items {
		if _, ok := next.Nodes[item.ID]; !ok {
			e.logger.Warn("patch references unknown node id; skipped", "id", item.ID)
			res.Skipped = append(res.Skipped, domain.SkippedPatch{ID: item.ID, Reason: "unknown node id"})
			continue
		}
		next.Decisions[item.ID] = item.Decision
		res.Applied = append(res.Applied, item.ID)
	}
	for _, s := range patch.Skipped {
		e.logger.Warn("patch item skipped", "id", s.ID, "reason", s.Reason)
	}

	res.AppliedCount = len(res.Applied)
	return next, res
}
