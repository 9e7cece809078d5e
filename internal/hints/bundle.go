package hints

import "github.com/aretw0/figspec/pkg/domain"

// For computes the hint bundle for rec. parent may be nil for the root;
// req are the requirements already derived from the parent's decision.
func For(rec, parent *domain.NodeRecord, req domain.Requirements, p domain.Profile) domain.Hints {
	h := domain.Hints{
		PinsCandidate:   Pins(rec, parent),
		ComponentHint:   Component(rec, p),
		ContentModeHint: ContentMode(rec.Facts, p),
	}
	if req.MustUseComponentBase != "" && p.IsCell(req.MustUseComponentBase) {
		h.CellSizingHint = CellSizing(rec)
	}
	return h
}
