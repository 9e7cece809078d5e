package runtime

import (
	"fmt"

	"github.com/aretw0/figspec/internal/hints"
	"github.com/aretw0/figspec/pkg/domain"
)

// NextUndecided returns the first id in breadth-first order without a decision.
func NextUndecided(state *domain.State) (string, bool) {
	for _, id := range state.BFS {
		if id == "" {
			continue
		}
		if _, decided := state.Decisions[id]; !decided {
			return id, true
		}
	}
	return "", false
}

// Next returns the context bundle for the next undecided node, or Done.
func (e *Engine) Next(state *domain.State) (*domain.NextResult, error) {
	id, ok := NextUndecided(state)
	if !ok {
		return &domain.NextResult{Done: true}, nil
	}
	rec, err := state.Node(id)
	if err != nil {
		return nil, fmt.Errorf("%w: bfs entry %s has no node record", domain.ErrInvalidState, id)
	}

	profile := state.Profile()
	out := &domain.NextResult{
		UISystem: state.UISystem,
		Node:     rec.Skeleton(),
		Children: childSkeletons(state, rec),
	}
	facts := rec.Facts
	out.Facts = &facts

	var parent *domain.NodeRecord
	if parentID, ok := rec.Parent(); ok {
		if p, err := state.Node(parentID); err == nil {
			parent = p
			out.Parent = p.Skeleton()
		}
		if d, ok := state.Decision(parentID); ok {
			out.ParentDecision = d
		}
	}
	out.Requirements = profile.Requirements(out.ParentDecision.Base())
	out.Hints = hints.For(rec, parent, out.Requirements, profile)

	e.logger.Debug("next node", "id", id, "parent", out.Parent != nil)
	return out, nil
}

// Skeleton returns the depth-bounded skeleton rooted at id (the root when id is empty).
func (e *Engine) Skeleton(state *domain.State, id string, depth int) (*domain.SkeletonResult, error) {
	if id == "" {
		id = state.RootID
	}
	sk, err := skeletonTree(state, id, depth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	return &domain.SkeletonResult{Node: sk}, nil
}

func skeletonTree(state *domain.State, id string, depth int) (*domain.Skeleton, error) {
	rec, err := state.Node(id)
	if err != nil {
		return nil, err
	}
	sk := rec.Skeleton()
	if depth <= 0 {
		return sk, nil
	}
	sk.Children = make([]*domain.Skeleton, 0, len(rec.ChildIDs))
	for _, cid := range rec.ChildIDs {
		child, err := skeletonTree(state, cid, depth-1)
		if err != nil {
			continue
		}
		sk.Children = append(sk.Children, child)
	}
	return sk, nil
}

// Children returns the direct child skeletons of id.
func (e *Engine) Children(state *domain.State, id string) (*domain.ChildrenResult, error) {
	rec, err := state.Node(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	return &domain.ChildrenResult{NodeID: id, Children: childSkeletons(state, rec)}, nil
}

func childSkeletons(state *domain.State, rec *domain.NodeRecord) []*domain.Skeleton {
	out := make([]*domain.Skeleton, 0, len(rec.ChildIDs))
	for _, cid := range rec.ChildIDs {
		if c, err := state.Node(cid); err == nil {
			out = append(out, c.Skeleton())
		}
	}
	return out
}

// Facts returns the stored facts of id.
func (e *Engine) Facts(state *domain.State, id string) (*domain.FactsResult, error) {
	rec, err := state.Node(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	return &domain.FactsResult{NodeID: id, Facts: rec.Facts}, nil
}

// Status counts decided and remaining nodes.
func (e *Engine) Status(state *domain.State) *domain.StatusReport {
	decided := 0
	for id := range state.Decisions {
		if _, ok := state.Nodes[id]; ok {
			decided++
		}
	}
	out := &domain.StatusReport{
		UISystem:       state.UISystem,
		RootID:         state.RootID,
		NodeCount:      len(state.Nodes),
		DecidedCount:   decided,
		RemainingCount: max(0, len(state.Nodes)-decided),
		BFSCount:       len(state.BFS),
	}
	if id, ok := NextUndecided(state); ok {
		out.NextNodeID = &id
	}
	return out
}

// Batch returns up to count entries of the breadth-first order starting at start.
func (e *Engine) Batch(state *domain.State, start, count int) (*domain.BatchResult, error) {
	if start < 0 || count < 0 {
		return nil, fmt.Errorf("%w: start and count must not be negative", domain.ErrInvalidInput)
	}
	out := &domain.BatchResult{Start: start, Count: count, TotalNodes: len(state.BFS), Items: []domain.BatchItem{}}
	end := min(start+count, len(state.BFS))
	for i := start; i < end; i++ {
		rec, err := state.Node(state.BFS[i])
		if err != nil {
			continue
		}
		_, decided := state.Decisions[rec.ID]
		out.Items = append(out.Items, domain.BatchItem{
			Index:    i,
			ParentID: rec.ParentID,
			Decided:  decided,
			Node:     rec.Skeleton(),
		})
	}
	return out, nil
}
