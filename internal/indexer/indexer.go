// Package indexer flattens a raw design tree into node records and a breadth-first order.
package indexer

import (
	"fmt"

	"github.com/aretw0/figspec/internal/facts"
	"github.com/aretw0/figspec/pkg/domain"
)

// Options controls which nodes are indexed and how facts are extracted.
type Options struct {
	IncludeInvisible bool
	Facts            facts.Options
}

// DefaultOptions returns the indexing defaults.
func DefaultOptions() Options {
	return Options{Facts: facts.DefaultOptions()}
}

// Result is the output of Index.
type Result struct {
	RootID string
	Nodes  map[string]*domain.NodeRecord
	BFS    []string
	// Warnings lists per-node problems that were skipped, such as duplicate ids.
	Warnings []string
}

// SelectRoot accepts either a node object or a wrapper carrying it under "document".
func SelectRoot(payload any) (map[string]any, error) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: input JSON root must be an object", domain.ErrInvalidInput)
	}
	if doc, ok := m["document"].(map[string]any); ok {
		return doc, nil
	}
	return m, nil
}

// Index walks the tree once and records every included node.
//
// Hidden nodes are excluded along with their subtrees unless IncludeInvisible
// is set. When an id repeats, the first node visited keeps it and later ones
// are dropped with a warning; the dropped node is also left out of its
// parent's child list so the tree stays consistent.
func Index(root map[string]any, opts Options) (*Result, error) {
	rootID, _ := root["id"].(string)
	if rootID == "" {
		return nil, fmt.Errorf("%w: root node is missing a string 'id'", domain.ErrInvalidInput)
	}
	if !included(root, opts) {
		return nil, fmt.Errorf("%w: root node %s is not visible", domain.ErrInvalidInput, rootID)
	}

	ix := &indexer{opts: opts, nodes: make(map[string]*domain.NodeRecord)}
	ix.visit(root, nil, 0)

	return &Result{
		RootID:   rootID,
		Nodes:    ix.nodes,
		BFS:      BFSOrder(ix.nodes, rootID),
		Warnings: ix.warnings,
	}, nil
}

type indexer struct {
	opts     Options
	nodes    map[string]*domain.NodeRecord
	warnings []string
}

// visit records node and its included descendants. It reports whether node
// was recorded under parentID.
func (ix *indexer) visit(node map[string]any, parentID *string, depth int) bool {
	if !included(node, ix.opts) {
		return false
	}
	id, _ := node["id"].(string)
	if id == "" {
		return false
	}
	if _, dup := ix.nodes[id]; dup {
		ix.warnings = append(ix.warnings, fmt.Sprintf("duplicate node id %s; keeping first occurrence", id))
		return false
	}

	name, _ := node["name"].(string)
	typ, _ := node["type"].(string)
	rec := &domain.NodeRecord{
		ID:       id,
		Name:     name,
		Type:     typ,
		ParentID: parentID,
		Depth:    depth,
		ChildIDs: []string{},
		Facts:    facts.Extract(node, ix.opts.Facts),
	}
	ix.nodes[id] = rec

	children, _ := node["children"].([]any)
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if ix.visit(child, &rec.ID, depth+1) {
			childID, _ := child["id"].(string)
			rec.ChildIDs = append(rec.ChildIDs, childID)
		}
	}
	return true
}

func included(node map[string]any, opts Options) bool {
	if opts.IncludeInvisible {
		return true
	}
	if v, ok := node["visible"].(bool); ok {
		return v
	}
	return true
}

// BFSOrder computes the level-order walk from rootID over ChildIDs.
func BFSOrder(nodes map[string]*domain.NodeRecord, rootID string) []string {
	order := make([]string, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		rec, ok := nodes[id]
		if !ok {
			continue
		}
		order = append(order, id)
		queue = append(queue, rec.ChildIDs...)
	}
	return order
}
