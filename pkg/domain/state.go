package domain

import (
	"maps"
	"slices"
)

// StateVersion is the only document version this build reads or writes.
const StateVersion = 1

// DefaultStatePath is where the CLI keeps the state document unless told otherwise.
const DefaultStatePath = ".ai_tmp/figma_ios_state.json"

// State is the single persisted document shared between invocations.
type State struct {
	Version  int    `json:"version"`
	UISystem string `json:"uiSystem"`
	RootID   string `json:"rootId"`

	// Nodes maps node id to its record.
	Nodes map[string]*NodeRecord `json:"nodes"`

	// BFS is the breadth-first order fixed at index time. It is never reordered.
	BFS []string `json:"bfs"`

	// Decisions grows through apply; a later decision for an id replaces the earlier one.
	Decisions map[string]Decision `json:"decisions"`
}

// NewState creates a fresh document with no decisions.
func NewState(uiSystem, rootID string, nodes map[string]*NodeRecord, bfs []string) *State {
	if nodes == nil {
		nodes = make(map[string]*NodeRecord)
	}
	if bfs == nil {
		bfs = []string{}
	}
	return &State{
		Version:   StateVersion,
		UISystem:  uiSystem,
		RootID:    rootID,
		Nodes:     nodes,
		BFS:       bfs,
		Decisions: make(map[string]Decision),
	}
}

// Node returns the record for id or ErrUnknownNode.
func (s *State) Node(id string) (*NodeRecord, error) {
	rec, ok := s.Nodes[id]
	if !ok || rec == nil {
		return nil, ErrUnknownNode
	}
	return rec, nil
}

// Decision returns the recorded decision for id, if any.
func (s *State) Decision(id string) (Decision, bool) {
	d, ok := s.Decisions[id]
	return d, ok
}

// Profile returns the UI-system profile of the document.
func (s *State) Profile() Profile {
	p, _ := LookupProfile(s.UISystem)
	return p
}

// Clone copies the document's maps and order so that writes to the copy never reach s.
// Node records are shared; nothing mutates them after indexing.
func (s *State) Clone() *State {
	out := *s
	out.Nodes = maps.Clone(s.Nodes)
	out.BFS = slices.Clone(s.BFS)
	out.Decisions = make(map[string]Decision, len(s.Decisions))
	for id, d := range s.Decisions {
		out.Decisions[id] = d.Clone()
	}
	return &out
}
