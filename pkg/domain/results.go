package domain

import "encoding/json"

// IndexResult reports a freshly created state document.
type IndexResult struct {
	OK        bool     `json:"ok"`
	State     string   `json:"state"`
	RootID    string   `json:"rootId"`
	NodeCount int      `json:"nodeCount"`
	BFSCount  int      `json:"bfsCount"`
	Warnings  []string `json:"warnings,omitempty"`
}

// SkeletonResult wraps a depth-bounded skeleton tree.
type SkeletonResult struct {
	Node *Skeleton `json:"node"`
}

// ChildrenResult lists the direct children of a node.
type ChildrenResult struct {
	NodeID   string      `json:"nodeId"`
	Children []*Skeleton `json:"children"`
}

// FactsResult carries one node's facts.
type FactsResult struct {
	NodeID string `json:"nodeId"`
	Facts  Facts  `json:"facts"`
}

// Requirements are the constraints a parent's decision places on a child.
type Requirements struct {
	MustUseComponentBase  string   `json:"mustUseComponentBase,omitempty"`
	AllowedComponentBases []string `json:"allowedComponentBases,omitempty"`
	Role                  string   `json:"role,omitempty"`
	Hint                  string   `json:"hint,omitempty"`
}

// ComponentHint is a suggested target class with the rule that produced it.
type ComponentHint struct {
	Base    string   `json:"base"`
	Reasons []string `json:"reasons"`
	Axis    string   `json:"axis,omitempty"`
}

// CellSizingHint suggests how a list/grid cell should size itself.
type CellSizingHint struct {
	CellSizing string `json:"cellSizing"`
	FixedSize  *Size  `json:"fixedSize,omitempty"`
	Reason     string `json:"reason"`
}

// Hints is the advisory bundle attached to a next result. Nothing in it is binding.
type Hints struct {
	PinsCandidate   string          `json:"pinsCandidate,omitempty"`
	ComponentHint   *ComponentHint  `json:"componentHint,omitempty"`
	CellSizingHint  *CellSizingHint `json:"cellSizingHint,omitempty"`
	ContentModeHint string          `json:"contentModeHint,omitempty"`
}

// NextResult is everything an external agent needs to decide one node.
// When Done is true every other field is empty.
type NextResult struct {
	Done           bool         `json:"done,omitempty"`
	UISystem       string       `json:"uiSystem,omitempty"`
	Node           *Skeleton    `json:"node,omitempty"`
	Parent         *Skeleton    `json:"parent"`
	ParentDecision Decision     `json:"parentDecision"`
	Requirements   Requirements `json:"requirements"`
	Facts          *Facts       `json:"facts,omitempty"`
	Children       []*Skeleton  `json:"children"`
	Hints          Hints        `json:"hints"`
}

// SkippedPatch records a patch item that was not applied.
type SkippedPatch struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ApplyResult reports which ids were written.
type ApplyResult struct {
	OK           bool           `json:"ok"`
	Applied      []string       `json:"applied"`
	AppliedCount int            `json:"appliedCount"`
	Skipped      []SkippedPatch `json:"skipped,omitempty"`
}

// StatusReport summarizes workflow progress.
type StatusReport struct {
	UISystem       string  `json:"uiSystem"`
	RootID         string  `json:"rootId"`
	NodeCount      int     `json:"nodeCount"`
	DecidedCount   int     `json:"decidedCount"`
	RemainingCount int     `json:"remainingCount"`
	BFSCount       int     `json:"bfsCount"`
	NextNodeID     *string `json:"nextNodeId"`
}

// BatchItem is one BFS position in a batch slice.
type BatchItem struct {
	Index    int       `json:"index"`
	ParentID *string   `json:"parentId"`
	Decided  bool      `json:"decided"`
	Node     *Skeleton `json:"node"`
}

// BatchResult is a slice of the breadth-first order.
type BatchResult struct {
	Start      int         `json:"start"`
	Count      int         `json:"count"`
	TotalNodes int         `json:"totalNodes"`
	Items      []BatchItem `json:"items"`
}

// Issue is one validator finding.
type Issue struct {
	NodeID string `json:"nodeId"`
	Code   string `json:"code"`
	Detail any    `json:"detail,omitempty"`
}

// ValidationReport is the validator's result. OK is false only when Errors is non-empty.
type ValidationReport struct {
	OK       bool    `json:"ok"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// MarshalJSON collapses a finished cursor to {"done": true}.
func (r NextResult) MarshalJSON() ([]byte, error) {
	if r.Done {
		return []byte(`{"done":true}`), nil
	}
	type plain NextResult
	return json.Marshal(plain(r))
}

// Defaults for query operations when the caller gives no bound.
const (
	DefaultSkeletonDepth = 2
	DefaultBatchSize     = 20
)
