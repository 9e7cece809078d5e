package domain

// NodeRecord is one included design node after indexing.
type NodeRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	// ParentID is nil only for the root.
	ParentID *string  `json:"parentId"`
	Depth    int      `json:"depth"`
	ChildIDs []string `json:"childIds"`
	Facts    Facts    `json:"facts"`
}

// Parent returns the parent id and whether the record has one.
func (r NodeRecord) Parent() (string, bool) {
	if r.ParentID == nil {
		return "", false
	}
	return *r.ParentID, true
}

// Skeleton is the cheap orientation view of a node: identity and shape, no facts.
type Skeleton struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Depth      int         `json:"depth"`
	ChildCount int         `json:"childCount"`
	Children   []*Skeleton `json:"children,omitempty"`
}

// Skeleton returns the record's skeleton without children.
func (r NodeRecord) Skeleton() *Skeleton {
	return &Skeleton{
		ID:         r.ID,
		Name:       r.Name,
		Type:       r.Type,
		Depth:      r.Depth,
		ChildCount: len(r.ChildIDs),
	}
}
