package domain

import "encoding/json"

// UndecidedBase marks an exported node that has no decision yet.
const UndecidedBase = "__UNDECIDED__"

// Source identifies the design node an exported node came from.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ExportNode is one node of the reassembled specification tree.
// Decision keys are flattened to the top level next to source and children.
type ExportNode struct {
	Source   Source
	Fields   map[string]any
	Children []*ExportNode
}

// Base returns the trimmed component.base of the exported node.
func (n *ExportNode) Base() string {
	return Decision(n.Fields).Base()
}

// Properties returns the properties object, creating it when create is set.
func (n *ExportNode) Properties(create bool) map[string]any {
	if p, ok := n.Fields["properties"].(map[string]any); ok {
		return p
	}
	if !create {
		return nil
	}
	if n.Fields == nil {
		n.Fields = make(map[string]any)
	}
	p := make(map[string]any)
	n.Fields["properties"] = p
	return p
}

// MarshalJSON flattens Fields next to source and children.
func (n *ExportNode) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Fields)+2)
	for k, v := range n.Fields {
		out[k] = v
	}
	out["source"] = n.Source
	children := n.Children
	if children == nil {
		children = []*ExportNode{}
	}
	out["children"] = children
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (n *ExportNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = ExportNode{Fields: make(map[string]any)}
	for k, v := range raw {
		switch k {
		case "source":
			if err := json.Unmarshal(v, &n.Source); err != nil {
				return err
			}
		case "children":
			if err := json.Unmarshal(v, &n.Children); err != nil {
				return err
			}
		default:
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			n.Fields[k] = val
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first, parents first.
func (n *ExportNode) Walk(fn func(*ExportNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// ExportDocument is the final export payload.
type ExportDocument struct {
	UISystem string      `json:"uiSystem"`
	Root     *ExportNode `json:"root"`
}
