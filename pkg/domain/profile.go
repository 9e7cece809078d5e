package domain

import "slices"

// UI systems.
const (
	UIKit   = "UIKit"
	SwiftUI = "SwiftUI"
)

// UISystems lists the supported target frameworks.
var UISystems = []string{UIKit, SwiftUI}

// Profile names the component classes of one target framework.
type Profile struct {
	System string

	Label     string
	Image     string
	Button    string
	Container string

	// HStack and VStack are the same class when the framework carries the axis as a property.
	HStack string
	VStack string

	List   string
	Grid   string
	Scroll string

	// Cells maps a list/grid container class to the class its direct children must use.
	Cells map[string]string

	ButtonChildren []string
	ButtonRole     string

	// ListRows, when set, is the preferred row classes under List; anything else warns.
	ListRows []string
	ListHint string

	ContentModes map[string]string
}

var profiles = map[string]Profile{
	UIKit: {
		System:    UIKit,
		Label:     "UILabel",
		Image:     "UIImageView",
		Button:    "UIButton",
		Container: "UIView",
		HStack:    "UIStackView",
		VStack:    "UIStackView",
		List:      "UITableView",
		Grid:      "UICollectionView",
		Scroll:    "UICollectionView",
		Cells: map[string]string{
			"UITableView":      "UITableViewCell",
			"UICollectionView": "UICollectionViewCell",
		},
		ButtonChildren: []string{"UILabel", "UIImageView"},
		ButtonRole:     "button-contained",
		ContentModes: map[string]string{
			"FIT":     "scaleAspectFit",
			"FILL":    "scaleAspectFill",
			"STRETCH": "scaleToFill",
			"TILE":    "center",
		},
	},
	SwiftUI: {
		System:         SwiftUI,
		Label:          "Text",
		Image:          "Image",
		Button:         "Button",
		Container:      "View",
		HStack:         "HStack",
		VStack:         "VStack",
		List:           "List",
		Grid:           "ScrollView",
		Scroll:         "ScrollView",
		ButtonChildren: []string{"Text", "Image", "Label", "View"},
		ButtonRole:     "button-label",
		ListRows:       []string{"View", "Text", "Image", "HStack", "VStack", "ZStack"},
		ListHint:       "List children should be row views (usually custom Views).",
		ContentModes: map[string]string{
			"FIT":  "aspectRatio(.fit)",
			"FILL": "aspectRatio(.fill)",
		},
	},
}

// LookupProfile returns the profile for a UI system name.
func LookupProfile(system string) (Profile, bool) {
	p, ok := profiles[system]
	return p, ok
}

// CellFor returns the cell class required under a container class.
func (p Profile) CellFor(base string) (string, bool) {
	c, ok := p.Cells[base]
	return c, ok
}

// IsCell reports whether base is one of the framework's cell classes.
func (p Profile) IsCell(base string) bool {
	for _, c := range p.Cells {
		if c == base {
			return true
		}
	}
	return false
}

// AllowsButtonChild reports whether base may appear directly under a button.
func (p Profile) AllowsButtonChild(base string) bool {
	return slices.Contains(p.ButtonChildren, base)
}

// Requirements derives the constraints a parent's chosen class places on its direct children.
func (p Profile) Requirements(parentBase string) Requirements {
	var req Requirements
	if parentBase == "" {
		return req
	}
	if cell, ok := p.CellFor(parentBase); ok {
		req.MustUseComponentBase = cell
		return req
	}
	if parentBase == p.Button {
		req.AllowedComponentBases = slices.Clone(p.ButtonChildren)
		req.Role = p.ButtonRole
		return req
	}
	if parentBase == p.List && p.ListHint != "" {
		req.Hint = p.ListHint
	}
	return req
}
