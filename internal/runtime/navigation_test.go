package runtime_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/figspec/internal/runtime"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_RootHasNoParent(t *testing.T) {
	e, s := indexInbox(t, domain.UIKit)

	res, err := e.Next(s)
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, "0:1", res.Node.ID)
	assert.Nil(t, res.Parent)
	assert.Nil(t, res.ParentDecision)
	assert.Equal(t, domain.Requirements{}, res.Requirements)
	assert.Len(t, res.Children, 2)
	require.NotNil(t, res.Hints.ComponentHint)
	assert.Equal(t, "UIView", res.Hints.ComponentHint.Base)
	assert.Empty(t, res.Hints.PinsCandidate)
}

func TestNext_ParentContextAndHints(t *testing.T) {
	e, s := indexInbox(t, domain.UIKit)
	s.Decisions["0:1"] = component("UIView")

	res, err := e.Next(s)
	require.NoError(t, err)
	assert.Equal(t, "1:1", res.Node.ID)
	assert.Equal(t, "0:1", res.Parent.ID)
	assert.Equal(t, "UIView", res.ParentDecision.Base())
	assert.Equal(t, "UIStackView", res.Hints.ComponentHint.Base)
	assert.Equal(t, "horizontal", res.Hints.ComponentHint.Axis)
	assert.Equal(t, "pins=L=0:R=0:T=0:W=375:H=64", res.Hints.PinsCandidate)
}

func TestNext_CellRequirementUnderList(t *testing.T) {
	e, s := indexInbox(t, domain.UIKit)
	for _, id := range []string{"0:1", "1:1", "1:2", "1:3"} {
		s.Decisions[id] = component("UIView")
	}
	s.Decisions["2:1"] = component("UITableView")

	res, err := e.Next(s)
	require.NoError(t, err)
	assert.Equal(t, "2:2", res.Node.ID)
	assert.Equal(t, "UITableViewCell", res.Requirements.MustUseComponentBase)
	require.NotNil(t, res.Hints.CellSizingHint)
	assert.Equal(t, domain.CellSelfSizing, res.Hints.CellSizingHint.CellSizing)
}

func TestNext_ButtonRequirements(t *testing.T) {
	e, s := indexInbox(t, domain.SwiftUI)
	s.Decisions["0:1"] = component("View")
	s.Decisions["1:1"] = component("Button")
	s.Decisions["2:1"] = component("List")

	res, err := e.Next(s)
	require.NoError(t, err)
	assert.Equal(t, "1:2", res.Node.ID)
	assert.Equal(t, []string{"Text", "Image", "Label", "View"}, res.Requirements.AllowedComponentBases)
	assert.Equal(t, "button-label", res.Requirements.Role)
	assert.Equal(t, "Text", res.Hints.ComponentHint.Base)
}

func TestNext_CursorProgressesToDone(t *testing.T) {
	e, s := indexInbox(t, domain.UIKit)

	seen := make(map[string]bool)
	for range len(s.Nodes) {
		res, err := e.Next(s)
		require.NoError(t, err)
		require.False(t, res.Done)
		id := res.Node.ID
		assert.False(t, seen[id], "cursor returned %s twice", id)
		seen[id] = true

		var applied *domain.ApplyResult
		s, applied = e.Apply(s, &runtime.Patch{Items: []runtime.PatchItem{{ID: id, Decision: component("UIView")}}})
		require.Equal(t, 1, applied.AppliedCount)
	}

	res, err := e.Next(s)
	require.NoError(t, err)
	assert.True(t, res.Done)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"done": true}`, string(data))
}

func TestNext_EmptyDecisionCountsAsDecided(t *testing.T) {
	_, s := indexInbox(t, domain.UIKit)
	s.Decisions["0:1"] = domain.Decision{}

	id, ok := runtime.NextUndecided(s)
	require.True(t, ok)
	assert.Equal(t, "1:1", id)
}

func TestNext_BrokenOrderIsInvalidState(t *testing.T) {
	e, s := indexInbox(t, domain.UIKit)
	s.BFS = append([]string{"ghost"}, s.BFS...)

	_, err := e.Next(s)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
