package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractState is a small indexed tree with one decision.
func contractState() *domain.State {
	root := "0:1"
	nodes := map[string]*domain.NodeRecord{
		"0:1": {ID: "0:1", Name: "Screen", Type: "FRAME", ChildIDs: []string{"1:1"},
			Facts: domain.Facts{NameTokens: []string{"screen"}, Visible: true}},
		"1:1": {ID: "1:1", Name: "Title", Type: "TEXT", ParentID: &root, Depth: 1, ChildIDs: []string{},
			Facts: domain.Facts{NameTokens: []string{"title"}, Visible: true, Text: &domain.TextFacts{Characters: "Hello"}}},
	}
	s := domain.NewState(domain.UIKit, "0:1", nodes, []string{"0:1", "1:1"})
	s.Decisions["0:1"] = domain.Decision{
		"component": map[string]any{"base": "UIView"},
		"layout":    map[string]any{"kind": "root"},
	}
	return s
}

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := contractState()

		err := store.Save(ctx, key, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state, loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		state := contractState()
		require.NoError(t, store.Save(ctx, key, state))

		state.Decisions["1:1"] = domain.Decision{"component": map[string]any{"base": "UILabel"}}
		require.NoError(t, store.Save(ctx, key, state))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Len(t, loaded.Decisions, 2)
		assert.Equal(t, "UILabel", loaded.Decisions["1:1"].Base())
	})

	t.Run("Loaded State Is Isolated", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, contractState()))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Decisions["1:1"] = domain.Decision{}

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.NotContains(t, again.Decisions, "1:1")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, key, contractState())
		require.NoError(t, err)

		err = store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrStateNotFound, "Load after Delete should return ErrStateNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		require.NoError(t, store.Save(ctx, id1, contractState()))
		require.NoError(t, store.Save(ctx, id2, contractState()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
