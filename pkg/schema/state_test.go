package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valid = `{
	"version": 1,
	"uiSystem": "UIKit",
	"rootId": "0:1",
	"nodes": {
		"0:1": {"id": "0:1", "name": "Screen", "type": "FRAME", "parentId": null, "depth": 0, "childIds": ["1:1"], "facts": {"nameTokens": ["screen"], "visible": true, "locked": false}},
		"1:1": {"id": "1:1", "name": "Title", "type": "TEXT", "parentId": "0:1", "depth": 1, "childIds": [], "facts": {"nameTokens": ["title"], "visible": true, "locked": false, "text": {"characters": "Hi"}}}
	},
	"bfs": ["0:1", "1:1"],
	"decisions": {
		"0:1": {"component": {"base": "UIView"}, "layout": {"kind": "root"}}
	}
}`

func TestDecodeState_Valid(t *testing.T) {
	s, err := schema.DecodeState([]byte(valid))
	require.NoError(t, err)
	assert.Equal(t, domain.UIKit, s.UISystem)
	assert.Equal(t, []string{"0:1", "1:1"}, s.BFS)
	require.Contains(t, s.Nodes, "1:1")
	assert.Equal(t, "0:1", *s.Nodes["1:1"].ParentID)
	assert.Equal(t, "Hi", s.Nodes["1:1"].Facts.Text.Characters)
	assert.Equal(t, "UIView", s.Decisions["0:1"].Base())
}

func TestDecodeState_FloatVersion(t *testing.T) {
	doc := strings.Replace(valid, `"version": 1,`, `"version": 1.0,`, 1)
	s, err := schema.DecodeState([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, domain.StateVersion, s.Version)
	assert.Equal(t, "0:1", s.RootID)
}

func TestDecodeState_MissingDecisionsBecomesEmpty(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(valid), &doc))
	delete(doc, "decisions")
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	s, err := schema.DecodeState(data)
	require.NoError(t, err)
	assert.NotNil(t, s.Decisions)
	assert.Empty(t, s.Decisions)
}

func TestDecodeState_VersionGateRunsFirst(t *testing.T) {
	for _, doc := range []string{
		`{"version": 2}`,
		`{"version": "1", "nodes": 5}`,
		`{"nodes": {}}`,
		`{"version": 1.5}`,
	} {
		_, err := schema.DecodeState([]byte(doc))
		assert.ErrorIs(t, err, domain.ErrUnsupportedVersion, doc)
		assert.NotErrorIs(t, err, domain.ErrInvalidState, doc)
	}
}

func TestDecodeState_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		wantAt string
	}{
		{
			name:   "decision is not an object",
			mutate: func(doc map[string]any) { doc["decisions"].(map[string]any)["1:1"] = "UILabel" },
			wantAt: "/decisions/1:1",
		},
		{
			name:   "unknown ui system",
			mutate: func(doc map[string]any) { doc["uiSystem"] = "Compose" },
			wantAt: "/uiSystem",
		},
		{
			name:   "node without childIds",
			mutate: func(doc map[string]any) { delete(doc["nodes"].(map[string]any)["1:1"].(map[string]any), "childIds") },
			wantAt: "/nodes/1:1",
		},
		{
			name:   "missing bfs",
			mutate: func(doc map[string]any) { delete(doc, "bfs") },
			wantAt: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(valid), &doc))
			tt.mutate(doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)

			_, err = schema.DecodeState(data)
			require.ErrorIs(t, err, domain.ErrInvalidState)

			violations := schema.ValidationErrors(err)
			require.NotEmpty(t, violations)
			found := false
			for _, v := range violations {
				var verr *schema.ValidationError
				require.ErrorAs(t, v, &verr)
				if strings.HasPrefix(verr.Path, tt.wantAt) {
					found = true
				}
			}
			assert.True(t, found, "no violation at %s in %v", tt.wantAt, violations)
		})
	}
}

func TestDecodeState_NotJSON(t *testing.T) {
	_, err := schema.DecodeState([]byte(`{"version": 1`))
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = schema.DecodeState([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDecodeState_RootMustExist(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(valid), &doc))
	doc["rootId"] = "9:9"
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = schema.DecodeState(data)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestEncodeState_RoundTrip(t *testing.T) {
	s, err := schema.DecodeState([]byte(valid))
	require.NoError(t, err)

	for _, pretty := range []bool{false, true} {
		data, err := schema.EncodeState(s, pretty)
		require.NoError(t, err)
		assert.Equal(t, pretty, strings.Contains(string(data), "\n"))

		back, err := schema.DecodeState(data)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}
