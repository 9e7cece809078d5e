package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/figspec/internal/cli"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	next := "1:2"
	report := &domain.StatusReport{UISystem: domain.UIKit, RootID: "1:1", NodeCount: 3, DecidedCount: 1, RemainingCount: 2, NextNodeID: &next}

	tests := []struct {
		name    string
		printer cli.Printer
		want    string
	}{
		{"Compact", cli.Printer{}, `"nextNodeId":"1:2"}` + "\n"},
		{"Pretty", cli.Printer{Pretty: true}, "{\n  \"uiSystem\": \"UIKit\","},
		{"JQ Scalar", cli.Printer{JQ: ".remainingCount"}, "2\n"},
		{"JQ Stream", cli.Printer{JQ: ".rootId, .nextNodeId"}, "\"1:1\"\n\"1:2\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.printer.Out = &buf
			require.NoError(t, tt.printer.Print(context.Background(), report))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrinter_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	p := cli.Printer{Out: &buf}
	require.NoError(t, p.Print(context.Background(), map[string]string{"name": "<Header & Nav>"}))
	assert.Equal(t, `{"name":"<Header & Nav>"}`+"\n", buf.String())
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	input := map[string]any{"items": []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}}

	got, err := cli.Filter(ctx, "[.items[].id]", input)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"a", "b"}}, got)

	got, err = cli.Filter(ctx, "empty", input)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = cli.Filter(ctx, ".items[", input)
	assert.ErrorContains(t, err, "jq parse error")

	_, err = cli.Filter(ctx, "error(\"boom\")", input)
	assert.ErrorContains(t, err, "jq evaluation failed")

	got, err = cli.Filter(ctx, "$ENV | length", input)
	require.NoError(t, err)
	assert.Equal(t, []any{0}, got, "environment is hidden from filters")
}

func TestReadInput(t *testing.T) {
	data, err := cli.ReadInput("-", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	data, err = cli.ReadInput("", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	data, err = cli.ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = cli.ReadInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
