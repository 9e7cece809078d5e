package facts_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/figspec/internal/facts"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawNode(t *testing.T, src string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(src), &m))
	return m
}

func TestNameTokens(t *testing.T) {
	tests := map[string][]string{
		"PrimaryButton/Label":   {"primary", "button", "label"},
		"hero-image_v2":         {"hero", "image", "v2"},
		"feedList":              {"feed", "list"},
		"HTTPServer":            {"httpserver"},
		"Card 3 / Title":        {"card", "3", "title"},
		"":                      {},
		"!!!":                   {},
		"tab2Bar":               {"tab2", "bar"},
		"ÄpfelListe":            {"pfel", "liste"},
		"Icon/24px/ChevronLeft": {"icon", "24px", "chevron", "left"},
	}
	for in, want := range tests {
		assert.Equal(t, want, facts.NameTokens(in), "input %q", in)
	}
	assert.Equal(t, []string{}, facts.NameTokens(nil))
	assert.Equal(t, []string{"42"}, facts.NameTokens(42))
}

func TestExtract_FrameSkipsNonNumbers(t *testing.T) {
	n := rawNode(t, `{"id":"1","name":"Box","type":"FRAME","x":10,"y":"20","width":100,"height":true}`)
	f := facts.Extract(n, facts.DefaultOptions())

	require.NotNil(t, f.Frame)
	require.NotNil(t, f.Frame.X)
	assert.Equal(t, 10.0, *f.Frame.X)
	assert.Nil(t, f.Frame.Y)
	assert.Equal(t, 100.0, *f.Frame.Width)
	assert.Nil(t, f.Frame.Height)
	assert.Nil(t, f.Frame.Rotation)
	assert.False(t, f.Frame.Complete())
}

func TestExtract_NoFrameWhenAbsent(t *testing.T) {
	f := facts.Extract(rawNode(t, `{"id":"1","type":"GROUP"}`), facts.DefaultOptions())
	assert.Nil(t, f.Frame)
	assert.Nil(t, f.Layout)
	assert.Nil(t, f.Style)
	assert.Nil(t, f.Text)
	assert.Nil(t, f.Image)
	assert.True(t, f.Visible)
	assert.False(t, f.Locked)
}

func TestExtract_Layout(t *testing.T) {
	n := rawNode(t, `{
		"layoutMode":"VERTICAL","itemSpacing":8,"paddingLeft":0,
		"layoutSizingHorizontal":"FILL","layoutSizingVertical":"HUG",
		"constraints":{"horizontal":"MIN","vertical":"MAX"},"layoutGrow":0
	}`)
	f := facts.Extract(n, facts.DefaultOptions())

	require.NotNil(t, f.Layout)
	assert.Equal(t, "VERTICAL", f.Layout.LayoutMode)
	assert.True(t, f.Layout.IsAutoLayout())
	assert.Equal(t, 8.0, *f.Layout.ItemSpacing)
	require.NotNil(t, f.Layout.PaddingLeft, "zero padding is present, not absent")
	assert.Equal(t, 0.0, *f.Layout.PaddingLeft)
	assert.Equal(t, &domain.Constraints{Horizontal: "MIN", Vertical: "MAX"}, f.Layout.Constraints)
	assert.NotNil(t, f.Layout.LayoutGrow)
}

func TestExtract_StyleFirstVisibleSolidWins(t *testing.T) {
	n := rawNode(t, `{
		"type":"RECTANGLE",
		"fills":[
			{"type":"SOLID","visible":false,"color":{"hexRGBA":"#000000FF"}},
			{"type":"IMAGE","imageRef":"abc"},
			{"type":"SOLID","opacity":0.5,"color":{"colorVariableName":" bg/primary ","hexRGBA":"#FF0000FF"}},
			{"type":"SOLID","color":{"hexRGBA":"#00FF00FF"}}
		],
		"strokes":[{"type":"SOLID","color":{"hexRGBA":"#111111FF"}}],
		"strokeWeight":2,"strokeAlign":"INSIDE",
		"cornerRadius":12,"opacity":1,"clipsContent":true,
		"effects":[
			{"type":"DROP_SHADOW","color":{"hexRGBA":"#00000040"},"offset":{"x":0,"y":2},"radius":4},
			{"type":"LAYER_BLUR","radius":3},
			{"type":"INNER_SHADOW","visible":false}
		]
	}`)
	f := facts.Extract(n, facts.DefaultOptions())

	require.NotNil(t, f.Style)
	require.NotNil(t, f.Style.BackgroundColor)
	assert.Equal(t, "bg/primary", f.Style.BackgroundColor.Color.Token)
	assert.Equal(t, "#FF0000FF", f.Style.BackgroundColor.Color.FallbackHex)
	assert.Equal(t, 0.5, *f.Style.BackgroundColor.Opacity)

	require.NotNil(t, f.Style.Stroke)
	assert.Equal(t, 2.0, *f.Style.Stroke.Width)
	assert.Equal(t, "INSIDE", f.Style.Stroke.Align)

	assert.Equal(t, 12.0, *f.Style.CornerRadius)
	assert.Nil(t, f.Style.Opacity, "opacity 1 is the default and omitted")
	assert.True(t, f.Style.ClipsContent)

	require.Len(t, f.Style.Shadows, 1)
	assert.Equal(t, "DROP_SHADOW", f.Style.Shadows[0].Type)
	assert.Equal(t, &domain.Offset{X: 0, Y: 2}, f.Style.Shadows[0].Offset)

	require.NotNil(t, f.Image)
	assert.Equal(t, "abc", f.Image.ImageHash)
}

func TestExtract_TextTruncation(t *testing.T) {
	long := strings.Repeat("é", 10)
	n := rawNode(t, `{"type":"TEXT","characters":"`+long+`"}`)

	clipped := facts.Extract(n, facts.Options{MaxTextLen: 4})
	require.NotNil(t, clipped.Text)
	assert.Equal(t, "éééé...", clipped.Text.Characters)
	assert.True(t, clipped.Text.CharactersTruncated)

	unlimited := facts.Extract(n, facts.Options{MaxTextLen: facts.NoTextLimit})
	assert.Equal(t, long, unlimited.Text.Characters)
	assert.False(t, unlimited.Text.CharactersTruncated)

	exact := facts.Extract(n, facts.Options{MaxTextLen: 10})
	assert.Equal(t, long, exact.Text.Characters)
}

func TestExtract_TextFontAndColor(t *testing.T) {
	n := rawNode(t, `{
		"type":"text","text":"Hello",
		"textStyleVariableName":"body/regular",
		"style":{"fontFamily":"Inter","fontSize":17,"fontWeight":400},
		"fills":[{"type":"SOLID","color":{"colorVariableName":"text/primary"}}]
	}`)
	f := facts.Extract(n, facts.DefaultOptions())

	require.NotNil(t, f.Text)
	assert.Equal(t, "Hello", f.Text.Characters)
	require.NotNil(t, f.Text.Font)
	assert.Equal(t, "body/regular", f.Text.Font.Token)
	require.NotNil(t, f.Text.Font.Fallback)
	assert.Equal(t, "Inter", f.Text.Font.Fallback.Name)
	assert.Equal(t, 17.0, *f.Text.Font.Fallback.Size)
	assert.Equal(t, 400.0, *f.Text.Font.Fallback.Weight)
	assert.Equal(t, &domain.Color{Token: "text/primary"}, f.Text.TextColor)
}

func TestExtract_TextOnlyOnTextNodes(t *testing.T) {
	f := facts.Extract(rawNode(t, `{"type":"FRAME","characters":"nope"}`), facts.DefaultOptions())
	assert.Nil(t, f.Text)
}

func TestExtract_ImageFallsBackToNodeRef(t *testing.T) {
	f := facts.Extract(rawNode(t, `{"type":"RECTANGLE","imageRef":"node-ref"}`), facts.DefaultOptions())
	require.NotNil(t, f.Image)
	assert.Equal(t, "node-ref", f.Image.ImageHash)
	assert.Empty(t, f.Image.ScaleMode)

	f = facts.Extract(rawNode(t, `{"fills":[{"type":"IMAGE","scaleMode":"FILL","imageHash":"h1"}]}`), facts.DefaultOptions())
	assert.Equal(t, &domain.ImageFacts{ImageHash: "h1", ScaleMode: "FILL"}, f.Image)
}

func TestExtract_Deterministic(t *testing.T) {
	src := `{"id":"1","name":"Card/Title","type":"TEXT","characters":"Hi","x":1,"y":2,"width":3,"height":4}`
	a := facts.Extract(rawNode(t, src), facts.DefaultOptions())
	b := facts.Extract(rawNode(t, src), facts.DefaultOptions())
	assert.Equal(t, a, b)
}
