package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumix/resumix/internal/types"
)

func validDocJSON(t *testing.T) json.RawMessage {
	t.Helper()
	doc := AddSection(Default())
	doc = AddItem(doc, 1)
	doc = AddLine(doc, 1, 0)
	doc = SetLineContent(doc, 1, 0, 0, "wrote <i>tests</i>")
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestValidateOrDefault(t *testing.T) {
	t.Run("valid blob decodes", func(t *testing.T) {
		doc, ok := ValidateOrDefault(validDocJSON(t))
		require.True(t, ok)
		assert.Len(t, doc.Sections, 2)
		assert.Equal(t, "wrote tests", doc.Sections[1].Items[0].Lines[0].Display)
	})

	t.Run("empty blob falls back", func(t *testing.T) {
		doc, ok := ValidateOrDefault(nil)
		assert.False(t, ok)
		assert.True(t, Empty(doc))
	})

	t.Run("empty object falls back", func(t *testing.T) {
		doc, ok := ValidateOrDefault(json.RawMessage(`{}`))
		assert.False(t, ok)
		assert.True(t, Empty(doc))
	})

	t.Run("malformed json falls back", func(t *testing.T) {
		doc, ok := ValidateOrDefault(json.RawMessage(`{"heading_info":`))
		assert.False(t, ok)
		assert.True(t, Empty(doc))
	})

	t.Run("wrong shapes fall back", func(t *testing.T) {
		cases := []string{
			`{"heading_info": "nope", "sections": []}`,
			`{"heading_info": {"heading_name": 5, "subsequent_content": []}, "sections": []}`,
			`{"heading_info": {"heading_name": "x", "subsequent_content": []}, "sections": "nope"}`,
		}
		for _, c := range cases {
			doc, ok := ValidateOrDefault(json.RawMessage(c))
			assert.False(t, ok, "blob should be rejected: %s", c)
			assert.True(t, Empty(doc))
		}
	})

	t.Run("stale section ids are renumbered", func(t *testing.T) {
		doc := AddSection(AddSection(Default()))
		doc.Sections[0].ID = 7
		doc.Sections[2].ID = 3
		raw, err := json.Marshal(doc)
		require.NoError(t, err)

		out, ok := ValidateOrDefault(raw)
		require.True(t, ok)
		for i, s := range out.Sections {
			assert.Equal(t, i, s.ID)
		}
	})
}

// Loading then immediately saving must not change the structure.
func TestValidateOrDefaultRoundTrip(t *testing.T) {
	raw := validDocJSON(t)
	doc, ok := ValidateOrDefault(raw)
	require.True(t, ok)

	again, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))
}

func TestClampParams(t *testing.T) {
	doc := AddItem(AddSection(types.Document{}), 0)
	doc = AddItem(doc, 0)
	doc = SetItemParam(doc, 0, 0, ParamWeight, 5)
	doc = SetItemParam(doc, 0, 0, ParamBias, -9)
	doc = SetItemParam(doc, 0, 1, ParamWeight, 1.5)
	doc = SetItemParam(doc, 0, 1, ParamBias, 0.5)

	out := ClampParams(doc)
	assert.Equal(t, 2.0, out.Sections[0].Items[0].Params.Weight)
	assert.Equal(t, -2.0, out.Sections[0].Items[0].Params.Bias)
	assert.Equal(t, 1.5, out.Sections[0].Items[1].Params.Weight)
	assert.Equal(t, 0.5, out.Sections[0].Items[1].Params.Bias)

	// original untouched
	assert.Equal(t, 5.0, doc.Sections[0].Items[0].Params.Weight)
}
