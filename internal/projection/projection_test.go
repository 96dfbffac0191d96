package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/types"
)

func TestFormatTitles(t *testing.T) {
	t.Run("zero titles", func(t *testing.T) {
		assert.Nil(t, FormatTitles(nil))
		assert.Nil(t, FormatTitles([]string{}))
	})

	t.Run("one title", func(t *testing.T) {
		l := FormatTitles([]string{"Engineer"})
		require.NotNil(t, l)
		assert.Equal(t, "Engineer", l.Row1.Left.Text())
		assert.Nil(t, l.Row1.Right)
		assert.Nil(t, l.Row2)
	})

	t.Run("two titles", func(t *testing.T) {
		l := FormatTitles([]string{"Engineer", "Acme"})
		require.NotNil(t, l)
		assert.Equal(t, "Engineer", l.Row1.Left.Text())
		require.NotNil(t, l.Row1.Right)
		assert.Equal(t, "Acme", l.Row1.Right.Text())
		assert.Nil(t, l.Row2)
	})

	t.Run("three titles renders augmented pair", func(t *testing.T) {
		l := FormatTitles([]string{"Engineer", "Acme", "2021-2024"})
		require.NotNil(t, l)
		assert.True(t, l.Row1.Left.Augmented)
		assert.Equal(t, "Engineer | Acme", l.Row1.Left.Text())
		require.NotNil(t, l.Row1.Right)
		assert.Equal(t, "2021-2024", l.Row1.Right.Text())
		assert.Nil(t, l.Row2)
	})

	t.Run("four titles make two simple rows", func(t *testing.T) {
		l := FormatTitles([]string{"a", "b", "c", "d"})
		require.NotNil(t, l)
		assert.False(t, l.Row1.Left.Augmented)
		assert.Equal(t, "a", l.Row1.Left.Text())
		assert.Equal(t, "b", l.Row1.Right.Text())
		require.NotNil(t, l.Row2)
		assert.Equal(t, "c", l.Row2.Left.Text())
		assert.Equal(t, "d", l.Row2.Right.Text())
	})

	t.Run("five titles augment row one only", func(t *testing.T) {
		l := FormatTitles([]string{"a", "b", "c", "d", "e"})
		require.NotNil(t, l)
		assert.Equal(t, "a | b", l.Row1.Left.Text())
		assert.Equal(t, "c", l.Row1.Right.Text())
		require.NotNil(t, l.Row2)
		assert.False(t, l.Row2.Left.Augmented)
		assert.Equal(t, "d", l.Row2.Left.Text())
		assert.Equal(t, "e", l.Row2.Right.Text())
	})

	t.Run("six titles augment both rows", func(t *testing.T) {
		l := FormatTitles([]string{"a", "b", "c", "d", "e", "f"})
		require.NotNil(t, l)
		assert.Equal(t, "a | b", l.Row1.Left.Text())
		assert.Equal(t, "c", l.Row1.Right.Text())
		require.NotNil(t, l.Row2)
		assert.Equal(t, "d | e", l.Row2.Left.Text())
		assert.Equal(t, "f", l.Row2.Right.Text())
	})

	t.Run("overlong counts return nil instead of crashing", func(t *testing.T) {
		assert.Nil(t, FormatTitles([]string{"a", "b", "c", "d", "e", "f", "g"}))
	})
}

func TestFormatTitlesDeterministic(t *testing.T) {
	titles := []string{"a", "b", "c"}
	first := FormatTitles(titles)
	second := FormatTitles(titles)
	assert.Equal(t, first, second)
}

func TestWeightIndicator(t *testing.T) {
	tests := []struct {
		weight   float64
		expected Indicator
	}{
		{1.5, WeightHigh},
		{1.21, WeightHigh},
		{1.2, WeightAboveNormal},
		{1.01, WeightAboveNormal},
		{1.0, WeightNormal},
		{0.9, WeightBelowNormal},
		{0.51, WeightBelowNormal},
		{0.5, WeightLow},
		{0, WeightLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, WeightIndicator(tt.weight), "weight %v", tt.weight)
	}
}

func TestBiasIndicator(t *testing.T) {
	tests := []struct {
		bias     float64
		expected Indicator
	}{
		{1.0, BiasStrongPositive},
		{0.51, BiasStrongPositive},
		{0.5, BiasSlightPositive},
		{0.01, BiasSlightPositive},
		{0, BiasNeutral},
		{-0.25, BiasSlightNegative},
		{-0.49, BiasSlightNegative},
		{-0.5, BiasStrongNegative},
		{-2, BiasStrongNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, BiasIndicator(tt.bias), "bias %v", tt.bias)
	}
}

func buildDoc(t *testing.T) types.Document {
	t.Helper()
	doc := document.Default()
	doc = document.SetHeadingName(doc, "Ada Lovelace")
	doc = document.AddItem(doc, 0)
	doc = document.SetItemTitle(doc, 0, 0, 0, "Engineer")
	doc = document.SetItemTitle(doc, 0, 0, 1, "Acme")
	doc = document.SetItemTitle(doc, 0, 0, 2, "2021")
	doc = document.AddLine(doc, 0, 0)
	doc = document.SetLineContent(doc, 0, 0, 0, "built <b>things</b>")
	doc = document.AddLine(doc, 0, 0)
	// second line left blank: view mode must suppress its bullet
	return doc
}

func TestProjectModes(t *testing.T) {
	doc := buildDoc(t)

	t.Run("edit shows raw content and keeps blank lines", func(t *testing.T) {
		r := Project(doc, ModeEdit)
		item := r.Sections[0].Items[0]
		require.Len(t, item.Lines, 2)
		assert.Equal(t, "built <b>things</b>", item.Lines[0].Text)
	})

	t.Run("view shows stripped text and drops empty bullets", func(t *testing.T) {
		r := Project(doc, ModeView)
		item := r.Sections[0].Items[0]
		require.Len(t, item.Lines, 1)
		assert.Equal(t, "built things", item.Lines[0].Text)
	})

	t.Run("view-source carries both", func(t *testing.T) {
		r := Project(doc, ModeViewSource)
		item := r.Sections[0].Items[0]
		require.Len(t, item.Lines, 2)
		assert.Equal(t, "built things", item.Lines[0].Text)
		assert.Equal(t, "built <b>things</b>", item.Lines[0].Raw)
	})

	t.Run("titles and indicators projected", func(t *testing.T) {
		r := Project(doc, ModeParameters)
		item := r.Sections[0].Items[0]
		require.NotNil(t, item.Titles)
		assert.Equal(t, "Engineer | Acme", item.Titles.Row1.Left.Text())
		assert.Equal(t, WeightNormal, item.Weight)
		assert.Equal(t, BiasNeutral, item.Bias)
	})
}

func TestProjectCompactItem(t *testing.T) {
	doc := document.AddPrepopulatedItem(document.Default(), 0, -1)
	doc = document.SetLineContent(doc, 0, 0, 0, "Go, SQL, <i>Rust</i>")

	r := Project(doc, ModeView)
	item := r.Sections[0].Items[0]
	assert.True(t, item.Compact)
	assert.Equal(t, "Go, SQL, Rust", item.CompactText)
	assert.Nil(t, item.Titles)
	assert.Empty(t, item.Lines)
}

func TestProjectBlankTitlesOmitLayout(t *testing.T) {
	// AddItem seeds three empty title slots; an item that only ever gains
	// lines must not render a blank title row.
	doc := document.AddItem(document.Default(), 0)
	doc = document.AddLine(doc, 0, 0)
	doc = document.SetLineContent(doc, 0, 0, 0, "shipped the feature")
	doc = document.AddLine(doc, 0, 0)
	doc = document.SetLineContent(doc, 0, 0, 1, "fixed the bugs")

	r := Project(doc, ModeView)
	item := r.Sections[0].Items[0]
	assert.False(t, item.Compact)
	assert.Nil(t, item.Titles)
	require.Len(t, item.Lines, 2)
}

func TestProjectEmptyDetection(t *testing.T) {
	r := Project(document.Default(), ModeView)
	assert.True(t, r.Empty)

	named := document.SetHeadingName(document.Default(), "Ada")
	assert.False(t, Project(named, ModeView).Empty)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeEdit, ParseMode("edit"))
	assert.Equal(t, ModeParameters, ParseMode("parameters-only"))
	assert.Equal(t, ModeViewSource, ParseMode("view-source"))
	assert.Equal(t, ModeView, ParseMode("view"))
	assert.Equal(t, ModeView, ParseMode("anything else"))
}
