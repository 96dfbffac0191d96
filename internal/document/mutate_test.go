package document

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumix/resumix/internal/types"
)

func assertIDsMatchPositions(t *testing.T, doc types.Document) {
	t.Helper()
	for i, s := range doc.Sections {
		assert.Equal(t, i, s.ID, "section at position %d has id %d", i, s.ID)
	}
}

func TestSectionIDsStayContiguous(t *testing.T) {
	doc := types.Document{}
	for i := 0; i < 5; i++ {
		doc = AddSection(doc)
		assertIDsMatchPositions(t, doc)
	}

	doc = DeleteSection(doc, 2)
	assertIDsMatchPositions(t, doc)
	assert.Len(t, doc.Sections, 4)

	doc = MoveSection(doc, 0, Down)
	assertIDsMatchPositions(t, doc)

	doc = MoveSection(doc, 3, Up)
	assertIDsMatchPositions(t, doc)

	doc = DeleteSection(doc, 0)
	assertIDsMatchPositions(t, doc)
}

// Random add/delete/move sequences never break the id invariant.
func TestSectionIDsRandomizedSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	doc := types.Document{}
	for step := 0; step < 200; step++ {
		switch rng.Intn(3) {
		case 0:
			doc = AddSection(doc)
		case 1:
			if len(doc.Sections) > 0 {
				doc = DeleteSection(doc, rng.Intn(len(doc.Sections)))
			}
		case 2:
			if len(doc.Sections) > 0 {
				dir := Up
				if rng.Intn(2) == 0 {
					dir = Down
				}
				doc = MoveSection(doc, rng.Intn(len(doc.Sections)), dir)
			}
		}
		assertIDsMatchPositions(t, doc)
	}
}

func TestMoveSectionBoundaryIsNoOp(t *testing.T) {
	doc := AddSection(AddSection(types.Document{}))
	doc = SetSectionTitle(doc, 0, "first")
	doc = SetSectionTitle(doc, 1, "second")

	moved := MoveSection(doc, 0, Up)
	assert.Equal(t, "first", moved.Sections[0].Title)

	moved = MoveSection(doc, 1, Down)
	assert.Equal(t, "second", moved.Sections[1].Title)

	moved = MoveSection(doc, 0, Down)
	assert.Equal(t, "second", moved.Sections[0].Title)
	assert.Equal(t, "first", moved.Sections[1].Title)
	assertIDsMatchPositions(t, moved)
}

// The scenario from the dashboard flow: one section, two items added, the
// first deleted, leaves exactly the second item behind.
func TestAddDeleteItemScenario(t *testing.T) {
	doc := types.Document{}
	doc = AddSection(doc)
	doc = AddItem(doc, 0)
	doc = AddItem(doc, 0)
	doc = SetItemTitle(doc, 0, 1, 0, "kept")
	doc = DeleteItem(doc, 0, 0)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, 0, doc.Sections[0].ID)
	require.Len(t, doc.Sections[0].Items, 1)
	assert.Equal(t, "kept", doc.Sections[0].Items[0].Titles[0])
}

func TestAddItemShape(t *testing.T) {
	doc := AddItem(AddSection(types.Document{}), 0)

	item := doc.Sections[0].Items[0]
	assert.Equal(t, []string{"", "", ""}, item.Titles)
	assert.Empty(t, item.Lines)
	assert.Equal(t, types.DefaultParams(), item.Params)
}

func TestAddPrepopulatedItem(t *testing.T) {
	doc := AddSection(types.Document{})
	doc = AddItem(doc, 0)
	doc = AddItem(doc, 0)
	doc = SetItemTitle(doc, 0, 0, 0, "first")
	doc = SetItemTitle(doc, 0, 1, 0, "second")

	t.Run("afterIndex -1 inserts at front", func(t *testing.T) {
		out := AddPrepopulatedItem(doc, 0, -1)
		require.Len(t, out.Sections[0].Items, 3)
		inserted := out.Sections[0].Items[0]
		assert.Equal(t, []string{""}, inserted.Titles)
		require.Len(t, inserted.Lines, 1)
		assert.Equal(t, "first", out.Sections[0].Items[1].Titles[0])
		assert.Equal(t, "second", out.Sections[0].Items[2].Titles[0])
	})

	t.Run("inserts after given index", func(t *testing.T) {
		out := AddPrepopulatedItem(doc, 0, 0)
		require.Len(t, out.Sections[0].Items, 3)
		assert.Equal(t, "first", out.Sections[0].Items[0].Titles[0])
		assert.Equal(t, []string{""}, out.Sections[0].Items[1].Titles)
		assert.Equal(t, "second", out.Sections[0].Items[2].Titles[0])
	})
}

func TestMoveItem(t *testing.T) {
	doc := AddSection(types.Document{})
	doc = AddItem(doc, 0)
	doc = AddItem(doc, 0)
	doc = SetItemTitle(doc, 0, 0, 0, "a")
	doc = SetItemTitle(doc, 0, 1, 0, "b")

	out := MoveItem(doc, 0, 0, Down)
	assert.Equal(t, "b", out.Sections[0].Items[0].Titles[0])
	assert.Equal(t, "a", out.Sections[0].Items[1].Titles[0])

	// boundary no-ops
	out = MoveItem(doc, 0, 0, Up)
	assert.Equal(t, "a", out.Sections[0].Items[0].Titles[0])
	out = MoveItem(doc, 0, 1, Down)
	assert.Equal(t, "b", out.Sections[0].Items[1].Titles[0])
}

func TestItemTitles(t *testing.T) {
	doc := AddItem(AddSection(types.Document{}), 0)

	doc = AddItemTitle(doc, 0, 0)
	assert.Len(t, doc.Sections[0].Items[0].Titles, 4)

	doc = RemoveLastItemTitle(doc, 0, 0)
	doc = RemoveLastItemTitle(doc, 0, 0)
	assert.Len(t, doc.Sections[0].Items[0].Titles, 2)

	// popping an already-empty title list is a no-op
	empty := types.Document{Sections: []types.Section{{Items: []types.Item{{}}}}}
	out := RemoveLastItemTitle(empty, 0, 0)
	assert.Empty(t, out.Sections[0].Items[0].Titles)
}

func TestSetItemParam(t *testing.T) {
	doc := AddItem(AddSection(types.Document{}), 0)

	doc = SetItemParam(doc, 0, 0, ParamWeight, 1.5)
	doc = SetItemParam(doc, 0, 0, ParamBias, -0.25)
	assert.Equal(t, 1.5, doc.Sections[0].Items[0].Params.Weight)
	assert.Equal(t, -0.25, doc.Sections[0].Items[0].Params.Bias)

	// the model stores out-of-range values as given; clamping is a
	// persistence-time policy
	doc = SetItemParam(doc, 0, 0, ParamWeight, 9)
	assert.Equal(t, 9.0, doc.Sections[0].Items[0].Params.Weight)
}

func TestSetLineContentKeepsDisplayInSync(t *testing.T) {
	doc := AddItem(AddSection(types.Document{}), 0)
	doc = AddLine(doc, 0, 0)

	doc = SetLineContent(doc, 0, 0, 0, "shipped <b>fast</b> queries")
	line := doc.Sections[0].Items[0].Lines[0]
	assert.Equal(t, "shipped <b>fast</b> queries", line.Content)
	assert.Equal(t, "shipped fast queries", line.Display)
	assert.Equal(t, StripTags(line.Content), line.Display)
}

func TestDeleteLineLeavesOthersUntouched(t *testing.T) {
	doc := AddItem(AddSection(types.Document{}), 0)
	for i := 0; i < 3; i++ {
		doc = AddLine(doc, 0, 0)
		doc = SetLineContent(doc, 0, 0, i, string(rune('a'+i)))
	}

	doc = DeleteLine(doc, 0, 0, 1)
	lines := doc.Sections[0].Items[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Content)
	assert.Equal(t, "c", lines[1].Content)
}

// Mutations must never leak into the snapshot they were derived from.
func TestMutationsDoNotAliasOldSnapshot(t *testing.T) {
	base := AddItem(AddSection(types.Document{}), 0)
	base = AddLine(base, 0, 0)
	base = SetLineContent(base, 0, 0, 0, "original")

	edited := SetLineContent(base, 0, 0, 0, "changed")
	edited = SetItemTitle(edited, 0, 0, 0, "new title")
	edited = AddSection(edited)

	assert.Equal(t, "original", base.Sections[0].Items[0].Lines[0].Content)
	assert.Equal(t, "", base.Sections[0].Items[0].Titles[0])
	assert.Len(t, base.Sections, 1)
	assert.Equal(t, "changed", edited.Sections[0].Items[0].Lines[0].Content)
}

func TestHeadingMutations(t *testing.T) {
	doc := Default()

	doc = SetHeadingName(doc, "Ada Lovelace")
	assert.Equal(t, "Ada Lovelace", doc.HeadingInfo.Name)

	doc = AddContactLine(doc)
	require.Len(t, doc.HeadingInfo.ContactLines, 2)

	doc = SetContactLine(doc, 1, "ada@example.com")
	assert.Equal(t, "ada@example.com", doc.HeadingInfo.ContactLines[1])
	assert.Equal(t, "", doc.HeadingInfo.ContactLines[0])
}
