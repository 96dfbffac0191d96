package document

import "github.com/resumix/resumix/internal/types"

// Direction selects a neighbor for move operations.
type Direction int

// Move directions.
const (
	Up   Direction = -1
	Down Direction = 1
)

// SetHeadingName replaces the heading name.
func SetHeadingName(doc types.Document, name string) types.Document {
	out := doc.Clone()
	out.HeadingInfo.Name = name
	return out
}

// SetContactLine replaces the contact line at index i.
func SetContactLine(doc types.Document, i int, value string) types.Document {
	out := doc.Clone()
	out.HeadingInfo.ContactLines[i] = value
	return out
}

// AddContactLine appends an empty contact line.
func AddContactLine(doc types.Document) types.Document {
	out := doc.Clone()
	out.HeadingInfo.ContactLines = append(out.HeadingInfo.ContactLines, "")
	return out
}

// AddSection appends a new empty section; its id is the previous length.
func AddSection(doc types.Document) types.Document {
	out := doc.Clone()
	out.Sections = append(out.Sections, types.Section{ID: len(out.Sections)})
	return out
}

// DeleteSection removes the section at index i and renumbers the rest.
func DeleteSection(doc types.Document, i int) types.Document {
	out := doc.Clone()
	out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
	renumber(out.Sections)
	return out
}

// MoveSection swaps the section at i with its neighbor in the given
// direction, then renumbers. Moving past either end is a no-op.
func MoveSection(doc types.Document, i int, dir Direction) types.Document {
	out := doc.Clone()
	j := i + int(dir)
	if j < 0 || j >= len(out.Sections) {
		return out
	}
	out.Sections[i], out.Sections[j] = out.Sections[j], out.Sections[i]
	renumber(out.Sections)
	return out
}

// SetSectionTitle replaces the title of the section at index i.
func SetSectionTitle(doc types.Document, i int, title string) types.Document {
	out := doc.Clone()
	out.Sections[i].Title = title
	return out
}

// AddItem appends a fresh item to the section: three blank title fields,
// no lines, neutral parameters.
func AddItem(doc types.Document, sectionIndex int) types.Document {
	out := doc.Clone()
	items := &out.Sections[sectionIndex].Items
	*items = append(*items, types.Item{
		Titles: []string{"", "", ""},
		Params: types.DefaultParams(),
	})
	return out
}

// AddPrepopulatedItem inserts an item with one blank title and one blank
// line at position afterIndex+1. An afterIndex of -1 inserts at the front.
func AddPrepopulatedItem(doc types.Document, sectionIndex, afterIndex int) types.Document {
	out := doc.Clone()
	item := types.Item{
		Titles: []string{""},
		Lines:  []types.Line{{}},
		Params: types.DefaultParams(),
	}
	items := out.Sections[sectionIndex].Items
	pos := afterIndex + 1
	items = append(items, types.Item{})
	copy(items[pos+1:], items[pos:])
	items[pos] = item
	out.Sections[sectionIndex].Items = items
	return out
}

// DeleteItem removes the item at itemIndex from the section.
func DeleteItem(doc types.Document, sectionIndex, itemIndex int) types.Document {
	out := doc.Clone()
	items := out.Sections[sectionIndex].Items
	out.Sections[sectionIndex].Items = append(items[:itemIndex], items[itemIndex+1:]...)
	return out
}

// MoveItem swaps the item at i with its neighbor. Boundary moves are no-ops.
func MoveItem(doc types.Document, sectionIndex, i int, dir Direction) types.Document {
	out := doc.Clone()
	items := out.Sections[sectionIndex].Items
	j := i + int(dir)
	if j < 0 || j >= len(items) {
		return out
	}
	items[i], items[j] = items[j], items[i]
	return out
}

// SetItemTitle replaces one title field of an item.
func SetItemTitle(doc types.Document, sectionIndex, itemIndex, titleIndex int, value string) types.Document {
	out := doc.Clone()
	out.Sections[sectionIndex].Items[itemIndex].Titles[titleIndex] = value
	return out
}

// AddItemTitle pushes one blank title field. The UI hides the control past
// six fields; the model itself does not cap.
func AddItemTitle(doc types.Document, sectionIndex, itemIndex int) types.Document {
	out := doc.Clone()
	item := &out.Sections[sectionIndex].Items[itemIndex]
	item.Titles = append(item.Titles, "")
	return out
}

// RemoveLastItemTitle pops the last title field if any remain.
func RemoveLastItemTitle(doc types.Document, sectionIndex, itemIndex int) types.Document {
	out := doc.Clone()
	item := &out.Sections[sectionIndex].Items[itemIndex]
	if len(item.Titles) > 0 {
		item.Titles = item.Titles[:len(item.Titles)-1]
	}
	return out
}

// Param names accepted by SetItemParam.
const (
	ParamWeight = "weight"
	ParamBias   = "bias"
)

// SetItemParam stores a weight or bias value as given. Range enforcement
// is a server policy (see ClampParams), not a model invariant.
func SetItemParam(doc types.Document, sectionIndex, itemIndex int, param string, value float64) types.Document {
	out := doc.Clone()
	item := &out.Sections[sectionIndex].Items[itemIndex]
	switch param {
	case ParamWeight:
		item.Params.Weight = value
	case ParamBias:
		item.Params.Bias = value
	}
	return out
}

// AddLine appends a blank line to the item.
func AddLine(doc types.Document, sectionIndex, itemIndex int) types.Document {
	out := doc.Clone()
	item := &out.Sections[sectionIndex].Items[itemIndex]
	item.Lines = append(item.Lines, types.Line{})
	return out
}

// DeleteLine removes the line at lineIndex. Other lines keep their content
// and order.
func DeleteLine(doc types.Document, sectionIndex, itemIndex, lineIndex int) types.Document {
	out := doc.Clone()
	item := &out.Sections[sectionIndex].Items[itemIndex]
	item.Lines = append(item.Lines[:lineIndex], item.Lines[lineIndex+1:]...)
	return out
}

// SetLineContent sets the raw content of a line and recomputes its
// stripped display text.
func SetLineContent(doc types.Document, sectionIndex, itemIndex, lineIndex int, raw string) types.Document {
	out := doc.Clone()
	line := &out.Sections[sectionIndex].Items[itemIndex].Lines[lineIndex]
	line.Content = raw
	line.Display = StripTags(raw)
	return out
}
