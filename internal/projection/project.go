package projection

import (
	"github.com/resumix/resumix/internal/document"
	"github.com/resumix/resumix/internal/types"
)

// Rendered is the derived presentation tree for one document and mode.
type Rendered struct {
	Mode     Mode
	Empty    bool
	Heading  RenderedHeading
	Sections []RenderedSection
}

// RenderedHeading is the projected header block.
type RenderedHeading struct {
	Name         string
	ContactLines []string
}

// RenderedSection is one projected section.
type RenderedSection struct {
	Title string
	Items []RenderedItem
}

// RenderedItem is one projected item. Compact items carry their single
// text block in CompactText and no title layout.
type RenderedItem struct {
	Compact     bool
	CompactText string
	Titles      *TitleLayout
	Lines       []RenderedLine
	Weight      Indicator
	Bias        Indicator
	Params      types.Params
}

// RenderedLine is one projected bullet.
type RenderedLine struct {
	Text string
	// Raw is populated only in view-source mode, alongside the
	// stripped text.
	Raw string
}

// Project derives the presentation tree for the given mode. It never
// mutates the document.
func Project(doc types.Document, mode Mode) Rendered {
	out := Rendered{
		Mode:  mode,
		Empty: document.Empty(doc),
		Heading: RenderedHeading{
			Name:         doc.HeadingInfo.Name,
			ContactLines: append([]string(nil), doc.HeadingInfo.ContactLines...),
		},
	}

	for _, section := range doc.Sections {
		rs := RenderedSection{Title: section.Title}
		for _, item := range section.Items {
			rs.Items = append(rs.Items, projectItem(item, mode))
		}
		out.Sections = append(out.Sections, rs)
	}
	return out
}

func projectItem(item types.Item, mode Mode) RenderedItem {
	ri := RenderedItem{
		Params: item.Params,
		Weight: WeightIndicator(item.Params.Weight),
		Bias:   BiasIndicator(item.Params.Bias),
	}

	if item.Compact() {
		ri.Compact = true
		ri.CompactText = lineText(item.Lines[0], mode)
		return ri
	}

	// An all-blank title set renders no title rows at all; a fresh item's
	// three empty slots must not produce a bare " | " row.
	if hasVisibleTitle(item.Titles) {
		ri.Titles = FormatTitles(item.Titles)
	}
	for _, line := range item.Lines {
		text := lineText(line, mode)
		if mode == ModeView && text == "" {
			// an empty display line renders no bullet at all
			continue
		}
		rl := RenderedLine{Text: text}
		if mode == ModeViewSource {
			rl.Raw = line.Content
		}
		ri.Lines = append(ri.Lines, rl)
	}
	return ri
}

// lineText selects which side of a line each mode shows: edit mode shows
// the raw content, every other mode the stripped display text.
func lineText(line types.Line, mode Mode) string {
	if mode == ModeEdit {
		return line.Content
	}
	return line.Display
}
