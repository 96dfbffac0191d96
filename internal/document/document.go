// Package document owns the canonical resume document model: construction,
// markup stripping, and the structural mutation operations. Every operation
// takes a document and returns a new deep-copied document; the old snapshot
// is never aliased by the new one, so callers can hold "last saved" and
// "currently edited" snapshots side by side.
//
// Operations are total for indices within current bounds. Out-of-range
// indices are a caller precondition; the UI derives every index from the
// current render, so the model does not harden against them.
package document

import (
	"regexp"

	"github.com/resumix/resumix/internal/types"
)

// DefaultHeadingName is the placeholder heading a synthesized document
// starts with. Empty-document detection keys off it.
const DefaultHeadingName = "Your Name"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes inline markup (<b>, <i>, <a href=..>, closing tags)
// from a line. Everything outside the tags, whitespace included, passes
// through untouched. It is idempotent:
// StripTags(StripTags(x)) == StripTags(x).
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Default synthesizes the single-section starter document used when a user
// has no valid stored structure.
func Default() types.Document {
	return types.Document{
		HeadingInfo: types.HeadingInfo{
			Name:         DefaultHeadingName,
			ContactLines: []string{""},
		},
		Sections: []types.Section{
			{ID: 0, Title: "Experience", Items: nil},
		},
	}
}

// Empty reports whether the document is still the untouched starter: the
// heading name equals the synthesized placeholder and no section has items.
func Empty(doc types.Document) bool {
	if doc.HeadingInfo.Name != DefaultHeadingName {
		return false
	}
	for _, s := range doc.Sections {
		if len(s.Items) > 0 {
			return false
		}
	}
	return true
}

// renumber restores the section id invariant: Sections[i].ID == i.
func renumber(sections []types.Section) {
	for i := range sections {
		sections[i].ID = i
	}
}
