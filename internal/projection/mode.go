// Package projection derives renderable presentations from a resume
// document. Every function here is pure: the same document and mode always
// produce the same tree, which keeps the projections unit-testable without
// any UI in the loop.
package projection

import "fmt"

// Mode selects which presentation of the document to derive.
type Mode int

// Presentation modes.
const (
	// ModeView renders read-only display text with markup stripped.
	ModeView Mode = iota
	// ModeEdit renders raw line content, markup included.
	ModeEdit
	// ModeParameters renders only item titles and their weight/bias.
	ModeParameters
	// ModeViewSource renders display text alongside the raw content.
	ModeViewSource
)

var modeNames = map[Mode]string{
	ModeView:       "view",
	ModeEdit:       "edit",
	ModeParameters: "parameters-only",
	ModeViewSource: "view-source",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a wire/CLI mode string to its Mode. Unknown strings fall
// back to ModeView.
func ParseMode(s string) Mode {
	for m, name := range modeNames {
		if name == s {
			return m
		}
	}
	return ModeView
}
