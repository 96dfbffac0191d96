// Package types provides type definitions for structured data used throughout the resumix system.
package types

import (
	"encoding/json"
	"strings"
)

// Document is the canonical resume data tree: a heading followed by an
// ordered list of sections. It is the unit of persistence (stored as JSONB
// in the users table) and the unit of exchange with clients.
type Document struct {
	HeadingInfo HeadingInfo `json:"heading_info"`
	Sections    []Section   `json:"sections"`
}

// HeadingInfo holds the resume header: the candidate's name and the ordered
// contact lines rendered beneath it (links, email, phone, ...).
type HeadingInfo struct {
	Name         string   `json:"heading_name"`
	ContactLines []string `json:"subsequent_content"`
}

// Section groups items under a title. ID always equals the section's
// position in Document.Sections; every mutation renumbers.
type Section struct {
	ID    int    `json:"sect_id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Item is one entry within a section: up to six title fields, a list of
// content lines, and the optimization parameters for the whole item.
type Item struct {
	Titles []string `json:"titles"`
	Lines  []Line   `json:"lines"`
	Params Params   `json:"cate_scores"`

	// Aux carries server-side annotations (cached line scores and the
	// like) that clients round-trip untouched.
	Aux map[string]json.RawMessage `json:"aux_info,omitempty"`
}

// Params weights an item during optimization. Weight scales line scores,
// Bias shifts them. Defaults are neutral: weight 1, bias 0.
type Params struct {
	Weight float64 `json:"weight"`
	Bias   float64 `json:"bias"`
}

// DefaultParams returns the neutral parameter set.
func DefaultParams() Params {
	return Params{Weight: 1, Bias: 0}
}

// Tweaked reports whether the parameters differ from the neutral defaults.
func (p Params) Tweaked() bool {
	return p.Weight != 1 || p.Bias != 0
}

// Line is a single content line. Content may carry inline markup
// (<b>, <i>, <a href>); Display is the same text with markup stripped and
// is what view and parameter modes render. The two are kept in sync by
// document.SetLineContent.
type Line struct {
	Content string  `json:"content"`
	Display string  `json:"content_str"`
	Score   float64 `json:"score,omitempty"`
}

// MaxItemTitles is the largest title count the layout algorithm handles.
const MaxItemTitles = 6

// Compact reports whether the item renders as a single free-text block: no
// meaningful titles and exactly one line. Skills lines are the typical case.
func (it Item) Compact() bool {
	if len(it.Lines) != 1 {
		return false
	}
	for _, t := range it.Titles {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document. Mutation operations clone
// first so the previous snapshot is never aliased by the new one.
func (d Document) Clone() Document {
	out := d
	out.HeadingInfo.ContactLines = append([]string(nil), d.HeadingInfo.ContactLines...)
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.clone()
	}
	return out
}

func (s Section) clone() Section {
	out := s
	out.Items = make([]Item, len(s.Items))
	for i, it := range s.Items {
		out.Items[i] = it.clone()
	}
	return out
}

func (it Item) clone() Item {
	out := it
	out.Titles = append([]string(nil), it.Titles...)
	out.Lines = append([]Line(nil), it.Lines...)
	if it.Aux != nil {
		out.Aux = make(map[string]json.RawMessage, len(it.Aux))
		for k, v := range it.Aux {
			out.Aux[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// ItemCount returns the number of items across all sections.
func (d Document) ItemCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}
