package optimize

import (
	"sort"

	"github.com/resumix/resumix/internal/types"
)

// Height model, in points on a US Letter page. These constants mirror the
// print stylesheet in internal/rendering; keep them in sync.
const (
	pageHeight      = 792
	pageMargins     = 72 // 0.5in top + bottom
	headingHeight   = 60
	contactHeight   = 13
	sectionOverhead = 26
	titleRowHeight  = 16
	lineHeight      = 14
	charsPerLine    = 95
)

// Budget returns the vertical space available for item content after the
// heading and every section's fixed overhead.
func Budget(doc types.Document) int {
	contacts := 0
	for _, line := range doc.HeadingInfo.ContactLines {
		if line != "" {
			contacts++
		}
	}
	budget := pageHeight - pageMargins - headingHeight - contacts*contactHeight
	budget -= len(doc.Sections) * sectionOverhead
	if budget < 0 {
		return 0
	}
	return budget
}

// textHeight estimates the printed height of one wrapped text block.
func textHeight(text string) int {
	rows := (len(text) + charsPerLine - 1) / charsPerLine
	if rows < 1 {
		rows = 1
	}
	return rows * lineHeight
}

// version is one way to print an item: a subset of its lines. Version k
// keeps the k best-scoring lines in document order; version 0 omits the
// item entirely.
type version struct {
	lines  []int // kept line indices, ascending
	height int
	value  float64
}

// itemVersions builds the candidate versions for an item. For each size k
// the k highest-scoring lines are kept (document order breaks ties), so
// only len(lines)+1 candidates are needed instead of every subset. The
// version's value is weight*sum(scores)+bias, with empty versions worth 0.
func itemVersions(item types.Item) []version {
	base := 0
	if !item.Compact() {
		if layout := titleRows(item.Titles); layout > 0 {
			base = layout * titleRowHeight
		}
	}

	// Line order by descending score, stable in document order.
	order := make([]int, len(item.Lines))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return item.Lines[order[a]].Score > item.Lines[order[b]].Score
	})

	versions := []version{{}}
	for k := 1; k <= len(item.Lines); k++ {
		kept := append([]int(nil), order[:k]...)
		sort.Ints(kept)
		height := base
		value := 0.0
		for _, li := range kept {
			line := item.Lines[li]
			height += textHeight(line.Display)
			value += line.Score
		}
		value = item.Params.Weight*value + item.Params.Bias
		versions = append(versions, version{lines: kept, height: height, value: value})
	}
	return versions
}

// titleRows counts the title rows an item's layout produces: one for up to
// three fields, two beyond that, zero for no meaningful titles.
func titleRows(titles []string) int {
	n := 0
	for _, t := range titles {
		if t != "" {
			n = len(titles)
			break
		}
	}
	switch {
	case n == 0:
		return 0
	case n <= 3:
		return 1
	default:
		return 2
	}
}

// Selection maps item position (section, item) to the kept line indices.
// Items absent from the map are dropped.
type Selection map[[2]int][]int

// Select runs the height-constrained selection: maximize total item value
// within the budget. Items are considered in document order and ties keep
// the earlier solution, so the result is deterministic.
func Select(doc types.Document, budget int) Selection {
	type flatItem struct {
		key      [2]int
		versions []version
	}
	var items []flatItem
	for si, section := range doc.Sections {
		for ii, item := range section.Items {
			items = append(items, flatItem{key: [2]int{si, ii}, versions: itemVersions(item)})
		}
	}
	if len(items) == 0 || budget <= 0 {
		return Selection{}
	}

	// Knapsack over (item, remaining height). choice[w][h] records the
	// version picked for item w at height h.
	value := make([][]float64, len(items)+1)
	choice := make([][]int, len(items)+1)
	for w := range value {
		value[w] = make([]float64, budget+1)
		choice[w] = make([]int, budget+1)
	}
	for w := 1; w <= len(items); w++ {
		for h := 0; h <= budget; h++ {
			best := value[w-1][h]
			pick := 0
			for vi, v := range items[w-1].versions {
				if vi == 0 || v.height > h {
					continue
				}
				if cand := value[w-1][h-v.height] + v.value; cand > best {
					best = cand
					pick = vi
				}
			}
			value[w][h] = best
			choice[w][h] = pick
		}
	}

	out := Selection{}
	h := budget
	for w := len(items); w >= 1; w-- {
		vi := choice[w][h]
		if vi == 0 {
			continue
		}
		v := items[w-1].versions[vi]
		out[items[w-1].key] = v.lines
		h -= v.height
	}
	return out
}

// Prune applies a selection: items keep only their selected lines,
// unselected items disappear, and emptied sections disappear with section
// ids renumbered.
func Prune(doc types.Document, sel Selection) types.Document {
	out := types.Document{HeadingInfo: doc.Clone().HeadingInfo}
	for si, section := range doc.Sections {
		pruned := types.Section{Title: section.Title}
		for ii, item := range section.Items {
			kept, ok := sel[[2]int{si, ii}]
			if !ok {
				continue
			}
			copied := item
			copied.Titles = append([]string(nil), item.Titles...)
			copied.Lines = nil
			for _, li := range kept {
				copied.Lines = append(copied.Lines, item.Lines[li])
			}
			pruned.Items = append(pruned.Items, copied)
		}
		if len(pruned.Items) > 0 {
			pruned.ID = len(out.Sections)
			out.Sections = append(out.Sections, pruned)
		}
	}
	return out
}
