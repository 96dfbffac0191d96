package projection

import "strings"

// TitleCell is one rendered title slot. Augmented cells combine two
// adjacent title fields as "Primary | Secondary".
type TitleCell struct {
	Primary   string
	Secondary string
	Augmented bool
}

// Text renders the cell as it appears in the row.
func (c TitleCell) Text() string {
	if c.Augmented {
		return c.Primary + " | " + c.Secondary
	}
	return c.Primary
}

// TitleRow is one row of up to two title cells.
type TitleRow struct {
	Left  TitleCell
	Right *TitleCell
}

// TitleLayout arranges an item's title fields into one or two rows.
type TitleLayout struct {
	Row1 TitleRow
	Row2 *TitleRow
}

// FormatTitles arranges n title fields (n in 0..6) into rows:
//
//	1, 2, 4  ->  simple rows of up to two columns
//	3, 5, 6  ->  the leading pair collapses into one augmented cell
//	             ("a | b") followed by the next field on the right
//
// Zero titles (or any count outside 0..6, unreachable under the model
// invariants) yields nil.
func FormatTitles(titles []string) *TitleLayout {
	switch len(titles) {
	case 0:
		return nil
	case 1:
		return &TitleLayout{Row1: TitleRow{Left: TitleCell{Primary: titles[0]}}}
	case 2:
		return &TitleLayout{Row1: simpleRow(titles[0], titles[1])}
	case 3:
		return &TitleLayout{Row1: augmentedRow(titles[0], titles[1], titles[2])}
	case 4:
		r2 := simpleRow(titles[2], titles[3])
		return &TitleLayout{Row1: simpleRow(titles[0], titles[1]), Row2: &r2}
	case 5:
		r2 := simpleRow(titles[3], titles[4])
		return &TitleLayout{Row1: augmentedRow(titles[0], titles[1], titles[2]), Row2: &r2}
	case 6:
		r2 := augmentedRow(titles[3], titles[4], titles[5])
		return &TitleLayout{Row1: augmentedRow(titles[0], titles[1], titles[2]), Row2: &r2}
	default:
		return nil
	}
}

// hasVisibleTitle reports whether any title slot holds non-blank text.
func hasVisibleTitle(titles []string) bool {
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

func simpleRow(left, right string) TitleRow {
	return TitleRow{
		Left:  TitleCell{Primary: left},
		Right: &TitleCell{Primary: right},
	}
}

func augmentedRow(main, secondary, right string) TitleRow {
	return TitleRow{
		Left:  TitleCell{Primary: main, Secondary: secondary, Augmented: true},
		Right: &TitleCell{Primary: right},
	}
}
