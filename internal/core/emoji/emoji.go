// Package emoji classifies runes as emoji by Unicode code-point range.
package emoji

import "sort"

// Range is an inclusive code-point interval.
type Range struct {
	Lo, Hi rune
}

// Table is a set of emoji ranges. The zero value recognizes nothing.
type Table struct {
	ranges []Range
}

// NewTable builds a table from the given ranges. Ranges may overlap.
func NewTable(ranges ...Range) *Table {
	rs := append([]Range(nil), ranges...)
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	return &Table{ranges: rs}
}

// Default covers emoticons, pictographs, transport/map symbols, regional
// indicators and the supplemental symbol blocks.
var Default = NewTable(
	Range{0x1F600, 0x1F64F}, // emoticons
	Range{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	Range{0x1F680, 0x1F6FF}, // transport and map
	Range{0x1F1E0, 0x1F1FF}, // regional indicators
	Range{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	Range{0x1FA70, 0x1FAFF}, // symbols and pictographs extended-A
)

// Contains reports whether r falls in any range of the table.
func (t *Table) Contains(r rune) bool {
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].Lo > r })
	for j := i - 1; j >= 0; j-- {
		if r <= t.ranges[j].Hi {
			return true
		}
	}
	return false
}

// Count returns the number of emoji code points in s.
func (t *Table) Count(s string) int {
	n := 0
	for _, r := range s {
		if t.Contains(r) {
			n++
		}
	}
	return n
}
