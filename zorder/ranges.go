package zorder

// Range is an inclusive run of consecutive cell indices.
type Range struct {
	First CellIndex
	Last  CellIndex
}

func (r Range) Len() int {
	return int(r.Last-r.First) + 1
}

// Ranges collapses cells into maximal runs of consecutive indices. cells must be sorted
// ascending without duplicates, which is what Decompose returns.
func Ranges(cells []CellIndex) []Range {
	if len(cells) == 0 {
		return nil
	}
	ranges := make([]Range, 0, 1)
	current := Range{First: cells[0], Last: cells[0]}
	for _, z := range cells[1:] {
		if z == current.Last+1 {
			current.Last = z
			continue
		}
		ranges = append(ranges, current)
		current = Range{First: z, Last: z}
	}
	return append(ranges, current)
}
