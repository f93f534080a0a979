package grid

// Diff returns the indexes, in increasing order, of rows that differ between
// two grids. Rows present in only one of the grids count as different.
func Diff(prev, next Grid) []int {
	var changed []int
	for i := 0; i < max(prev.Height(), next.Height()); i++ {
		if i >= prev.Height() || i >= next.Height() || !prev.Rows[i].Equal(next.Rows[i]) {
			changed = append(changed, i)
		}
	}
	return changed
}
