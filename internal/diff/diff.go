package diff

// Match is a run of identical runes shared by two strings: old[Old:Old+Size] == new[New:New+Size].
//
// A Match with Size 0 is the sentinel that terminates a MatchingBlocks result.
type Match struct {
	Old  int // Rune offset into the old string.
	New  int // Rune offset into the new string.
	Size int // Length of the run, in runes.
}

// IsSentinel reports whether m is the zero-length terminating block.
func (m Match) IsSentinel() bool {
	return m.Size == 0
}

// OldEnd is the rune offset just past the run in the old string.
func (m Match) OldEnd() int {
	return m.Old + m.Size
}

// NewEnd is the rune offset just past the run in the new string.
func (m Match) NewEnd() int {
	return m.New + m.Size
}

// TotalSize sums the sizes of matches.
func TotalSize(matches []Match) int {
	total := 0
	for _, m := range matches {
		total += m.Size
	}
	return total
}
