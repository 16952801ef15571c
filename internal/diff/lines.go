package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// MatchedLines returns the number of lines the optimal alignment of oldLines and newLines pairs up (the length of their longest common subsequence, comparing lines
// exactly).
func MatchedLines(oldLines, newLines []string) int {
	if len(oldLines) == 0 || len(newLines) == 0 {
		return 0
	}

	// Encode each distinct line as one rune, like diffmatchpatch.DiffLinesToRunes, but without requiring lines to be '\n'-terminated.
	index := map[string]rune{}
	encode := func(lines []string) []rune {
		out := make([]rune, len(lines))
		for i, line := range lines {
			r, ok := index[line]
			if !ok {
				r = rune(len(index) + 1)
				index[line] = r
			}
			out[i] = r
		}
		return out
	}
	rOld := encode(oldLines)
	rNew := encode(newLines)

	dmp := diffmatchpatch.New()
	// No deadline: with a deadline, diffmatchpatch may settle for a non-optimal alignment.
	dmp.DiffTimeout = 0

	matched := 0
	for _, d := range dmp.DiffMainRunes(rOld, rNew, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	return matched
}
