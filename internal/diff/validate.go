package diff

import "fmt"

// validateMatches checks the MatchingBlocks invariants against the old/new rune lengths and returns an error on the first violation:
//   - blocks are in bounds, and strictly increasing and non-overlapping on both sides
//   - only the last block has Size 0, and it sits at {oldLen, newLen}
func validateMatches(matches []Match, oldLen, newLen int) error {
	if len(matches) == 0 {
		return fmt.Errorf("no sentinel block")
	}

	last := matches[len(matches)-1]
	if last != (Match{Old: oldLen, New: newLen, Size: 0}) {
		return fmt.Errorf("last block %+v is not the sentinel {%d %d 0}", last, oldLen, newLen)
	}

	prevOldEnd, prevNewEnd := 0, 0
	for i, m := range matches[:len(matches)-1] {
		if m.Size <= 0 {
			return fmt.Errorf("block[%d]: non-sentinel block has size %d", i, m.Size)
		}
		if m.Old < prevOldEnd || m.New < prevNewEnd {
			return fmt.Errorf("block[%d]: %+v overlaps or precedes the previous block", i, m)
		}
		if m.OldEnd() > oldLen || m.NewEnd() > newLen {
			return fmt.Errorf("block[%d]: %+v out of bounds (%d, %d)", i, m, oldLen, newLen)
		}
		prevOldEnd, prevNewEnd = m.OldEnd(), m.NewEnd()
	}
	return nil
}
