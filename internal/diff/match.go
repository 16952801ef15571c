package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// MatchingBlocks aligns oldText and newText by rune and returns the blocks they have in common. The final element is always the sentinel {len(old), len(new), 0}.
func MatchingBlocks(oldText, newText string) []Match {
	oldRunes := []rune(oldText)
	newRunes := []rune(newText)

	m := difflib.NewMatcher(runeElements(oldRunes), runeElements(newRunes))
	blocks := m.GetMatchingBlocks()

	matches := make([]Match, len(blocks))
	for i, b := range blocks {
		matches[i] = Match{Old: b.A, New: b.B, Size: b.Size}
	}

	if err := validateMatches(matches, len(oldRunes), len(newRunes)); err != nil {
		panic(fmt.Errorf("MatchingBlocks: validate failed with %v", err))
	}
	return matches
}

// runeElements splits runes into one-rune strings; difflib matches over string elements.
func runeElements(runes []rune) []string {
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
