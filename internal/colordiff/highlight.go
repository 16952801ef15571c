package colordiff

import (
	"strings"
	"unicode"

	"github.com/codalotl/colordiff/internal/diff"
	"github.com/codalotl/colordiff/internal/palette"
)

const (
	// similarityThreshold is the fraction of the shorter line that must be matched before spans are highlighted.
	similarityThreshold = 0.6

	// minMatchSize is the shortest match of only word characters that is still shown as unchanged.
	minMatchSize = 4
)

// Highlighter renders a removed/added line pair, coloring the spans the two lines share differently from the spans that changed.
type Highlighter struct {
	renderer
}

// NewHighlighter returns a Highlighter coloring from p. A nil p colors nothing.
func NewHighlighter(p *palette.Palette) *Highlighter {
	return &Highlighter{renderer: renderer{palette: p}}
}

// Highlight renders oldLine (a "-" line) and newLine (a "+" line) as a pair. Each result is a complete output line, marker included.
//
// The lines are aligned character by character without their markers. If the lines share too little (no more than 60% of the shorter one), each is colored whole
// as oldtext/newtext. Otherwise shared spans are colored oldsame/newsame and the rest oldtext/newtext. Short shared spans made only of word characters and spaces are
// treated as changed, so that a few coincidentally equal letters don't fragment the line.
func (h *Highlighter) Highlight(oldLine, newLine string) (string, string) {
	oldMarker, oldBody := splitMarker(oldLine)
	newMarker, newBody := splitMarker(newLine)
	oldRunes := []rune(oldBody)
	newRunes := []rune(newBody)

	matches := diff.MatchingBlocks(oldBody, newBody)
	if !similarEnough(diff.TotalSize(matches), len(oldRunes), len(newRunes)) {
		return h.render(palette.Oldtext, oldLine, false), h.render(palette.Newtext, newLine, false)
	}
	matches = filterMatches(matches, oldRunes)

	var oldOut, newOut strings.Builder
	oldOut.WriteString(h.render(palette.Oldtext, oldMarker, false))
	newOut.WriteString(h.render(palette.Newtext, newMarker, false))

	first := matches[0]
	oldOut.WriteString(h.render(palette.Oldtext, string(oldRunes[:first.Old]), true))
	newOut.WriteString(h.render(palette.Newtext, string(newRunes[:first.New]), true))

	for i, m := range matches[:len(matches)-1] {
		next := matches[i+1]
		oldOut.WriteString(h.render(palette.Oldsame, string(oldRunes[m.Old:m.OldEnd()]), false))
		newOut.WriteString(h.render(palette.Newsame, string(newRunes[m.New:m.NewEnd()]), false))
		oldOut.WriteString(h.render(palette.Oldtext, string(oldRunes[m.OldEnd():next.Old]), false))
		newOut.WriteString(h.render(palette.Newtext, string(newRunes[m.NewEnd():next.New]), false))
	}

	return oldOut.String(), newOut.String()
}

// splitMarker splits the one-byte "-"/"+" marker off line.
func splitMarker(line string) (marker, body string) {
	if line == "" {
		return "", ""
	}
	return line[:1], line[1:]
}

// similarEnough reports whether matched characters are strictly more than the threshold fraction of the shorter of two lines.
func similarEnough(matched, oldLen, newLen int) bool {
	return float64(matched) > similarityThreshold*float64(min(oldLen, newLen))
}

// filterMatches returns the matches worth showing as unchanged: the terminating sentinel, matches of at least minMatchSize, and matches containing punctuation or
// other non-word characters. old is the text the matches' Old offsets index.
func filterMatches(matches []diff.Match, old []rune) []diff.Match {
	kept := make([]diff.Match, 0, len(matches))
	for _, m := range matches {
		if m.IsSentinel() || m.Size >= minMatchSize || hasSpecial(old[m.Old:m.OldEnd()]) {
			kept = append(kept, m)
		}
	}
	return kept
}

// hasSpecial reports whether rs contains a character other than a word character, space, '\r' or '\n'.
func hasSpecial(rs []rune) bool {
	for _, r := range rs {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '_', r == ' ', r == '\r', r == '\n':
		default:
			return true
		}
	}
	return false
}
