package colordiff

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/codalotl/colordiff/internal/palette"
	"github.com/codalotl/colordiff/internal/q/termcolor"
)

var (
	// trailingSpaceRE splits a terminated segment into body, trailing tabs/spaces, and terminator.
	trailingSpaceRE = regexp.MustCompile(`^(.*?)([\t ]+)(\r?\n)$`)

	// hunkRangeRE splits a terminated hunk header into its "@@ ... @@" range and the rest.
	hunkRangeRE = regexp.MustCompile(`^(@@[^@]*@@)(.*\r?\n)$`)
)

// renderer colors segments of lines from a palette.
type renderer struct {
	palette *palette.Palette
}

// render colors text as cat. A line terminator at the end of text is kept outside the escape sequence.
//
// If bgIfSpace is set and text is non-empty whitespace without a terminator, it is colored with cat's color as both foreground and background so that it is visible.
func (r renderer) render(cat Category, text string, bgIfSpace bool) string {
	fg := r.palette.Resolve(cat)
	if !fg.IsSet() || text == "" {
		return text
	}

	bg := termcolor.None
	switch {
	case (cat == palette.Newtext || cat == palette.Newsame) && strings.HasSuffix(text, "\n"):
		if m := trailingSpaceRE.FindStringSubmatch(text); m != nil {
			return termcolor.Render(m[1], fg, termcolor.None) + termcolor.Render(m[2], r.palette.Resolve(palette.TrailingSpace), termcolor.None) + m[3]
		}
	case cat == palette.Diffstuff:
		if m := hunkRangeRE.FindStringSubmatch(text); m != nil {
			return termcolor.Render(m[1], fg, termcolor.None) + m[2]
		}
	case bgIfSpace && isSpace(text) && !strings.HasSuffix(text, "\n"):
		bg = fg
	}

	body, eol := splitEOL(text)
	return termcolor.Render(body, fg, bg) + eol
}

// splitEOL splits a trailing "\n" or "\r\n" off s.
func splitEOL(s string) (body, eol string) {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2], "\r\n"
	case strings.HasSuffix(s, "\n"):
		return s[:len(s)-1], "\n"
	default:
		return s, ""
	}
}

// isSpace reports whether s is non-empty and entirely whitespace.
func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
