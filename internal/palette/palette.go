// Package palette maps diff line categories to terminal colors.
//
// A Palette starts from built-in defaults and is overridden by plain-text rc files (system-wide, then per-user) in "key = value" form. Construction happens in a Builder;
// Build freezes the result into a read-only Palette that is safe to share.
package palette

import (
	"sort"

	"github.com/codalotl/colordiff/internal/q/termcolor"
)

// Category names a kind of diff text that can be colored. Line categories come from classifying diff lines; the rest (same, trailing space, etc) are synthetic.
type Category string

const (
	Metaline      Category = "metaline"      // "+++ " / "--- " file headers
	Plain         Category = "plain"         // context and anything unrecognized
	Newtext       Category = "newtext"       // added lines, and changed spans within them
	Oldtext       Category = "oldtext"       // removed lines, and changed spans within them
	Newsame       Category = "newsame"       // unchanged spans within an added line
	Oldsame       Category = "oldsame"       // unchanged spans within a removed line
	Diffstuff     Category = "diffstuff"     // "@@ ... @@" hunk headers
	TrailingSpace Category = "trailingspace" // whitespace before the end of an added line
	LeadingTabs   Category = "leadingtabs"
	LongLine      Category = "longline"
)

// Locations of the override files, lowest priority first.
const (
	SystemPath = "/etc/colordiffrc"
	UserPath   = "~/.colordiffrc"
)

// defaultColors are the built-in colors. Plain is deliberately uncolored.
var defaultColors = map[Category]string{
	Metaline:      "white",
	Plain:         "",
	Newtext:       "darkgreen",
	Oldtext:       "darkred",
	Newsame:       "darkyellow",
	Oldsame:       "darkyellow",
	Diffstuff:     "darkcyan",
	TrailingSpace: "red",
	LeadingTabs:   "magenta",
	LongLine:      "white",
}

// Palette is an immutable category -> color mapping. A nil *Palette resolves everything to termcolor.None.
type Palette struct {
	colors map[Category]termcolor.Color
}

// Resolve returns the color for c, or termcolor.None if c is uncolored or unknown.
func (p *Palette) Resolve(c Category) termcolor.Color {
	if p == nil {
		return termcolor.None
	}
	return p.colors[c]
}

// Categories returns every category p knows about (including ones mapped to no color), sorted by name.
func (p *Palette) Categories() []Category {
	if p == nil {
		return nil
	}
	cats := make([]Category, 0, len(p.colors))
	for c := range p.colors {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Disabled returns a palette with the default categories all mapped to no color. It is used when color output is off, regardless of any override files.
func Disabled() *Palette {
	colors := make(map[Category]termcolor.Color, len(defaultColors))
	for c := range defaultColors {
		colors[c] = termcolor.None
	}
	return &Palette{colors: colors}
}

// Default returns the built-in palette with no overrides applied.
func Default() *Palette {
	return NewBuilder().Build()
}

// Load returns the built-in palette overridden by each file in paths, in order (later files win per key). Missing or unreadable files are skipped.
//
// The conventional call is Load(SystemPath, UserPath).
func Load(paths ...string) *Palette {
	b := NewBuilder()
	for _, path := range paths {
		b.LoadFile(path)
	}
	return b.Build()
}
