// Package uni measures text the way a monospace terminal displays it: by grapheme cluster, in cells.
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. Control characters (including tabs) are zero-width. If opts is nil, locale is assumed to
// be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// RuneWidth returns the width of r for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func RuneWidth(r rune, opts *Options) int {
	return conditionFromOptions(opts).RuneWidth(r)
}

// Iterator iterates over the grapheme clusters of a string.
type Iterator struct {
	iter graphemes.Iterator[string]
	cond *runewidth.Condition
}

// NewGraphemeIterator returns a new grapheme iterator for str. If opts is nil, locale is assumed to be non-East Asian.
func NewGraphemeIterator(str string, opts *Options) *Iterator {
	return &Iterator{
		iter: graphemes.FromString(str),
		cond: conditionFromOptions(opts),
	}
}

// Next advances to the next grapheme cluster, returning false at the end.
func (iter *Iterator) Next() bool {
	return iter.iter.Next()
}

// Value is the current grapheme cluster.
func (iter *Iterator) Value() string {
	return iter.iter.Value()
}

// Start returns the byte position of the current cluster in the original string.
func (iter *Iterator) Start() int {
	return iter.iter.Start()
}

// End returns the byte position after the current cluster. Allows looping over bytes [Start(), End()).
func (iter *Iterator) End() int {
	return iter.iter.End()
}

// TextWidth returns the width of the current cluster.
func (iter *Iterator) TextWidth() int {
	return iter.cond.StringWidth(iter.iter.Value())
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
