package colordiff

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/codalotl/colordiff/internal/diff"
	"github.com/codalotl/colordiff/internal/palette"
	"github.com/codalotl/colordiff/internal/q/termformat"
)

// DefaultMaxLineLength is the column limit for added lines when none is configured.
const DefaultMaxLineLength = 79

// tabWidth is the tab stop used when measuring added lines.
const tabWidth = 8

// ErrMatchInvariant is returned when removing trailing whitespace made two batches of lines match worse than before, which a correct line matcher never does.
var ErrMatchInvariant = errors.New("colordiff: whitespace-stripped lines matched fewer lines than raw lines")

// StyleCounters are the running totals of a StyleAnalyzer.
type StyleCounters struct {
	LeadingTabs        int // added lines starting with a tab
	TrailingWhitespace int // added lines ending with tabs or spaces
	LongLines          int // added lines wider than the maximum line length
	SpuriousWhitespace int // changed lines that differ only in trailing whitespace
}

// StyleAnalyzer counts style problems in the added lines of a diff, and changed lines whose only change is trailing whitespace.
//
// Consecutive removed and added lines form a batch. When a batch ends (at any other line, or EndBatch), the removed and added lines are matched against each other
// twice: as-is, and with trailing whitespace removed. Every extra line matched the second time is a spurious whitespace change.
type StyleAnalyzer struct {
	maxLineLength int
	counters      StyleCounters

	oldBatch []string
	newBatch []string

	// matchLines returns how many lines the best alignment of old and new pairs up.
	matchLines func(old, new []string) int
}

// NewStyleAnalyzer returns an analyzer flagging added lines wider than maxLineLength columns. If maxLineLength <= 0, DefaultMaxLineLength is used.
func NewStyleAnalyzer(maxLineLength int) *StyleAnalyzer {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	return &StyleAnalyzer{
		maxLineLength: maxLineLength,
		matchLines:    diff.MatchedLines,
	}
}

// MaxLineLength is the column limit for added lines.
func (a *StyleAnalyzer) MaxLineLength() int {
	return a.maxLineLength
}

// Counters returns the totals so far. Lines in a batch that hasn't ended yet are not counted as spurious changes.
func (a *StyleAnalyzer) Counters() StyleCounters {
	return a.counters
}

// Observe records line, which Classify put in cat. If line ends a batch, the batch is compared and Observe reports whether it had spurious whitespace changes.
func (a *StyleAnalyzer) Observe(cat Category, line string) (bool, error) {
	switch cat {
	case palette.Oldtext:
		a.oldBatch = append(a.oldBatch, line[1:])
		return false, nil
	case palette.Newtext:
		a.checkAdded(line[1:])
		a.newBatch = append(a.newBatch, line[1:])
		return false, nil
	default:
		return a.EndBatch()
	}
}

// EndBatch compares and clears the current batch, reporting whether it had spurious whitespace changes. With no batch open, it does nothing.
func (a *StyleAnalyzer) EndBatch() (bool, error) {
	if len(a.oldBatch) == 0 && len(a.newBatch) == 0 {
		return false, nil
	}
	oldLines, newLines := a.oldBatch, a.newBatch
	a.oldBatch, a.newBatch = nil, nil

	n, err := a.CompareBatches(oldLines, newLines)
	return n > 0, err
}

// CompareBatches matches oldLines against newLines as-is and with trailing whitespace removed, adds the number of extra lines matched the second time to
// SpuriousWhitespace, and returns it. Lines are compared without their "-"/"+" markers.
//
// If fewer lines match after removing whitespace, nothing is counted and an error wrapping ErrMatchInvariant is returned.
func (a *StyleAnalyzer) CompareBatches(oldLines, newLines []string) (int, error) {
	raw := a.matchLines(oldLines, newLines)
	stripped := a.matchLines(rstripAll(oldLines), rstripAll(newLines))
	if stripped < raw {
		return 0, fmt.Errorf("%w: %d stripped vs %d raw", ErrMatchInvariant, stripped, raw)
	}
	a.counters.SpuriousWhitespace += stripped - raw
	return stripped - raw, nil
}

// checkAdded counts the problems of one added line, marker removed.
func (a *StyleAnalyzer) checkAdded(body string) {
	content, _ := splitEOL(body)
	if strings.HasPrefix(content, "\t") {
		a.counters.LeadingTabs++
	}
	if strings.HasSuffix(content, " ") || strings.HasSuffix(content, "\t") {
		a.counters.TrailingWhitespace++
	}
	if termformat.ColumnWidth(content, tabWidth) > a.maxLineLength {
		a.counters.LongLines++
	}
}

func rstripAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	return out
}

// Finding is one line of a style report.
type Finding struct {
	Category Category // palette category to color the message with
	Count    int
	Message  string
}

func (f Finding) String() string {
	return f.Message
}

// Report returns a finding for each nonzero counter, in a fixed order: leading tabs, trailing whitespace, long lines, spurious whitespace.
func (a *StyleAnalyzer) Report() []Finding {
	c := a.counters
	var findings []Finding
	if c.LeadingTabs > 0 {
		findings = append(findings, Finding{palette.LeadingTabs, c.LeadingTabs, fmt.Sprintf("%d new line(s) have leading tabs.", c.LeadingTabs)})
	}
	if c.TrailingWhitespace > 0 {
		findings = append(findings, Finding{palette.TrailingSpace, c.TrailingWhitespace, fmt.Sprintf("%d new line(s) have trailing whitespace.", c.TrailingWhitespace)})
	}
	if c.LongLines > 0 {
		findings = append(findings, Finding{palette.LongLine, c.LongLines, fmt.Sprintf("%d new line(s) exceed(s) %d columns.", c.LongLines, a.maxLineLength)})
	}
	if c.SpuriousWhitespace > 0 {
		findings = append(findings, Finding{palette.Plain, c.SpuriousWhitespace, fmt.Sprintf("%d line(s) have spurious whitespace changes", c.SpuriousWhitespace)})
	}
	return findings
}
