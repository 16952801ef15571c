package termformat

import (
	"strings"

	"github.com/codalotl/colordiff/internal/q/uni"
)

// TextWidthWithANSICodes returns the text width of str for monospace fonts in terminals while ignoring ANSI codes. Ex: color formatting codes don't
// contribute to the width and so are ignored. In other words, if rendered to a terminal, how many cells does str occupy?
//
// Tabs are zero-width here; use ColumnWidth to expand them.
func TextWidthWithANSICodes(str string) int {
	return uni.TextWidth(StripANSI(str), nil)
}

// ColumnWidth returns the column reached after printing str from column 0, ignoring ANSI codes. Each tab advances to the next multiple of tabWidth; if tabWidth <= 0,
// tabs are zero-width. str should not contain newlines.
func ColumnWidth(str string, tabWidth int) int {
	plain := StripANSI(str)
	if tabWidth <= 0 || !strings.Contains(plain, "\t") {
		return uni.TextWidth(plain, nil)
	}

	col := 0
	iter := uni.NewGraphemeIterator(plain, nil)
	for iter.Next() {
		if iter.Value() == "\t" {
			col += tabWidth - col%tabWidth
			continue
		}
		col += iter.TextWidth()
	}
	return col
}

// StripANSI removes recognized ANSI escape sequences (CSI, OSC, DCS/PM/APC, and two-byte escapes) from str. An unterminated sequence drops only its ESC byte.
func StripANSI(str string) string {
	if strings.IndexByte(str, '\x1b') < 0 {
		return str
	}

	var b strings.Builder
	b.Grow(len(str))
	for i := 0; i < len(str); {
		if str[i] != '\x1b' {
			b.WriteByte(str[i])
			i++
			continue
		}
		seqLen := ansiSequenceLength(str[i:])
		if seqLen == 0 {
			i++
		} else {
			i += seqLen
		}
	}
	return b.String()
}

func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 1
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			final := s[i]
			if final >= 0x40 && final <= 0x7e { // Final byte of a CSI sequence
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' { // BEL terminator
				return i + 1
			}
			if s[i] == '\\' && s[i-1] == '\x1b' { // ST terminator (ESC \)
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		return 2 // ESC followed by a single-character control sequence
	}
}
