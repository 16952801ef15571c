package colordiff

import (
	"strings"

	"github.com/codalotl/colordiff/internal/palette"
)

// Category is the kind of a diff line. Only the line categories of palette.Category are ever returned by Classify.
type Category = palette.Category

// Classify returns the category of line, looking only at its first characters:
//   - "@" is a hunk header (palette.Diffstuff)
//   - "+++ " and "--- " are file headers (palette.Metaline)
//   - "+" is an added line (palette.Newtext)
//   - "-" is a removed line (palette.Oldtext)
//   - anything else, including context lines and the empty string, is palette.Plain
func Classify(line string) Category {
	switch {
	case strings.HasPrefix(line, "@"):
		return palette.Diffstuff
	case strings.HasPrefix(line, "+++ "), strings.HasPrefix(line, "--- "):
		return palette.Metaline
	case strings.HasPrefix(line, "+"):
		return palette.Newtext
	case strings.HasPrefix(line, "-"):
		return palette.Oldtext
	default:
		return palette.Plain
	}
}
