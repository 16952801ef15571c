package termcolor

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode is the user's color preference.
type Mode string

const (
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
	ModeAuto   Mode = "auto"
)

// Modes lists valid modes, in the order they're presented to users.
var Modes = []Mode{ModeAlways, ModeNever, ModeAuto}

// ParseMode parses s (case-insensitive, surrounding space ignored) into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Modes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid color mode %q (want always, never, or auto)", s)
}

// Enabled reports whether output written to w should be colored under m.
func (m Mode) Enabled(w io.Writer) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeAuto:
		return SupportsColor(w)
	default:
		return false
	}
}

// SupportsColor reports whether w is a terminal that accepts color escapes. w must expose a file descriptor (ex: *os.File); anything else is assumed not to be a terminal.
func SupportsColor(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}
