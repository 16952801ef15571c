package termcolor

import (
	"sort"
	"strings"

	"github.com/fatih/color"
)

// darkPrefix marks a normal-intensity foreground.
const darkPrefix = "dark"

var foregrounds = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

var backgrounds = map[string]color.Attribute{
	"black":   color.BgBlack,
	"red":     color.BgRed,
	"green":   color.BgGreen,
	"yellow":  color.BgYellow,
	"blue":    color.BgBlue,
	"magenta": color.BgMagenta,
	"cyan":    color.BgCyan,
	"white":   color.BgWhite,
}

// Color is an optional named terminal color. The zero value is no color.
type Color struct {
	name string
}

// None is the absence of a color.
var None = Color{}

// Parse returns the Color named name. name may be prefixed with "dark". ok is false if the name (with any dark prefix removed) is not a known color.
func Parse(name string) (c Color, ok bool) {
	if _, known := foregrounds[strings.TrimPrefix(name, darkPrefix)]; !known {
		return None, false
	}
	return Color{name: name}, true
}

// MustParse is like Parse but panics on an unknown name. Intended for built-in tables.
func MustParse(name string) Color {
	c, ok := Parse(name)
	if !ok {
		panic("termcolor: unknown color " + name)
	}
	return c
}

// IsSet reports whether c is an actual color.
func (c Color) IsSet() bool {
	return c.name != ""
}

// Dark reports whether c renders at normal intensity.
func (c Color) Dark() bool {
	return strings.HasPrefix(c.name, darkPrefix)
}

// Name is the name c was parsed from, including any dark prefix. It is "" for None.
func (c Color) Name() string {
	return c.name
}

func (c Color) String() string {
	if !c.IsSet() {
		return "none"
	}
	return c.name
}

func (c Color) base() string {
	return strings.TrimPrefix(c.name, darkPrefix)
}

// KnownColors returns the base color names (without dark prefix), sorted.
func KnownColors() []string {
	names := make([]string, 0, len(foregrounds))
	for name := range foregrounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render wraps text in an escape sequence selecting fg and bg, followed by a reset. If neither color is set, or text is empty, text is returned unchanged.
//
// The sequence starts with an intensity attribute when fg is set (0 for dark colors, 1 otherwise), then the foreground, then the background.
func Render(text string, fg, bg Color) string {
	if text == "" {
		return ""
	}

	var attrs []color.Attribute
	if fg.IsSet() {
		if fg.Dark() {
			attrs = append(attrs, color.Reset)
		} else {
			attrs = append(attrs, color.Bold)
		}
		attrs = append(attrs, foregrounds[fg.base()])
	}
	if bg.IsSet() {
		attrs = append(attrs, backgrounds[bg.base()])
	}
	if len(attrs) == 0 {
		return text
	}

	c := color.New(attrs...)
	// Whether to color is decided by Mode, not by fatih/color's own stdout detection.
	c.EnableColor()
	return c.Sprint(text)
}
