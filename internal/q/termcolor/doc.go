// Package termcolor renders text with 8-color ANSI escape sequences and decides whether an output destination should receive them.
//
// Colors are named: black, red, green, yellow, blue, magenta, cyan and white. A name may carry a "dark" prefix (ex: "darkgreen"): a dark foreground is rendered with normal
// intensity, a plain one with bold intensity. Backgrounds ignore the prefix. Color is an explicit optional value; its zero value means "no color" and renders text unchanged.
//
// Mode captures the user's choice (always, never, auto). In auto mode, SupportsColor decides: the destination must be a terminal and the environment must not opt out of color
// (NO_COLOR, TERM=dumb, etc).
package termcolor
