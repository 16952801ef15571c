package palette

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/codalotl/colordiff/internal/q/cascade"
	"github.com/codalotl/colordiff/internal/q/termcolor"
	"github.com/codalotl/colordiff/internal/simplelogger"
)

// Builder accumulates overrides on top of the defaults. The zero value is not usable; use NewBuilder.
type Builder struct {
	colors map[Category]termcolor.Color
}

// NewBuilder returns a Builder holding the built-in defaults.
func NewBuilder() *Builder {
	colors := make(map[Category]termcolor.Color, len(defaultColors))
	for c, name := range defaultColors {
		if name == "" {
			colors[c] = termcolor.None
			continue
		}
		colors[c] = termcolor.MustParse(name)
	}
	return &Builder{colors: colors}
}

// Set overrides key with value and reports whether it was applied.
//
// "none", "normal" and "off" clear key to no color. Any other value must name a known color, optionally "dark"-prefixed; otherwise the override is discarded and the
// previous value for key is kept. Keys are not validated: an unknown key is stored but nothing will look it up.
func (b *Builder) Set(key, value string) bool {
	switch value {
	case "none", "normal", "off":
		b.colors[Category(key)] = termcolor.None
		return true
	}
	c, ok := termcolor.Parse(value)
	if !ok {
		return false
	}
	b.colors[Category(key)] = c
	return true
}

// Read applies every "key = value" line from r. Lines without exactly one '=' are skipped, as are lines whose color is unknown. Only a read error is returned; lines
// applied before it stay applied.
func (b *Builder) Read(r io.Reader) error {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			b.applyLine(line, lineNo)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (b *Builder) applyLine(line string, lineNo int) {
	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		return
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if !b.Set(key, value) {
		simplelogger.Logger().Debug().Int("line", lineNo).Str("key", key).Str("value", value).Msg("palette: unknown color, override ignored")
	}
}

// LoadFile applies the overrides in the file at path ("~" is expanded). A missing or unreadable file is not an error; it contributes nothing.
func (b *Builder) LoadFile(path string) {
	expanded := cascade.ExpandPath(path)
	f, err := os.Open(expanded)
	if err != nil {
		simplelogger.Logger().Debug().Str("path", expanded).Err(err).Msg("palette: override file skipped")
		return
	}
	defer f.Close()

	if err := b.Read(f); err != nil {
		simplelogger.Logger().Debug().Str("path", expanded).Err(err).Msg("palette: override file partially read")
	}
}

// Build freezes the current mapping into a Palette. b may keep being used; later changes don't affect the returned Palette.
func (b *Builder) Build() *Palette {
	colors := make(map[Category]termcolor.Color, len(b.colors))
	for c, col := range b.colors {
		colors[c] = col
	}
	return &Palette{colors: colors}
}
