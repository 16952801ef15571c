package colordiff

import (
	"bytes"
	"io"

	"github.com/codalotl/colordiff/internal/palette"
)

// spuriousNotice follows a batch of changed lines that differ only in trailing whitespace.
const spuriousNotice = "^ Spurious whitespace change above.\n"

// Options configure a Writer.
type Options struct {
	// Color enables coloring. If false, input is written through unchanged.
	Color bool

	// Palette colors the output. If nil and Color is set, palette.Default() is used.
	Palette *palette.Palette

	// Style, if set, observes every line. Its notices are only written when Color is set.
	Style *StyleAnalyzer
}

// state is the annotator state: idle or holdingRemoved.
type state interface {
	isState()
}

// idle: no line is held.
type idle struct{}

// holdingRemoved: a removed line is held until the next line shows whether it can be paired with an added line.
type holdingRemoved struct {
	line string
}

func (idle) isState()           {}
func (holdingRemoved) isState() {}

// Writer colors diff text written to it and writes the result to a target writer.
//
// Text is processed a line at a time; a trailing incomplete line is kept until the rest of it arrives or Close is called. A removed line is held back until the next
// line: if that is an added line, the two are rendered as a highlighted pair; otherwise the removed line is emitted alone. Call Flush (or Close) at the end of input,
// or a held line is lost.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	target      io.Writer
	color       bool
	highlighter *Highlighter
	style       *StyleAnalyzer

	state   state
	partial []byte // incomplete last line
}

// NewWriter returns a Writer writing to target.
func NewWriter(target io.Writer, opts Options) *Writer {
	p := opts.Palette
	if p == nil && opts.Color {
		p = palette.Default()
	}
	return &Writer{
		target:      target,
		color:       opts.Color,
		highlighter: NewHighlighter(p),
		style:       opts.Style,
		state:       idle{},
	}
}

// Write processes every complete line in the text written so far. It always consumes all of p; a returned error is from the target or the StyleAnalyzer.
func (w *Writer) Write(p []byte) (int, error) {
	w.partial = append(w.partial, p...)

	start := 0
	for {
		i := bytes.IndexByte(w.partial[start:], '\n')
		if i < 0 {
			break
		}
		line := string(w.partial[start : start+i+1])
		start += i + 1
		if err := w.writeLine(line); err != nil {
			w.partial = w.partial[:copy(w.partial, w.partial[start:])]
			return len(p), err
		}
	}
	w.partial = w.partial[:copy(w.partial, w.partial[start:])]
	return len(p), nil
}

// WriteLines processes each of lines as a complete line, whether or not it ends in a newline. Any incomplete text from Write is left as is.
func (w *Writer) WriteLines(lines ...string) error {
	for _, line := range lines {
		if err := w.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes a held removed line, ends the StyleAnalyzer's current batch, and flushes the target if it has a Flush() error method. Incomplete text from Write
// stays buffered.
func (w *Writer) Flush() error {
	if held, ok := w.state.(holdingRemoved); ok {
		w.state = idle{}
		if err := w.emit(w.highlighter.render(palette.Oldtext, held.line, false)); err != nil {
			return err
		}
	}

	if w.style != nil {
		spurious, err := w.style.EndBatch()
		if err != nil {
			return err
		}
		if spurious && w.color {
			if err := w.emit(spuriousNotice); err != nil {
				return err
			}
		}
	}

	if f, ok := w.target.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close processes any incomplete last line and flushes. It does not close the target.
func (w *Writer) Close() error {
	if len(w.partial) > 0 {
		line := string(w.partial)
		w.partial = w.partial[:0]
		if err := w.writeLine(line); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (w *Writer) writeLine(line string) error {
	cat := Classify(line)

	spurious := false
	if w.style != nil {
		var err error
		spurious, err = w.style.Observe(cat, line)
		if err != nil {
			return err
		}
	}

	if !w.color {
		return w.emit(line)
	}

	var out []string
	switch s := w.state.(type) {
	case idle:
	case holdingRemoved:
		w.state = idle{}
		if cat == palette.Newtext {
			oldOut, newOut := w.highlighter.Highlight(s.line, line)
			return w.emit(oldOut, newOut)
		}
		out = append(out, w.highlighter.render(palette.Oldtext, s.line, false))
	}

	if spurious {
		out = append(out, spuriousNotice)
	}
	if cat == palette.Oldtext {
		w.state = holdingRemoved{line: line}
	} else {
		out = append(out, w.highlighter.render(cat, line, false))
	}
	return w.emit(out...)
}

func (w *Writer) emit(lines ...string) error {
	for _, l := range lines {
		if _, err := io.WriteString(w.target, l); err != nil {
			return err
		}
	}
	return nil
}
