package colordiff

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/codalotl/colordiff/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/greet.go b/greet.go
--- a/greet.go
+++ b/greet.go
@@ -1,6 +1,7 @@ package greet
 import "fmt"
-func Hello(name string) {
+func Hello(name string, excited bool) {
 	fmt.Println("hello", name)
-	return
-}
+	if excited {
+		fmt.Println("!")	
+	}
+}
\ No newline at end of file`

func colorWriter(buf *bytes.Buffer) *Writer {
	return NewWriter(buf, Options{Color: true, Palette: palette.Default()})
}

func TestWriter_Pairing(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	require.NoError(t, w.WriteLines("-old line\n", "+new line\n"))

	oldOut, newOut := NewHighlighter(palette.Default()).Highlight("-old line\n", "+new line\n")
	assert.Equal(t, oldOut+newOut, buf.String())
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	require.NoError(t, w.Flush())
	assert.Equal(t, oldOut+newOut, buf.String())
}

func TestWriter_NoPairingAcrossContext(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	require.NoError(t, w.WriteLines("-old\n", " context\n"))

	assert.Equal(t, fg("-old", darkRed)+"\n"+" context\n", buf.String())
}

func TestWriter_FlushEmitsHeldLine(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	require.NoError(t, w.WriteLines("-old\n"))
	assert.Empty(t, buf.String())

	require.NoError(t, w.Flush())
	assert.Equal(t, fg("-old", darkRed)+"\n", buf.String())

	// Nothing is held anymore.
	require.NoError(t, w.Flush())
	assert.Equal(t, fg("-old", darkRed)+"\n", buf.String())
}

func TestWriter_ConsecutiveRemovedLines(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	require.NoError(t, w.WriteLines("-a\n", "-b\n"))
	assert.Equal(t, fg("-a", darkRed)+"\n", buf.String())

	require.NoError(t, w.WriteLines("+b\n"))
	oldOut, newOut := NewHighlighter(palette.Default()).Highlight("-b\n", "+b\n")
	assert.Equal(t, fg("-a", darkRed)+"\n"+oldOut+newOut, buf.String())
}

func TestWriter_ChunkedWrites(t *testing.T) {
	var whole bytes.Buffer
	require.NoError(t, colorWriter(&whole).WriteLines("@@ -1 +1 @@\n", "-old line\n", "+new line\n"))

	var chunked bytes.Buffer
	w := colorWriter(&chunked)
	for _, chunk := range []string{"@@ -1 +1", " @@\n-ol", "d line", "\n+new line", "\n"} {
		n, err := w.Write([]byte(chunk))
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}

	assert.Equal(t, whole.String(), chunked.String())
}

func TestWriter_IncompleteLine(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	_, err := w.Write([]byte(" ctx\n tail"))
	require.NoError(t, err)
	assert.Equal(t, " ctx\n", buf.String())

	// Flush leaves the fragment alone.
	require.NoError(t, w.Flush())
	assert.Equal(t, " ctx\n", buf.String())

	require.NoError(t, w.Close())
	assert.Equal(t, " ctx\n tail", buf.String())
}

func TestWriter_CloseEmitsHeldFragment(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	_, err := w.Write([]byte("-gone"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, fg("-gone", darkRed), buf.String())
}

func TestWriter_NeverModeRoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 64, len(sampleDiff)} {
		var buf bytes.Buffer
		w := NewWriter(&buf, Options{Color: false, Palette: palette.Default(), Style: NewStyleAnalyzer(0)})

		for start := 0; start < len(sampleDiff); start += size {
			end := min(start+size, len(sampleDiff))
			_, err := w.Write([]byte(sampleDiff[start:end]))
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())

		assert.Equal(t, sampleDiff, buf.String(), "chunk size %d", size)
	}
}

func TestWriter_ColorModeKeepsText(t *testing.T) {
	var buf bytes.Buffer
	w := colorWriter(&buf)

	_, err := w.Write([]byte(sampleDiff))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.NotEqual(t, sampleDiff, buf.String())
	assert.Equal(t, stripEscapes(sampleDiff), stripEscapes(buf.String()))
}

func TestWriter_FlushesTarget(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	w := NewWriter(bw, Options{})

	require.NoError(t, w.WriteLines(" a\n"))
	assert.Zero(t, buf.Len())

	require.NoError(t, w.Flush())
	assert.Equal(t, " a\n", buf.String())
}

func TestWriter_TargetError(t *testing.T) {
	w := NewWriter(failingWriter{}, Options{Color: true})

	_, err := w.Write([]byte(" a\n"))
	require.ErrorIs(t, err, errSinkClosed)
}

func TestWriter_SpuriousNotice(t *testing.T) {
	var buf bytes.Buffer
	style := NewStyleAnalyzer(0)
	w := NewWriter(&buf, Options{Color: true, Palette: palette.Default(), Style: style})

	require.NoError(t, w.WriteLines("-a\n", "+a \n", " ctx\n"))

	oldOut, newOut := NewHighlighter(palette.Default()).Highlight("-a\n", "+a \n")
	assert.Equal(t, oldOut+newOut+spuriousNotice+" ctx\n", buf.String())
	assert.Equal(t, 1, style.Counters().SpuriousWhitespace)
	assert.Equal(t, 1, style.Counters().TrailingWhitespace)
}

func TestWriter_SpuriousNoticeFollowsHeldLine(t *testing.T) {
	var buf bytes.Buffer
	style := NewStyleAnalyzer(0)
	w := NewWriter(&buf, Options{Color: true, Palette: palette.Default(), Style: style})

	require.NoError(t, w.WriteLines("+x\n", "-x \n", " ctx\n"))

	assert.Equal(t, fg("+x", darkGreen)+"\n"+fg("-x ", darkRed)+"\n"+spuriousNotice+" ctx\n", buf.String())
}

func TestWriter_SpuriousNoticeOnFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Color: true, Palette: palette.Default(), Style: NewStyleAnalyzer(0)})

	require.NoError(t, w.WriteLines("-a\n", "+a\t\n"))
	require.NoError(t, w.Flush())

	assert.True(t, strings.HasSuffix(buf.String(), spuriousNotice))
}

func TestWriter_NoNoticeWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	style := NewStyleAnalyzer(0)
	w := NewWriter(&buf, Options{Style: style})

	require.NoError(t, w.WriteLines("-a\n", "+a \n", " ctx\n"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "-a\n+a \n ctx\n", buf.String())
	assert.Equal(t, 1, style.Counters().SpuriousWhitespace)
}

func TestWriter_MatchInvariantError(t *testing.T) {
	var buf bytes.Buffer
	style := NewStyleAnalyzer(0)
	calls := 0
	style.matchLines = func(old, new []string) int {
		calls++
		if calls == 1 {
			return 2
		}
		return 1
	}
	w := NewWriter(&buf, Options{Color: true, Style: style})

	err := w.WriteLines("-x\n", "+y\n", " ctx\n")

	require.ErrorIs(t, err, ErrMatchInvariant)
	assert.Zero(t, style.Counters().SpuriousWhitespace)
}

var errSinkClosed = errors.New("sink closed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errSinkClosed
}

// stripEscapes removes SGR sequences.
func stripEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
