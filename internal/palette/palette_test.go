package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/colordiff/internal/q/termcolor"
)

func writeRC(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "darkgreen", p.Resolve(Newtext).Name())
	assert.Equal(t, "darkred", p.Resolve(Oldtext).Name())
	assert.Equal(t, "darkyellow", p.Resolve(Newsame).Name())
	assert.Equal(t, "darkyellow", p.Resolve(Oldsame).Name())
	assert.Equal(t, "darkcyan", p.Resolve(Diffstuff).Name())
	assert.Equal(t, "white", p.Resolve(Metaline).Name())
	assert.Equal(t, "red", p.Resolve(TrailingSpace).Name())
	assert.Equal(t, "magenta", p.Resolve(LeadingTabs).Name())
	assert.Equal(t, "white", p.Resolve(LongLine).Name())
	assert.False(t, p.Resolve(Plain).IsSet())
	assert.False(t, p.Resolve(Category("nonsense")).IsSet())
}

func TestDisabled(t *testing.T) {
	p := Disabled()
	for _, c := range p.Categories() {
		assert.False(t, p.Resolve(c).IsSet(), c)
	}
	assert.Len(t, p.Categories(), len(defaultColors))
}

func TestNilPalette(t *testing.T) {
	var p *Palette
	assert.Equal(t, termcolor.None, p.Resolve(Newtext))
	assert.Nil(t, p.Categories())
}

func TestBuilder_Set(t *testing.T) {
	b := NewBuilder()

	assert.True(t, b.Set("newtext", "blue"))
	assert.True(t, b.Set("oldtext", "darkmagenta"))
	assert.True(t, b.Set("metaline", "off"))
	assert.False(t, b.Set("diffstuff", "purple"))
	assert.False(t, b.Set("newsame", "darkpurple"))

	p := b.Build()
	assert.Equal(t, "blue", p.Resolve(Newtext).Name())
	assert.Equal(t, "darkmagenta", p.Resolve(Oldtext).Name(), "dark prefix is stored as given")
	assert.False(t, p.Resolve(Metaline).IsSet())
	assert.Equal(t, "darkcyan", p.Resolve(Diffstuff).Name(), "unknown color keeps prior value")
	assert.Equal(t, "darkyellow", p.Resolve(Newsame).Name())
}

func TestBuilder_ClearWords(t *testing.T) {
	for _, word := range []string{"none", "normal", "off"} {
		b := NewBuilder()
		require.True(t, b.Set("newtext", word))
		assert.False(t, b.Build().Resolve(Newtext).IsSet(), word)
	}
}

func TestBuilder_Read(t *testing.T) {
	b := NewBuilder()
	rc := strings.Join([]string{
		"newtext = blue",
		"  oldtext=cyan  ",
		"this line has no separator",
		"a = b = c",
		"diffstuff = notacolor",
		"",
		"plain = darkwhite",
		"metaline = none", // no trailing newline
	}, "\n")
	require.NoError(t, b.Read(strings.NewReader(rc)))

	p := b.Build()
	assert.Equal(t, "blue", p.Resolve(Newtext).Name())
	assert.Equal(t, "cyan", p.Resolve(Oldtext).Name())
	assert.Equal(t, "darkcyan", p.Resolve(Diffstuff).Name())
	assert.Equal(t, "darkwhite", p.Resolve(Plain).Name())
	assert.False(t, p.Resolve(Metaline).IsSet())
}

func TestBuild_IsFrozen(t *testing.T) {
	b := NewBuilder()
	p := b.Build()
	b.Set("newtext", "blue")
	assert.Equal(t, "darkgreen", p.Resolve(Newtext).Name())
	assert.Equal(t, "blue", b.Build().Resolve(Newtext).Name())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	system := writeRC(t, dir, "system", "newtext = blue\noldtext = cyan\nnewsame = white\n")
	user := writeRC(t, dir, "user", "newtext = magenta\nnewsame = bogus\n")

	p := Load(system, user)
	assert.Equal(t, "magenta", p.Resolve(Newtext).Name(), "user wins over system")
	assert.Equal(t, "cyan", p.Resolve(Oldtext).Name(), "system applies when user is silent")
	assert.Equal(t, "white", p.Resolve(Newsame).Name(), "unknown user color keeps system value")
	assert.Equal(t, "darkcyan", p.Resolve(Diffstuff).Name())
}

func TestLoad_MissingFilesSkipped(t *testing.T) {
	dir := t.TempDir()
	user := writeRC(t, dir, "user", "oldtext = blue\n")

	p := Load(filepath.Join(dir, "does-not-exist"), user, dir)
	assert.Equal(t, "blue", p.Resolve(Oldtext).Name())
	assert.Equal(t, "darkgreen", p.Resolve(Newtext).Name())
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	writeRC(t, home, ".colordiffrc", "diffstuff = yellow\n")

	p := Load(UserPath)
	assert.Equal(t, "yellow", p.Resolve(Diffstuff).Name())
}
