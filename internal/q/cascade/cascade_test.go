package cascade

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paletteConfig struct {
	System string
	User   string
}

type testConfig struct {
	Color                   string `json:"color"`
	ColorProvidence         Providence
	CheckStyle              bool `json:"check_style"`
	CheckStyleProvidence    *Providence
	MaxLineLength           int `json:"max_line_length"`
	MaxLineLengthProvidence Providence
	Ratio                   float64
	Palette                 paletteConfig
	PaletteProvidence       Providence
	Ignored                 string `cascade:"-"`
}

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

var testDefaults = map[string]any{
	"color":           "auto",
	"check_style":     false,
	"max_line_length": 79,
	"ratio":           0.5,
	"palette.system":  "/etc/colordiffrc",
	"palette.user":    "~/.colordiffrc",
}

func TestStrictlyLoad_Layers(t *testing.T) {
	jsonPath := writeFile(t, "config.json", `{"color": "never", "max_line_length": 100, "palette": {"user": "/json/rc"}}`)
	yamlPath := writeFile(t, "config.yaml", "color: always\nratio: 0.75\n")
	tomlPath := writeFile(t, "config.toml", "max_line_length = 120\n\n[palette]\nsystem = \"/toml/rc\"\n")
	t.Setenv("TEST_CHECK_STYLE", "true")
	t.Setenv("TEST_COLOR", "")

	var cfg testConfig
	err := New().
		WithDefaults(testDefaults).
		WithJSONFile(jsonPath).
		WithYAMLFile(yamlPath).
		WithTOMLFile(tomlPath).
		WithEnv(map[string]string{"check_style": "TEST_CHECK_STYLE", "color": "TEST_COLOR"}).
		WithOverrides(map[string]any{"palette.user": "/flag/rc"}).
		StrictlyLoad(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, Providence{SourceType: SourceYAMLFile, SourceIdentifier: yamlPath}, cfg.ColorProvidence)

	assert.True(t, cfg.CheckStyle)
	require.NotNil(t, cfg.CheckStyleProvidence)
	assert.Equal(t, SourceEnv, cfg.CheckStyleProvidence.SourceType)

	assert.Equal(t, 120, cfg.MaxLineLength)
	assert.Equal(t, SourceTOMLFile, cfg.MaxLineLengthProvidence.SourceType)

	assert.InDelta(t, 0.75, cfg.Ratio, 1e-9)
	assert.Equal(t, "/toml/rc", cfg.Palette.System)
	assert.Equal(t, "/flag/rc", cfg.Palette.User)
	assert.Equal(t, SourceOverride, cfg.PaletteProvidence.SourceType)
}

func TestStrictlyLoad_DefaultsOnly(t *testing.T) {
	var cfg testConfig
	require.NoError(t, New().WithDefaults(testDefaults).StrictlyLoad(&cfg))

	assert.Equal(t, "auto", cfg.Color)
	assert.True(t, cfg.ColorProvidence.Default())
	assert.Equal(t, 79, cfg.MaxLineLength)
	assert.Equal(t, "~/.colordiffrc", cfg.Palette.User)
	assert.Equal(t, "default", cfg.ColorProvidence.String())
}

func TestStrictlyLoad_Unset(t *testing.T) {
	var cfg testConfig
	require.NoError(t, New().StrictlyLoad(&cfg))

	assert.False(t, cfg.ColorProvidence.IsSet())
	assert.Nil(t, cfg.CheckStyleProvidence)
}

func TestStrictlyLoad_SkippedFiles(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, "empty.toml", "  \n\t")

	var cfg testConfig
	err := New().
		WithDefaults(testDefaults).
		WithJSONFile(filepath.Join(dir, "missing.json")).
		WithYAMLFile(filepath.Join(dir, "missing.yaml")).
		WithTOMLFile(empty).
		WithJSONFile("").
		StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Color)
}

func TestStrictlyLoad_UnknownKeysAndNulls(t *testing.T) {
	path := writeFile(t, "config.json", `{"color": null, "unknown": 1, "ignored": "x", "palette": {"other": true}}`)

	var cfg testConfig
	require.NoError(t, New().WithDefaults(testDefaults).WithJSONFile(path).StrictlyLoad(&cfg))

	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "", cfg.Ignored)
}

func TestStrictlyLoad_Coercion(t *testing.T) {
	t.Setenv("TEST_MAX", " 42 ")
	path := writeFile(t, "config.yaml", "color: 7\nratio: 2\n")

	var cfg testConfig
	err := New().
		WithYAMLFile(path).
		WithEnv(map[string]string{"max_line_length": "TEST_MAX"}).
		WithOverrides(map[string]any{"check_style": "yes", "ratio": "1.25"}).
		StrictlyLoad(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Overrides")
	assert.Contains(t, err.Error(), "check_style")

	cfg = testConfig{}
	err = New().
		WithYAMLFile(path).
		WithEnv(map[string]string{"max_line_length": "TEST_MAX"}).
		WithOverrides(map[string]any{"check_style": "1"}).
		StrictlyLoad(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "7", cfg.Color)
	assert.InDelta(t, 2.0, cfg.Ratio, 1e-9)
	assert.Equal(t, 42, cfg.MaxLineLength)
	assert.True(t, cfg.CheckStyle)
}

func TestStrictlyLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		loader  func() *Loader
		wantErr string
	}{
		{
			name:    "bad json",
			loader:  func() *Loader { return New().WithJSONFile(writeFile(t, "bad.json", `{"color":`)) },
			wantErr: "parse json",
		},
		{
			name:    "json array",
			loader:  func() *Loader { return New().WithJSONFile(writeFile(t, "arr.json", `[1, 2]`)) },
			wantErr: "top-level JSON must be an object",
		},
		{
			name:    "bad yaml",
			loader:  func() *Loader { return New().WithYAMLFile(writeFile(t, "bad.yaml", "color: [unterminated\n")) },
			wantErr: "parse yaml",
		},
		{
			name:    "bad toml",
			loader:  func() *Loader { return New().WithTOMLFile(writeFile(t, "bad.toml", "color = \n")) },
			wantErr: "parse toml",
		},
		{
			name:    "object for scalar",
			loader:  func() *Loader { return New().WithJSONFile(writeFile(t, "obj.json", `{"max_line_length": {"x": 1}}`)) },
			wantErr: "max_line_length",
		},
		{
			name:    "scalar for object",
			loader:  func() *Loader { return New().WithDefaults(map[string]any{"palette": "x"}) },
			wantErr: "expected object",
		},
		{
			name:    "arrays unsupported",
			loader:  func() *Loader { return New().WithJSONFile(writeFile(t, "list.json", `{"color": ["a"]}`)) },
			wantErr: "not supported",
		},
		{
			name:    "key conflict",
			loader:  func() *Loader { return New().WithDefaults(map[string]any{"palette": "x", "palette.user": "y"}) },
			wantErr: "key conflict",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg testConfig
			err := tc.loader().StrictlyLoad(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStrictlyLoad_BadDest(t *testing.T) {
	var cfg testConfig
	assert.Error(t, New().StrictlyLoad(nil))
	assert.Error(t, New().StrictlyLoad(cfg))
	var n int
	assert.Error(t, New().StrictlyLoad(&n))
}

func TestStrictlyLoad_HomeRelativeFile(t *testing.T) {
	home := setHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".colordiff"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".colordiff", "config.toml"), []byte("color = \"never\"\n"), 0o644))

	var cfg testConfig
	require.NoError(t, New().WithTOMLFile("~/.colordiff/config.toml").StrictlyLoad(&cfg))

	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, filepath.Join(home, ".colordiff", "config.toml"), cfg.ColorProvidence.SourceIdentifier)
}
