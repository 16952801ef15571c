package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codalotl/colordiff/internal/colordiff"
	"github.com/codalotl/colordiff/internal/palette"
	"github.com/codalotl/colordiff/internal/q/cascade"
	"github.com/codalotl/colordiff/internal/q/termcolor"
)

// Config is colordiff's configuration loaded from a cascade of sources. The json tags name the keys in config files and in `colordiff config` output.
type Config struct {
	// Color is the color mode: always, never or auto.
	Color           string             `json:"color"`
	ColorProvidence cascade.Providence `json:"-"`

	CheckStyle           bool               `json:"check_style"`
	CheckStyleProvidence cascade.Providence `json:"-"`

	// MaxLineLength is the column limit for added lines when checking style. Defaults to 79.
	MaxLineLength           int                `json:"max_line_length"`
	MaxLineLengthProvidence cascade.Providence `json:"-"`

	Palette           PaletteConfig      `json:"palette"`
	PaletteProvidence cascade.Providence `json:"-"`
}

// PaletteConfig locates the color override files. System is applied first; User wins.
type PaletteConfig struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Configuration keys, shared by defaults, files, env and flag overrides.
const (
	keyColor         = "color"
	keyCheckStyle    = "check_style"
	keyMaxLineLength = "max_line_length"
	keySystemPalette = "palette.system"
	keyUserPalette   = "palette.user"
)

var configDefaults = map[string]any{
	keyColor:         string(termcolor.ModeAuto),
	keyCheckStyle:    false,
	keyMaxLineLength: colordiff.DefaultMaxLineLength,
	keySystemPalette: palette.SystemPath,
	keyUserPalette:   palette.UserPath,
}

var configEnv = map[string]string{
	keyColor:         "COLORDIFF_COLOR",
	keyCheckStyle:    "COLORDIFF_CHECK_STYLE",
	keyMaxLineLength: "COLORDIFF_MAX_LINE_LENGTH",
	keySystemPalette: "COLORDIFF_SYSTEM_PALETTE",
	keyUserPalette:   "COLORDIFF_USER_PALETTE",
}

// loadConfig loads the configuration, lowest priority first, from defaults, ~/.colordiff/config.{json,yaml,toml}, COLORDIFF_* env variables, and overrides (the
// flags set on the command line).
func loadConfig(overrides map[string]any) (Config, error) {
	var cfg Config
	err := cascade.New().
		WithDefaults(configDefaults).
		WithJSONFile(cascade.InUserConfigDirectory(".colordiff/config.json")).
		WithYAMLFile(cascade.InUserConfigDirectory(".colordiff/config.yaml")).
		WithTOMLFile(cascade.InUserConfigDirectory(".colordiff/config.toml")).
		WithEnv(configEnv).
		WithOverrides(overrides).
		StrictlyLoad(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateConfig checks cfg and normalizes the color mode.
func validateConfig(cfg *Config) error {
	mode, err := termcolor.ParseMode(cfg.Color)
	if err != nil {
		return fmt.Errorf("invalid configuration: color (from %s): %w", cfg.ColorProvidence, err)
	}
	cfg.Color = string(mode)

	if cfg.MaxLineLength <= 0 {
		return fmt.Errorf("invalid configuration: max_line_length must be > 0 (got %d, from %s)", cfg.MaxLineLength, cfg.MaxLineLengthProvidence)
	}
	return nil
}

// colorMode returns the validated color mode.
func (cfg Config) colorMode() termcolor.Mode {
	return termcolor.Mode(cfg.Color)
}

func writeConfigJSON(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cfg)
}

// writePalette writes p in override file syntax, so the output can seed a ~/.colordiffrc.
func writePalette(w io.Writer, p *palette.Palette) error {
	for _, cat := range p.Categories() {
		if _, err := fmt.Fprintf(w, "%s = %s\n", cat, p.Resolve(cat)); err != nil {
			return err
		}
	}
	return nil
}
