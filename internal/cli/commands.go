package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/codalotl/colordiff/internal/colordiff"
	"github.com/codalotl/colordiff/internal/palette"
	qcli "github.com/codalotl/colordiff/internal/q/cli"
	"github.com/codalotl/colordiff/internal/q/termcolor"
	"github.com/codalotl/colordiff/internal/simplelogger"
)

// configFlags are the flags that override configuration keys. They are persistent so that `colordiff config` shows their effect.
type configFlags struct {
	color         *string
	checkStyle    *bool
	maxLineLength *int
	systemPalette *string
	userPalette   *string
}

func addConfigFlags(fs *qcli.FlagSet) *configFlags {
	modes := make([]string, len(termcolor.Modes))
	for i, m := range termcolor.Modes {
		modes[i] = string(m)
	}
	return &configFlags{
		color:         fs.Enum("color", 'c', string(termcolor.ModeAuto), modes, "When to color output. auto colors only terminals."),
		checkStyle:    fs.Bool("check-style", 0, false, "Report trailing whitespace, leading tabs, long lines and whitespace-only changes in added lines."),
		maxLineLength: fs.Int("max-line-length", 0, colordiff.DefaultMaxLineLength, "Column limit for added lines with --check-style."),
		systemPalette: fs.String("system-palette", 0, palette.SystemPath, "System-wide color override file."),
		userPalette:   fs.String("user-palette", 0, palette.UserPath, "Per-user color override file; wins over the system file."),
	}
}

// overrides returns the configuration keys for the flags set on the command line.
func (f *configFlags) overrides(c *qcli.Context) map[string]any {
	m := map[string]any{}
	if c.FlagChanged("color") {
		m[keyColor] = *f.color
	}
	if c.FlagChanged("check-style") {
		m[keyCheckStyle] = *f.checkStyle
	}
	if c.FlagChanged("max-line-length") {
		m[keyMaxLineLength] = *f.maxLineLength
	}
	if c.FlagChanged("system-palette") {
		m[keySystemPalette] = *f.systemPalette
	}
	if c.FlagChanged("user-palette") {
		m[keyUserPalette] = *f.userPalette
	}
	return m
}

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:      "colordiff",
		Short:     "Color unified diffs for the terminal.",
		Long:      "Reads unified diffs from the named files (\"-\" is stdin) or stdin, and writes them with added, removed and header lines colored.\nWhen a removed line is directly followed by an added line, the parts they share are highlighted.",
		ArgsUsage: "[file ...]",
		Example:   "git diff | colordiff\ncolordiff --check-style --color=always changes.patch | less -R",
	}
	flags := addConfigFlags(root.PersistentFlags())
	version := root.Flags().Bool("version", 0, false, "Print the version and exit.")

	root.Run = func(c *qcli.Context) error {
		if *version {
			return writeStringln(c.Out, Version)
		}
		cfg, err := loadConfig(flags.overrides(c))
		if err != nil {
			return err
		}
		return annotate(c, cfg)
	}

	configCmd := &qcli.Command{
		Name:  "config",
		Short: "Print the effective configuration and palette.",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			cfg, err := loadConfig(flags.overrides(c))
			if err != nil {
				return err
			}
			if err := writeConfigJSON(c.Out, cfg); err != nil {
				return err
			}
			if err := writeStringln(c.Out, ""); err != nil {
				return err
			}
			return writePalette(c.Out, palette.Load(cfg.Palette.System, cfg.Palette.User))
		},
	}

	root.AddCommand(configCmd)
	return root
}

// annotate colors the inputs named by c.Args (stdin if none) to c.Out, then writes the style report, if enabled, to c.Err.
func annotate(c *qcli.Context, cfg Config) error {
	log := simplelogger.Logger()
	log.Debug().
		Str("color", cfg.Color).Stringer("color_source", cfg.ColorProvidence).
		Bool("check_style", cfg.CheckStyle).Stringer("check_style_source", cfg.CheckStyleProvidence).
		Str("system_palette", cfg.Palette.System).Str("user_palette", cfg.Palette.User).
		Msg("config loaded")

	// Ask about the real destination; the bufio.Writer below hides it.
	colorOn := cfg.colorMode().Enabled(c.Out)

	var pal *palette.Palette
	loadPalette := func() *palette.Palette {
		if pal == nil {
			pal = palette.Load(cfg.Palette.System, cfg.Palette.User)
		}
		return pal
	}

	opts := colordiff.Options{Color: colorOn, Palette: palette.Disabled()}
	if colorOn {
		opts.Palette = loadPalette()
	}
	if cfg.CheckStyle {
		opts.Style = colordiff.NewStyleAnalyzer(cfg.MaxLineLength)
	}

	out := bufio.NewWriter(c.Out)
	w := colordiff.NewWriter(out, opts)

	inputs := c.Args
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, name := range inputs {
		if err := copyInput(w, c.In, name); err != nil {
			// Whatever was colored so far is still useful.
			_ = out.Flush()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Int("inputs", len(inputs)).Bool("color", colorOn).Msg("session done")

	if opts.Style == nil {
		return nil
	}
	findings := opts.Style.Report()
	log.Info().Interface("counters", opts.Style.Counters()).Msg("style checked")

	colorErr := cfg.colorMode().Enabled(c.Err)
	for _, finding := range findings {
		msg := finding.Message
		if colorErr {
			msg = termcolor.Render(msg, loadPalette().Resolve(finding.Category), termcolor.None)
		}
		if err := writeStringln(c.Err, msg); err != nil {
			return err
		}
	}
	return nil
}

// copyInput writes the contents of the file name ("-" is in) to w.
func copyInput(w io.Writer, in io.Reader, name string) error {
	if name == "-" {
		if _, err := io.Copy(w, in); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return nil
	}

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func writeStringln(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}
