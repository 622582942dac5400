// Package config loads pcbcanvas.toml, the file that carries render
// options and color overrides for the CLI and the viewer.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = "pcbcanvas.toml"

// ErrInvalid is returned for config files with unknown keys or bad values
var ErrInvalid = errors.New("invalid config")

// Config is the render configuration. Keys missing from a file keep their
// default values.
type Config struct {
	Width           int               `toml:"width"`
	Height          int               `toml:"height"`
	Margin          float64           `toml:"margin"`
	Layers          []string          `toml:"layers"`
	Theme           string            `toml:"theme"`
	StylePrecedence string            `toml:"style_precedence"`
	RatsNest        bool              `toml:"ratsnest"`
	Colors          renderer.ColorMap `toml:"colors"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Width:           1024,
		Height:          768,
		Margin:          0.05,
		Theme:           renderer.ThemeClassic.String(),
		StylePrecedence: renderer.PolicyWins.String(),
		RatsNest:        true,
	}
}

// Load reads path on top of the defaults. An empty path loads DefaultFile
// if it exists and the defaults otherwise.
func Load(path string) (Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		path = DefaultFile
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of the defaults and validates the result
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges, names and colors
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Margin < 0 || c.Margin >= 0.5 {
		return fmt.Errorf("%w: margin %v outside [0, 0.5)", ErrInvalid, c.Margin)
	}
	if _, err := renderer.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := renderer.ParseStylePrecedence(c.StylePrecedence); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, layer := range c.Layers {
		if layer == "" {
			return fmt.Errorf("%w: empty layer name", ErrInvalid)
		}
	}
	for _, e := range colorEntries(c.Colors) {
		if e.value == "" {
			continue
		}
		if _, err := canvas.ParseColor(e.value); err != nil {
			return fmt.Errorf("%w: colors.%s: %v", ErrInvalid, e.key, err)
		}
	}
	return nil
}

type colorEntry struct {
	key, value string
}

// colorEntries lists the color keys in table order
func colorEntries(m renderer.ColorMap) []colorEntry {
	return []colorEntry{
		{"copper.top", m.Copper.Top},
		{"copper.bottom", m.Copper.Bottom},
		{"silkscreen.top", m.Silkscreen.Top},
		{"silkscreen.bottom", m.Silkscreen.Bottom},
		{"soldermask.top", m.Soldermask.Top},
		{"soldermask.bottom", m.Soldermask.Bottom},
		{"soldermask_with_copper_underneath.top", m.SoldermaskWithCopperUnderneath.Top},
		{"soldermask_with_copper_underneath.bottom", m.SoldermaskWithCopperUnderneath.Bottom},
		{"soldermask_over_copper.top", m.SoldermaskOverCopper.Top},
		{"soldermask_over_copper.bottom", m.SoldermaskOverCopper.Bottom},
		{"drill", m.Drill},
		{"board_outline", m.BoardOutline},
		{"background", m.Background},
	}
}

// DrawerOptions returns the construction options for a renderer.Drawer
func (c Config) DrawerOptions() []renderer.Option {
	theme, err := renderer.ParseTheme(c.Theme)
	if err != nil {
		theme = renderer.ThemeClassic
	}
	return []renderer.Option{renderer.WithTheme(theme)}
}

// RendererConfig returns the color overrides and style precedence as a
// renderer.Config
func (c Config) RendererConfig() renderer.Config {
	precedence, err := renderer.ParseStylePrecedence(c.StylePrecedence)
	if err != nil {
		precedence = renderer.PolicyWins
	}
	colors := c.Colors
	return renderer.Config{
		ColorOverrides:  &colors,
		StylePrecedence: &precedence,
	}
}
