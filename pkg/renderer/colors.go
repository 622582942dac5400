package renderer

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// LayerColors is a top/bottom pair of CSS colors
type LayerColors struct {
	Top    string `toml:"top"`
	Bottom string `toml:"bottom"`
}

// ColorMap holds every color the renderer draws with, as CSS color strings.
// In an override an empty string means "keep the current value".
type ColorMap struct {
	Copper                         LayerColors `toml:"copper"`
	Silkscreen                     LayerColors `toml:"silkscreen"`
	Soldermask                     LayerColors `toml:"soldermask"`
	SoldermaskWithCopperUnderneath LayerColors `toml:"soldermask_with_copper_underneath"`
	SoldermaskOverCopper           LayerColors `toml:"soldermask_over_copper"`
	Drill                          string      `toml:"drill"`
	BoardOutline                   string      `toml:"board_outline"`
	Background                     string      `toml:"background"`
}

// Merge returns m patched with the non-empty values of o. Nested groups
// merge field by field.
func (m ColorMap) Merge(o ColorMap) ColorMap {
	m.Copper = m.Copper.merge(o.Copper)
	m.Silkscreen = m.Silkscreen.merge(o.Silkscreen)
	m.Soldermask = m.Soldermask.merge(o.Soldermask)
	m.SoldermaskWithCopperUnderneath = m.SoldermaskWithCopperUnderneath.merge(o.SoldermaskWithCopperUnderneath)
	m.SoldermaskOverCopper = m.SoldermaskOverCopper.merge(o.SoldermaskOverCopper)
	m.Drill = pick(m.Drill, o.Drill)
	m.BoardOutline = pick(m.BoardOutline, o.BoardOutline)
	m.Background = pick(m.Background, o.Background)
	return m
}

func (c LayerColors) merge(o LayerColors) LayerColors {
	return LayerColors{Top: pick(c.Top, o.Top), Bottom: pick(c.Bottom, o.Bottom)}
}

func pick(current, override string) string {
	if override != "" {
		return override
	}
	return current
}

// Theme selects a built-in color map
type Theme int

const (
	ThemeClassic Theme = iota
	ThemeKiCad2020
	ThemeBlueTone
	ThemeEagle
	ThemeNord
)

// ThemeNames maps themes to their display names
var ThemeNames = map[Theme]string{
	ThemeClassic:   "Classic",
	ThemeKiCad2020: "KiCad 2020",
	ThemeBlueTone:  "Blue Tone",
	ThemeEagle:     "Eagle",
	ThemeNord:      "Nord",
}

// ParseTheme looks a theme up by display name, ignoring case and spaces
func ParseTheme(name string) (Theme, error) {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "")
	for t, n := range ThemeNames {
		if strings.ReplaceAll(strings.ToLower(n), " ", "") == key {
			return t, nil
		}
	}
	names := make([]string, 0, len(ThemeNames))
	for _, n := range ThemeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return ThemeClassic, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
}

func (t Theme) String() string {
	if n, ok := ThemeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// KiCad classic palette
var classicColors = ColorMap{
	Copper:                         LayerColors{Top: hex(200, 52, 52, 255), Bottom: hex(77, 127, 196, 255)},
	Silkscreen:                     LayerColors{Top: hex(242, 237, 161, 255), Bottom: hex(232, 178, 167, 255)},
	Soldermask:                     LayerColors{Top: hex(216, 100, 255, 102), Bottom: hex(2, 255, 238, 102)},
	SoldermaskWithCopperUnderneath: LayerColors{Top: hex(227, 120, 46, 255), Bottom: hex(120, 120, 255, 255)},
	SoldermaskOverCopper:           LayerColors{Top: hex(168, 71, 71, 255), Bottom: hex(91, 119, 161, 255)},
	Drill:                          hex(255, 38, 226, 255),
	BoardOutline:                   hex(208, 210, 205, 255),
	Background:                     hex(0, 16, 35, 255),
}

// KiCad 2020, higher contrast
var kicad2020Colors = ColorMap{
	Copper:                         LayerColors{Top: hex(179, 31, 31, 255), Bottom: hex(12, 98, 179, 255)},
	Silkscreen:                     LayerColors{Top: hex(242, 237, 161, 255), Bottom: hex(232, 178, 167, 255)},
	Soldermask:                     LayerColors{Top: hex(132, 0, 132, 102), Bottom: hex(2, 132, 132, 102)},
	SoldermaskWithCopperUnderneath: LayerColors{Top: hex(201, 80, 80, 255), Bottom: hex(70, 130, 200, 255)},
	SoldermaskOverCopper:           LayerColors{Top: hex(150, 40, 40, 255), Bottom: hex(30, 80, 150, 255)},
	Drill:                          hex(227, 183, 46, 255),
	BoardOutline:                   hex(255, 255, 0, 255),
	Background:                     hex(0, 16, 35, 255),
}

var blueToneColors = ColorMap{
	Copper:                         LayerColors{Top: hex(72, 72, 200, 255), Bottom: hex(0, 132, 132, 255)},
	Silkscreen:                     LayerColors{Top: hex(242, 242, 255, 255), Bottom: hex(178, 178, 232, 255)},
	Soldermask:                     LayerColors{Top: hex(52, 52, 255, 102), Bottom: hex(2, 132, 255, 102)},
	SoldermaskWithCopperUnderneath: LayerColors{Top: hex(100, 100, 220, 255), Bottom: hex(40, 160, 160, 255)},
	SoldermaskOverCopper:           LayerColors{Top: hex(60, 60, 170, 255), Bottom: hex(0, 110, 110, 255)},
	Drill:                          hex(91, 195, 235, 255),
	BoardOutline:                   hex(208, 210, 255, 255),
	Background:                     hex(20, 60, 90, 255),
}

// Eagle CAD look
var eagleColors = ColorMap{
	Copper:                         LayerColors{Top: hex(204, 0, 0, 255), Bottom: hex(0, 0, 204, 255)},
	Silkscreen:                     LayerColors{Top: hex(255, 255, 255, 255), Bottom: hex(200, 200, 200, 255)},
	Soldermask:                     LayerColors{Top: hex(200, 61, 217, 102), Bottom: hex(61, 217, 217, 102)},
	SoldermaskWithCopperUnderneath: LayerColors{Top: hex(230, 60, 60, 255), Bottom: hex(60, 60, 230, 255)},
	SoldermaskOverCopper:           LayerColors{Top: hex(170, 0, 0, 255), Bottom: hex(0, 0, 170, 255)},
	Drill:                          hex(194, 194, 0, 255),
	BoardOutline:                   hex(255, 255, 0, 255),
	Background:                     hex(0, 0, 0, 255),
}

// Nord palette
var nordColors = ColorMap{
	Copper:                         LayerColors{Top: hex(191, 97, 106, 255), Bottom: hex(129, 161, 193, 255)},
	Silkscreen:                     LayerColors{Top: hex(236, 239, 244, 255), Bottom: hex(216, 222, 233, 255)},
	Soldermask:                     LayerColors{Top: hex(180, 142, 173, 102), Bottom: hex(136, 192, 208, 102)},
	SoldermaskWithCopperUnderneath: LayerColors{Top: hex(208, 135, 112, 255), Bottom: hex(94, 129, 172, 255)},
	SoldermaskOverCopper:           LayerColors{Top: hex(163, 85, 92, 255), Bottom: hex(110, 140, 170, 255)},
	Drill:                          hex(235, 203, 139, 255),
	BoardOutline:                   hex(229, 233, 240, 255),
	Background:                     hex(46, 52, 64, 255),
}

// ThemeColorMap returns the color map of a built-in theme. Unknown themes
// get the classic palette.
func ThemeColorMap(t Theme) ColorMap {
	switch t {
	case ThemeKiCad2020:
		return kicad2020Colors
	case ThemeBlueTone:
		return blueToneColors
	case ThemeEagle:
		return eagleColors
	case ThemeNord:
		return nordColors
	default:
		return classicColors
	}
}

// DefaultColorMap is the color map a new Drawer starts with
func DefaultColorMap() ColorMap {
	return ThemeColorMap(ThemeClassic)
}

func hex(r, g, b, a uint8) string {
	return ColorString(color.NRGBA{R: r, G: g, B: b, A: a})
}

// ColorString formats c as #rrggbb, or #rrggbbaa when not opaque
func ColorString(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
