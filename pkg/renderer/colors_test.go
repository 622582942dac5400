package renderer

import (
	"image/color"
	"testing"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
)

func TestColorMapMerge(t *testing.T) {
	base := DefaultColorMap()
	merged := base.Merge(ColorMap{
		Copper: LayerColors{Top: "#ffffff"},
		Drill:  "#000000",
	})

	if merged.Copper.Top != "#ffffff" {
		t.Errorf("copper top = %q, want override", merged.Copper.Top)
	}
	if merged.Copper.Bottom != base.Copper.Bottom {
		t.Errorf("copper bottom = %q, want unchanged %q", merged.Copper.Bottom, base.Copper.Bottom)
	}
	if merged.Drill != "#000000" {
		t.Errorf("drill = %q, want override", merged.Drill)
	}
	if merged.Silkscreen != base.Silkscreen {
		t.Errorf("silkscreen = %+v, want unchanged", merged.Silkscreen)
	}
	if base.Copper.Top == "#ffffff" {
		t.Error("Merge modified the receiver")
	}
}

func TestThemeColorsParse(t *testing.T) {
	for theme, name := range ThemeNames {
		t.Run(name, func(t *testing.T) {
			m := ThemeColorMap(theme)
			for _, c := range []string{
				m.Copper.Top, m.Copper.Bottom,
				m.Silkscreen.Top, m.Silkscreen.Bottom,
				m.Soldermask.Top, m.Soldermask.Bottom,
				m.SoldermaskWithCopperUnderneath.Top, m.SoldermaskWithCopperUnderneath.Bottom,
				m.SoldermaskOverCopper.Top, m.SoldermaskOverCopper.Bottom,
				m.Drill, m.BoardOutline, m.Background,
			} {
				if _, err := canvas.ParseColor(c); err != nil {
					t.Errorf("color %q does not parse: %v", c, err)
				}
			}
		})
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		input   string
		want    Theme
		wantErr bool
	}{
		{"classic", ThemeClassic, false},
		{"KiCad 2020", ThemeKiCad2020, false},
		{"kicad2020", ThemeKiCad2020, false},
		{"bluetone", ThemeBlueTone, false},
		{"Nord", ThemeNord, false},
		{"solarized", ThemeClassic, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTheme(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTheme(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := ColorString(color.NRGBA{R: 200, G: 52, B: 52, A: 255}); got != "#c83434" {
		t.Errorf("opaque = %q", got)
	}
	if got := ColorString(color.NRGBA{R: 1, G: 2, B: 3, A: 4}); got != "#01020304" {
		t.Errorf("translucent = %q", got)
	}
}
