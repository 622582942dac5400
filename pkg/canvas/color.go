package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// colorLexer tokenizes CSS color strings
var colorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hex", Pattern: `#[0-9a-fA-F]+`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)%?`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Punct", Pattern: `[(),/]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// colorExpr is one of: #hex, rgb(...)/rgba(...), or a named color
type colorExpr struct {
	Hex  *string    `  @Hex`
	Func *colorFunc `| @@`
	Name *string    `| @Ident`
}

// colorFunc is rgb(r, g, b) or rgba(r, g, b, a); the space separated form
// rgb(r g b / a) is accepted too
type colorFunc struct {
	Name string   `@("rgb" | "rgba")`
	Args []string `"(" @Number ( ( "," | "/" )? @Number )* ")"`
}

var colorParser = participle.MustBuild[colorExpr](
	participle.Lexer(colorLexer),
	participle.Elide("Whitespace"),
)

var namedColors = map[string]color.NRGBA{
	"transparent": {},
	"black":       {A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, A: 255},
	"lime":        {G: 255, A: 255},
	"green":       {G: 128, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"cyan":        {G: 255, B: 255, A: 255},
	"aqua":        {G: 255, B: 255, A: 255},
	"magenta":     {R: 255, B: 255, A: 255},
	"fuchsia":     {R: 255, B: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"silver":      {R: 192, G: 192, B: 192, A: 255},
	"maroon":      {R: 128, A: 255},
	"olive":       {R: 128, G: 128, A: 255},
	"navy":        {B: 128, A: 255},
	"teal":        {G: 128, B: 128, A: 255},
	"purple":      {R: 128, B: 128, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
	"pink":        {R: 255, G: 192, B: 203, A: 255},
	"brown":       {R: 165, G: 42, B: 42, A: 255},
	"gold":        {R: 255, G: 215, A: 255},
}

// ParseColor parses a CSS color string: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(), rgba() or one of a set of named colors
func ParseColor(s string) (color.NRGBA, error) {
	expr, err := colorParser.ParseString("", strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	switch {
	case expr.Hex != nil:
		return parseHex(*expr.Hex)
	case expr.Func != nil:
		return parseFunc(expr.Func)
	case expr.Name != nil:
		c, ok := namedColors[*expr.Name]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color name %q", *expr.Name)
		}
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
}

// MustParseColor is ParseColor for compile-time constants; it panics on error
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(h, "#")

	// Expand the short forms #rgb and #rgba
	if len(digits) == 3 || len(digits) == 4 {
		var b strings.Builder
		for _, r := range digits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String()
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", h)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", h, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func parseFunc(f *colorFunc) (color.NRGBA, error) {
	if len(f.Args) != 3 && len(f.Args) != 4 {
		return color.NRGBA{}, fmt.Errorf("%s() takes 3 or 4 arguments, got %d", f.Name, len(f.Args))
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseComponent(f.Args[i], 255)
		if err != nil {
			return color.NRGBA{}, err
		}
		rgb[i] = uint8(v + 0.5)
	}

	alpha := 1.0
	if len(f.Args) == 4 {
		a, err := parseComponent(f.Args[3], 1)
		if err != nil {
			return color.NRGBA{}, err
		}
		alpha = a
	}

	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(alpha*255 + 0.5)}, nil
}

// parseComponent parses a number or percentage and clamps it to [0, max]
func parseComponent(s string, max float64) (float64, error) {
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = max / 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid color component %q: %w", s, err)
	}
	v *= scale
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return v, nil
}
