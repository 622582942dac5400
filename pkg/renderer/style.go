package renderer

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
)

// Style defaults for copper faces
const (
	DefaultOpacity     = 0.5
	DefaultStrokeWidth = 0.1
)

// Style is the resolved paint for a face sequence
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
}

// StylePrecedence decides between an element's declared style and the
// layer color policy
type StylePrecedence int

const (
	// PolicyWins ignores the declared style; colors come from the layer
	// and width and opacity are the defaults
	PolicyWins StylePrecedence = iota
	// DeclaredWins uses every declared value and falls back to the policy
	// for the rest
	DeclaredWins
)

func (p StylePrecedence) String() string {
	switch p {
	case PolicyWins:
		return "policy"
	case DeclaredWins:
		return "declared"
	default:
		return fmt.Sprintf("StylePrecedence(%d)", int(p))
	}
}

// ParseStylePrecedence accepts "policy" or "declared"
func ParseStylePrecedence(s string) (StylePrecedence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "policy":
		return PolicyWins, nil
	case "declared":
		return DeclaredWins, nil
	default:
		return PolicyWins, fmt.Errorf("unknown style precedence %q (want policy or declared)", s)
	}
}

// LayerColor is the fill policy for copper and brep faces:
// top* and bottom* layers take the copper colors, drill and the two
// silkscreen layers their own, and anything else copper top.
func LayerColor(layer string, colors ColorMap) string {
	switch {
	case strings.HasPrefix(layer, LayerTop):
		return colors.Copper.Top
	case strings.HasPrefix(layer, LayerBottom):
		return colors.Copper.Bottom
	case layer == LayerDrill:
		return colors.Drill
	case layer == LayerSilkscreenTop:
		return colors.Silkscreen.Top
	case layer == LayerSilkscreenBottom:
		return colors.Silkscreen.Bottom
	default:
		return colors.Copper.Top
	}
}

// ResolveStyle combines a declared style with the layer policy
func ResolveStyle(declared circuit.Style, layer string, colors ColorMap, precedence StylePrecedence) Style {
	policy := LayerColor(layer, colors)
	s := Style{
		Fill:        policy,
		Stroke:      policy,
		StrokeWidth: DefaultStrokeWidth,
		Opacity:     DefaultOpacity,
	}
	if precedence != DeclaredWins {
		return s
	}
	if declared.Fill != "" {
		s.Fill = declared.Fill
		s.Stroke = declared.Fill
	}
	if declared.Stroke != "" {
		s.Stroke = declared.Stroke
	}
	if declared.StrokeWidth != nil {
		s.StrokeWidth = *declared.StrokeWidth
	}
	if declared.Opacity != nil {
		s.Opacity = *declared.Opacity
	}
	return s
}
