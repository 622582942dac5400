package renderer

import (
	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// Plated hole shapes
const (
	HoleCircle                  = "circle"
	HoleOval                    = "oval"
	HolePill                    = "pill"
	HoleCircularHoleWithRectPad = "circular_hole_with_rect_pad"
	HolePillHoleWithRectPad     = "pill_hole_with_rect_pad"
)

// DrawPlatedHole draws the copper ring or pad in copper top and the drill
// on top of it. It reports false for shapes it does not know.
func DrawPlatedHole(ctx canvas.Context, h circuit.PlatedHole, colors ColorMap, m geom.Matrix) bool {
	center := h.Position()

	switch h.Shape {
	case HoleCircle:
		DrawCircle(ctx, center, h.OuterDiameter/2, colors.Copper.Top, m)
		DrawCircle(ctx, center, h.HoleDiameter/2, colors.Drill, m)

	case HoleOval, HolePill:
		DrawPill(ctx, Pill{
			Center:   center,
			Width:    h.OuterWidth,
			Height:   h.OuterHeight,
			Fill:     colors.Copper.Top,
			Rotation: h.CCWRotation,
		}, m)
		DrawPill(ctx, Pill{
			Center:   center,
			Width:    h.HoleWidth,
			Height:   h.HoleHeight,
			Fill:     colors.Drill,
			Rotation: h.CCWRotation,
		}, m)

	case HoleCircularHoleWithRectPad:
		DrawRect(ctx, Rect{
			Center:       center,
			Width:        h.RectPadWidth,
			Height:       h.RectPadHeight,
			Fill:         colors.Copper.Top,
			BorderRadius: h.RectBorderRadius,
			Rotation:     h.CCWRotation,
		}, m)
		DrawCircle(ctx, center, h.HoleDiameter/2, colors.Drill, m)

	case HolePillHoleWithRectPad:
		DrawRect(ctx, Rect{
			Center:       center,
			Width:        h.RectPadWidth,
			Height:       h.RectPadHeight,
			Fill:         colors.Copper.Top,
			BorderRadius: h.RectBorderRadius,
			Rotation:     h.CCWRotation,
		}, m)
		DrawPill(ctx, Pill{
			Center:   center,
			Width:    h.HoleWidth,
			Height:   h.HoleHeight,
			Fill:     colors.Drill,
			Rotation: h.CCWRotation,
		}, m)

	default:
		return false
	}
	return true
}

// DrawVia draws a via ring in copper top with its drill
func DrawVia(ctx canvas.Context, v circuit.Via, colors ColorMap, m geom.Matrix) {
	DrawCircle(ctx, v.Position(), v.OuterDiameter/2, colors.Copper.Top, m)
	DrawCircle(ctx, v.Position(), v.HoleDiameter/2, colors.Drill, m)
}
