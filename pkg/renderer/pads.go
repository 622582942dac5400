package renderer

import (
	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// SMT pad shapes
const (
	PadRect        = "rect"
	PadRotatedRect = "rotated_rect"
	PadCircle      = "circle"
	PadPill        = "pill"
)

// DrawSMTPad fills a surface mount pad in the copper color of its layer.
// It reports false for shapes it does not know.
func DrawSMTPad(ctx canvas.Context, p circuit.SMTPad, colors ColorMap, m geom.Matrix) bool {
	fill := LayerColor(p.Layer, colors)

	switch p.Shape {
	case PadRect, PadRotatedRect:
		DrawRect(ctx, Rect{
			Center:       p.Position(),
			Width:        p.Width,
			Height:       p.Height,
			Fill:         fill,
			BorderRadius: p.CornerRadius,
			Rotation:     p.CCWRotation,
		}, m)
	case PadCircle:
		DrawCircle(ctx, p.Position(), p.Radius, fill, m)
	case PadPill:
		DrawPill(ctx, Pill{
			Center:   p.Position(),
			Width:    p.Width,
			Height:   p.Height,
			Fill:     fill,
			Rotation: p.CCWRotation,
		}, m)
	default:
		return false
	}
	return true
}
