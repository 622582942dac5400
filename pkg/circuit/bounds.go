package circuit

import (
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// Bounds returns the board-space extent of every element in the document
func (d *Document) Bounds() geom.Bounds {
	return ElementsBounds(d.Elements)
}

// ElementsBounds returns the board-space extent of elements. The result is
// empty when no element has geometry.
func ElementsBounds(elements []Element) geom.Bounds {
	bb := geom.EmptyBounds()
	for _, e := range elements {
		expandElement(&bb, e)
	}
	return bb
}

func expandElement(bb *geom.Bounds, e Element) {
	switch el := e.(type) {
	case PlatedHole:
		r := math.Max(
			math.Max(el.OuterDiameter, el.HoleDiameter),
			math.Max(math.Max(el.OuterWidth, el.OuterHeight), math.Max(el.RectPadWidth, el.RectPadHeight)),
		) / 2
		bb.ExpandBy(el.Position(), r)
	case SMTPad:
		r := math.Max(math.Max(el.Width, el.Height)/2, el.Radius)
		bb.ExpandBy(el.Position(), r)
	case Via:
		bb.ExpandBy(el.Position(), el.OuterDiameter/2)
	case CopperPour:
		switch {
		case el.BrepShape != nil:
			for _, v := range el.BrepShape.OuterRing.Vertices {
				bb.Expand(v.Point())
			}
		case el.Center != nil:
			r := math.Hypot(el.Width, el.Height) / 2
			bb.ExpandBy(*el.Center, r)
		default:
			for _, p := range el.Points {
				bb.Expand(p)
			}
		}
	case BrepShape:
		for _, face := range el.Geometry.Faces {
			for _, edge := range face.Outer.Edges {
				if edge.Curve == CurveArc || edge.Curve == CurveCircle {
					bb.ExpandBy(edge.Start.Point(), math.Abs(edge.Radius))
					continue
				}
				bb.Expand(edge.Start.Point())
				bb.Expand(edge.End.Point())
				for _, cp := range edge.ControlPoints {
					bb.Expand(cp.Point())
				}
			}
		}
	}
}
