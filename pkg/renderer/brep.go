package renderer

import (
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// holeFill is the color holes are erased with; only its alpha matters
const holeFill = "black"

// tessellatedFace is a face whose outer loop has at least three points
type tessellatedFace struct {
	outer []geom.Point
	holes [][]geom.Point
}

// tessellateFaces drops faces whose outer loop has fewer than three points
// and holes with fewer than three points. It returns the number of faces
// dropped.
func tessellateFaces(faces []circuit.Face) ([]tessellatedFace, int) {
	var out []tessellatedFace
	skipped := 0
	for _, face := range faces {
		outer := TessellateLoop(face.Outer)
		if len(outer) < 3 {
			skipped++
			continue
		}
		tf := tessellatedFace{outer: outer}
		for _, hole := range face.Holes {
			if pts := TessellateLoop(hole); len(pts) >= 3 {
				tf.holes = append(tf.holes, pts)
			}
		}
		out = append(out, tf)
	}
	return out, skipped
}

// DrawFaces renders faces with hole punching: for each face the outer
// polygon is filled, holes are erased with destination-out compositing and
// the outer boundary is stroked. The whole sequence runs at the style's
// opacity. When no face is drawable nothing touches ctx.
func DrawFaces(ctx canvas.Context, faces []circuit.Face, style Style, m geom.Matrix) int {
	tfs, skipped := tessellateFaces(faces)
	if len(tfs) == 0 {
		return skipped
	}

	ctx.Save()
	defer ctx.Restore()

	ctx.SetGlobalAlpha(style.Opacity)
	for _, f := range tfs {
		drawFace(ctx, f, style, m)
	}
	return skipped
}

func drawFace(ctx canvas.Context, f tessellatedFace, style Style, m geom.Matrix) {
	DrawPolygon(ctx, f.outer, style.Fill, m)

	if len(f.holes) > 0 {
		ctx.SetGlobalCompositeOperation(canvas.DestinationOut)
		for _, hole := range f.holes {
			DrawPolygon(ctx, hole, holeFill, m)
		}
		ctx.SetGlobalCompositeOperation(canvas.SourceOver)
	}

	DrawPath(ctx, f.outer, style.Stroke, style.StrokeWidth, m, true)
}

// copperPourFace converts a rect or polygon pour into a single face.
// ok is false for shapes without geometry.
func copperPourFace(p circuit.CopperPour) (circuit.Face, bool) {
	switch p.Shape {
	case "brep":
		if p.BrepShape == nil {
			return circuit.Face{}, false
		}
		return p.BrepShape.Face(), true
	case "rect":
		if p.Center == nil {
			return circuit.Face{}, false
		}
		return circuit.Face{Outer: circuit.PolygonLoop(rectCorners(*p.Center, p.Width, p.Height, p.Rotation))}, true
	case "polygon":
		return circuit.Face{Outer: circuit.PolygonLoop(p.Points)}, true
	default:
		return circuit.Face{}, false
	}
}

// rectCorners returns the corners of a rectangle rotated counter-clockwise
// by rotation degrees around its center
func rectCorners(center geom.Point, w, h, rotation float64) []geom.Point {
	rot := geom.Rotate(rotation * math.Pi / 180)
	corners := []geom.Point{
		geom.Pt(-w/2, -h/2),
		geom.Pt(w/2, -h/2),
		geom.Pt(w/2, h/2),
		geom.Pt(-w/2, h/2),
	}
	for i, c := range corners {
		corners[i] = center.Add(rot.ApplyVector(c))
	}
	return corners
}
