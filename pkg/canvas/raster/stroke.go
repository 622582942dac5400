package raster

import (
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// strokeSubpath outlines a device-space polyline as a set of polygons:
// one quad per segment (or dash piece) plus miter or bevel joins. Caps are
// butt. Dashed strokes get no joins.
func strokeSubpath(pts []geom.Point, closed bool, width float64, dash []float64) [][]geom.Point {
	pts = dedupe(pts)
	if len(pts) < 2 {
		return nil
	}
	if closed && pts[len(pts)-1] != pts[0] {
		pts = append(pts, pts[0])
	}
	hw := width / 2
	if len(dash) > 0 {
		return dashed(pts, hw, dash)
	}

	var out [][]geom.Point
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, segmentQuad(pts[i], pts[i+1], hw))
	}
	for i := 1; i+1 < len(pts); i++ {
		if j := join(pts[i-1], pts[i], pts[i+1], hw); j != nil {
			out = append(out, j)
		}
	}
	if closed && len(pts) > 2 {
		n := len(pts)
		if j := join(pts[n-2], pts[0], pts[1], hw); j != nil {
			out = append(out, j)
		}
	}
	return out
}

func dedupe(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func segmentQuad(a, b geom.Point, hw float64) []geom.Point {
	d := b.Sub(a).Unit()
	n := geom.Pt(-d.Y, d.X).Mul(hw)
	return []geom.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

// join fills the wedge on the outer side of the corner at v
func join(prev, v, next geom.Point, hw float64) []geom.Point {
	d1 := v.Sub(prev).Unit()
	d2 := next.Sub(v).Unit()
	cross := d1.Cross(d2)
	if math.Abs(cross) < 1e-9 {
		return nil
	}
	s := -1.0
	if cross < 0 {
		s = 1
	}
	n1 := geom.Pt(-d1.Y, d1.X).Mul(s)
	n2 := geom.Pt(-d2.Y, d2.X).Mul(s)
	a := v.Add(n1.Mul(hw))
	b := v.Add(n2.Mul(hw))

	cosHalf := math.Sqrt((1 + n1.Dot(n2)) / 2)
	if cosHalf == 0 || 1/cosHalf > miterLimit {
		return []geom.Point{v, a, b}
	}
	tip := v.Add(n1.Add(n2).Unit().Mul(hw / cosHalf))
	return []geom.Point{v, a, tip, b}
}

// maxDashSteps bounds the work for patterns far finer than a pixel
const maxDashSteps = 1 << 18

// dashed walks the polyline emitting a quad for each "on" interval. The
// pattern phase carries across vertices.
func dashed(pts []geom.Point, hw float64, dash []float64) [][]geom.Point {
	var out [][]geom.Point
	idx := 0
	left := dash[0]
	on := true
	steps := 0
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := a.Dist(b)
		dir := b.Sub(a).Unit()
		pos := 0.0
		for pos < segLen {
			step := math.Min(left, segLen-pos)
			if on && step > 0 {
				out = append(out, segmentQuad(a.Add(dir.Mul(pos)), a.Add(dir.Mul(pos+step)), hw))
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(dash)
				left = dash[idx]
				on = !on
			}
			if steps++; steps > maxDashSteps {
				return out
			}
		}
	}
	return out
}
