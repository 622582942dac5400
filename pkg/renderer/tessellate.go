package renderer

import (
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// curveSegments is the number of steps arcs and beziers are sampled with;
// each curved edge yields curveSegments+1 points
const curveSegments = 20

// TessellateLoop flattens a boundary loop into an ordered point sequence.
//
// Line edges, and edges with no or an unrecognized curve kind, emit their
// start, plus their end when it differs. Arc and circle edges treat Start
// as the center and sweep from angle 0 to the angle of End. Bezier edges
// are sampled as quadratic (one control point) or cubic (two or more, the
// first two are used). Arcs without a radius and beziers without control
// points degrade to the start point alone.
func TessellateLoop(loop circuit.Loop) []geom.Point {
	var points []geom.Point
	for _, edge := range loop.Edges {
		points = appendEdge(points, edge)
	}
	return points
}

func appendEdge(points []geom.Point, edge circuit.Edge) []geom.Point {
	start := edge.Start.Point()
	end := edge.End.Point()

	switch {
	case !isCurved(edge.Curve):
		points = append(points, start)
		if start != end {
			points = append(points, end)
		}
		return points

	case (edge.Curve == circuit.CurveArc || edge.Curve == circuit.CurveCircle) && edge.Radius != 0:
		return appendArc(points, start, end, edge.Radius)

	case edge.Curve == circuit.CurveBezier && len(edge.ControlPoints) == 1:
		return appendQuadratic(points, start, edge.ControlPoints[0].Point(), end)

	case edge.Curve == circuit.CurveBezier && len(edge.ControlPoints) >= 2:
		return appendCubic(points, start, edge.ControlPoints[0].Point(), edge.ControlPoints[1].Point(), end)

	default:
		return append(points, start)
	}
}

func isCurved(c circuit.Curve) bool {
	return c == circuit.CurveArc || c == circuit.CurveCircle || c == circuit.CurveBezier
}

// appendArc samples an arc centered on center from angle 0 to the angle
// of end
func appendArc(points []geom.Point, center, end geom.Point, radius float64) []geom.Point {
	endAngle := math.Atan2(end.Y-center.Y, end.X-center.X)
	for i := 0; i <= curveSegments; i++ {
		angle := endAngle * float64(i) / curveSegments
		points = append(points, geom.Pt(
			center.X+math.Cos(angle)*radius,
			center.Y+math.Sin(angle)*radius,
		))
	}
	return points
}

func appendQuadratic(points []geom.Point, p0, p1, p2 geom.Point) []geom.Point {
	for i := 0; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		points = append(points, geom.Pt(
			u*u*p0.X+2*u*t*p1.X+t*t*p2.X,
			u*u*p0.Y+2*u*t*p1.Y+t*t*p2.Y,
		))
	}
	return points
}

func appendCubic(points []geom.Point, p0, p1, p2, p3 geom.Point) []geom.Point {
	for i := 0; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		a := u * u * u
		b := 3 * u * u * t
		c := 3 * u * t * t
		d := t * t * t
		points = append(points, geom.Pt(
			a*p0.X+b*p1.X+c*p2.X+d*p3.X,
			a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
		))
	}
	return points
}
