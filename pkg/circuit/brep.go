package circuit

import "github.com/OpenTraceLab/pcbcanvas/pkg/geom"

// Curve is the kind of an edge between two boundary vertices
type Curve string

const (
	CurveLine   Curve = "line"
	CurveArc    Curve = "arc"
	CurveCircle Curve = "circle"
	CurveBezier Curve = "bezier"
)

// Vertex is a boundary vertex. Z is accepted from input but never used,
// shapes are rendered in their own plane.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Point drops Z
func (v Vertex) Point() geom.Point {
	return geom.Pt(v.X, v.Y)
}

// Edge is one typed edge of a boundary loop.
//
// For CurveArc, Start holds the arc center and End fixes the sweep angle;
// Radius must be non-zero. For CurveBezier, ControlPoints holds one
// (quadratic) or two (cubic) control points.
type Edge struct {
	Start         Vertex   `json:"start"`
	End           Vertex   `json:"end"`
	Curve         Curve    `json:"curve,omitempty"`
	Radius        float64  `json:"radius,omitempty"`
	ControlPoints []Vertex `json:"controlPoints,omitempty"`
}

// Loop is a closed ring of edges. Closure is not checked: the last edge's
// end should coincide with the first edge's start.
type Loop struct {
	Edges []Edge `json:"edges"`
}

// Plane is the plane a face lies in. It is kept for completeness only.
type Plane struct {
	Normal struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"normal"`
	Offset float64 `json:"offset"`
}

// Face is an outer loop with optional hole loops
type Face struct {
	Outer Loop   `json:"outer"`
	Holes []Loop `json:"holes,omitempty"`
	Plane *Plane `json:"plane,omitempty"`
}

// Geometry is the full boundary description of a BrepShape
type Geometry struct {
	Faces    []Face   `json:"faces"`
	Edges    []Edge   `json:"edges,omitempty"`
	Vertices []Vertex `json:"vertices,omitempty"`
}

// Ring is a closed polygon given as vertices
type Ring struct {
	Vertices []Vertex `json:"vertices"`
}

// Loop turns the ring into line edges from each vertex to the next,
// wrapping the last vertex back to the first
func (r Ring) Loop() Loop {
	n := len(r.Vertices)
	edges := make([]Edge, 0, n)
	for i, v := range r.Vertices {
		next := r.Vertices[(i+1)%n]
		edges = append(edges, Edge{
			Start: Vertex{X: v.X, Y: v.Y},
			End:   Vertex{X: next.X, Y: next.Y},
			Curve: CurveLine,
		})
	}
	return Loop{Edges: edges}
}

// BrepRings is the ring-based boundary of a copper pour
type BrepRings struct {
	OuterRing  Ring   `json:"outer_ring"`
	InnerRings []Ring `json:"inner_rings,omitempty"`
}

// Face converts the rings into a face of line loops
func (b BrepRings) Face() Face {
	face := Face{Outer: b.OuterRing.Loop()}
	for _, ring := range b.InnerRings {
		face.Holes = append(face.Holes, ring.Loop())
	}
	return face
}

// PolygonLoop builds a closed line loop through points
func PolygonLoop(points []geom.Point) Loop {
	ring := Ring{Vertices: make([]Vertex, len(points))}
	for i, p := range points {
		ring.Vertices[i] = Vertex{X: p.X, Y: p.Y}
	}
	return ring.Loop()
}
