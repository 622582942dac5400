package geom

import "math"

// Matrix is a 2D affine transformation in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transformation
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns a translation by (tx, ty)
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scale returns a scaling by (sx, sy)
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns a rotation by angle radians. With a y-down canvas a
// positive angle turns clockwise on screen.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Multiply returns m*n, the transformation that applies n first and m second
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Compose multiplies the matrices left to right, so the rightmost matrix
// is applied to a point first. Compose() is the identity.
func Compose(ms ...Matrix) Matrix {
	out := Identity()
	for _, m := range ms {
		out = out.Multiply(m)
	}
	return out
}

// Apply transforms p
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVector transforms v without the translation part
func (m Matrix) ApplyVector(v Point) Point {
	return Point{
		X: m.A*v.X + m.C*v.Y,
		Y: m.B*v.X + m.D*v.Y,
	}
}

// ScaleFactor returns |A|, the linear scale of a rotation-free uniform
// transform such as the one built for a camera.
func (m Matrix) ScaleFactor() float64 {
	return math.Abs(m.A)
}

// LinearScale returns sqrt(|det|), the average linear scale of m. Unlike
// ScaleFactor it is also meaningful for rotated matrices.
func (m Matrix) LinearScale() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// IsFinite reports whether every coefficient is a finite number
func (m Matrix) IsFinite() bool {
	for _, v := range [...]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Invert returns the inverse of m. A singular matrix yields non-finite
// coefficients.
func (m Matrix) Invert() Matrix {
	det := m.A*m.D - m.B*m.C
	inv := 1 / det
	return Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}
}
