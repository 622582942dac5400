package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestComposeOrder(t *testing.T) {
	// The rightmost matrix is applied first: scale, then translate
	m := Compose(Translate(10, 20), Scale(2, 3))
	if got := m.Apply(Pt(1, 1)); !near(got, Pt(12, 23)) {
		t.Errorf("Apply() = %v, want (12, 23)", got)
	}

	if got := Compose(); got != Identity() {
		t.Errorf("Compose() = %+v, want identity", got)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		angle float64
		in    Point
		want  Point
	}{
		{0, Pt(1, 0), Pt(1, 0)},
		{math.Pi / 2, Pt(1, 0), Pt(0, 1)},
		{math.Pi, Pt(1, 2), Pt(-1, -2)},
		{-math.Pi / 2, Pt(0, 1), Pt(1, 0)},
	}
	for _, tt := range tests {
		if got := Rotate(tt.angle).Apply(tt.in); !near(got, tt.want) {
			t.Errorf("Rotate(%v).Apply(%v) = %v, want %v", tt.angle, tt.in, got, tt.want)
		}
	}
}

func TestInvert(t *testing.T) {
	m := Compose(Translate(5, -3), Rotate(0.7), Scale(2, 4))
	p := Pt(3.5, -1.25)
	if got := m.Invert().Apply(m.Apply(p)); !near(got, p) {
		t.Errorf("Invert round trip = %v, want %v", got, p)
	}

	if Scale(0, 1).Invert().IsFinite() {
		t.Error("inverse of a singular matrix should not be finite")
	}
}

func TestScaleFactors(t *testing.T) {
	m := Compose(Translate(1, 1), Scale(-3, 3))
	if got := m.ScaleFactor(); got != 3 {
		t.Errorf("ScaleFactor() = %v, want 3", got)
	}
	r := Compose(Rotate(math.Pi/2), Scale(2, 2))
	if got := r.LinearScale(); math.Abs(got-2) > eps {
		t.Errorf("LinearScale() = %v, want 2", got)
	}
	if got := r.ApplyVector(Pt(1, 0)); !near(got, Pt(0, 2)) {
		t.Errorf("ApplyVector() = %v, want (0, 2)", got)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		m    Matrix
		want bool
	}{
		{Identity(), true},
		{Matrix{A: math.NaN(), D: 1}, false},
		{Matrix{A: 1, D: 1, E: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.m.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%+v) = %v, want %v", tt.m, got, tt.want)
		}
	}
}
