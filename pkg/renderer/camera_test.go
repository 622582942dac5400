package renderer

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

const eps = 1e-9

func TestComputeTransform(t *testing.T) {
	tests := []struct {
		name   string
		bounds geom.Bounds
		width  int
		height int
	}{
		{"square into square", geom.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, 100, 100},
		{"wide into square", geom.Bounds{MinX: -10, MinY: 5, MaxX: 30, MaxY: 15}, 200, 200},
		{"tall into wide", geom.Bounds{MinX: 2, MinY: -50, MaxX: 4, MaxY: 50}, 640, 480},
		{"offset origin", geom.Bounds{MinX: 100, MinY: 200, MaxX: 150, MaxY: 230}, 300, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeTransform(tt.bounds, tt.width, tt.height)

			if m.B != 0 || m.C != 0 {
				t.Errorf("transform has rotation or shear: %+v", m)
			}
			if math.Abs(m.A-m.D) > eps {
				t.Errorf("scale differs per axis: A=%v D=%v", m.A, m.D)
			}

			lo := m.Apply(geom.Pt(tt.bounds.MinX, tt.bounds.MinY))
			hi := m.Apply(geom.Pt(tt.bounds.MaxX, tt.bounds.MaxY))
			w, h := float64(tt.width), float64(tt.height)

			if lo.X < -eps || lo.Y < -eps || hi.X > w+eps || hi.Y > h+eps {
				t.Errorf("corners %v %v outside %vx%v", lo, hi, w, h)
			}
			if math.Abs(lo.X-(w-hi.X)) > eps {
				t.Errorf("horizontal margins differ: left=%v right=%v", lo.X, w-hi.X)
			}
			if math.Abs(lo.Y-(h-hi.Y)) > eps {
				t.Errorf("vertical margins differ: top=%v bottom=%v", lo.Y, h-hi.Y)
			}
			// one axis fills the surface
			if math.Abs(hi.X-lo.X-w) > eps && math.Abs(hi.Y-lo.Y-h) > eps {
				t.Errorf("content %vx%v fills neither axis of %vx%v", hi.X-lo.X, hi.Y-lo.Y, w, h)
			}
		})
	}
}

func TestComputeTransformIdentity(t *testing.T) {
	m := ComputeTransform(geom.Bounds{MaxX: 100, MaxY: 100}, 100, 100)
	p := m.Apply(geom.Pt(20, 80))
	if p.X != 20 || p.Y != 80 {
		t.Errorf("Apply(20,80) = %v, want (20,80)", p)
	}
}

func TestComputeTransformDegenerate(t *testing.T) {
	m := ComputeTransform(geom.Bounds{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, 100, 100)
	if m.IsFinite() {
		t.Errorf("zero-size bounds gave finite transform %+v", m)
	}
}

func TestFitBounds(t *testing.T) {
	b := FitBounds(geom.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20}, 0.1)
	want := geom.Bounds{MinX: -2, MinY: -2, MaxX: 12, MaxY: 22}
	if b != want {
		t.Errorf("FitBounds() = %+v, want %+v", b, want)
	}

	point := FitBounds(geom.Bounds{MinX: 3, MinY: 3, MaxX: 3, MaxY: 3}, 0.1)
	if point.Width() != 2 || point.Height() != 2 {
		t.Errorf("FitBounds(point) = %+v, want 2x2", point)
	}

	empty := geom.EmptyBounds()
	if got := FitBounds(empty, 0.1); !got.IsEmpty() {
		t.Errorf("FitBounds(empty) = %+v, want empty", got)
	}
}
