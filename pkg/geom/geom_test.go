package geom

import "testing"

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds() is not empty")
	}

	b.Expand(Pt(1, 2))
	b.ExpandBy(Pt(5, 5), 1)
	want := Bounds{MinX: 1, MinY: 2, MaxX: 6, MaxY: 6}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	if b.Width() != 5 || b.Height() != 4 {
		t.Errorf("size = %vx%v, want 5x4", b.Width(), b.Height())
	}
	if c := b.Center(); c != Pt(3.5, 4) {
		t.Errorf("Center() = %v", c)
	}
	if !b.Contains(Pt(6, 6)) || b.Contains(Pt(0, 3)) {
		t.Error("Contains mismatch")
	}
	if p := b.Pad(1); p != (Bounds{MinX: 0, MinY: 1, MaxX: 7, MaxY: 7}) {
		t.Errorf("Pad(1) = %+v", p)
	}
}

func TestPointOps(t *testing.T) {
	p, q := Pt(3, 4), Pt(1, -2)
	if got := p.Add(q); got != Pt(4, 2) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(q); got != Pt(2, 6) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul = %v", got)
	}
	if got := p.Dot(q); got != -5 {
		t.Errorf("Dot = %v", got)
	}
	if got := p.Cross(q); got != -10 {
		t.Errorf("Cross = %v", got)
	}
	if got := p.Len(); got != 5 {
		t.Errorf("Len = %v", got)
	}
	if got := p.Dist(Pt(0, 0)); got != 5 {
		t.Errorf("Dist = %v", got)
	}
	if got := p.Unit(); got != Pt(0.6, 0.8) {
		t.Errorf("Unit = %v", got)
	}
	if got := Pt(0, 0).Unit(); got != Pt(0, 0) {
		t.Errorf("Unit of zero = %v", got)
	}
}
