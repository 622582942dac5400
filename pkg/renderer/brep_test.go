package renderer

import (
	"reflect"
	"testing"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas/canvastest"
	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas/raster"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

func square(x0, y0, x1, y1 float64) circuit.Loop {
	return lineLoop(geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1))
}

func punchedSquare() circuit.BrepShape {
	return circuit.BrepShape{
		BrepShapeID: "brep1",
		Layer:       "top",
		Operation:   circuit.OperationAdd,
		Geometry: circuit.Geometry{Faces: []circuit.Face{{
			Outer: square(10, 10, 90, 90),
			Holes: []circuit.Loop{square(35, 35, 65, 65)},
		}}},
	}
}

func newRasterDrawer(t *testing.T, w, h int) (*raster.Surface, *Drawer) {
	t.Helper()
	s := raster.NewSurface(w, h)
	d, err := NewFromProvider(s)
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	s.Clear(canvas.MustParseColor("#1a1a1a"))
	d.SetCameraBounds(geom.Bounds{MaxX: float64(w), MaxY: float64(h)})
	return s, d
}

func TestHolePunchingLowersAlpha(t *testing.T) {
	s, d := newRasterDrawer(t, 100, 100)
	d.DrawElements([]circuit.Element{punchedSquare()}, DrawOptions{})

	img := s.Image()
	hole := img.RGBAAt(50, 50).A
	filled := img.RGBAAt(20, 20).A
	if hole >= filled {
		t.Errorf("hole alpha %d not lower than fill alpha %d", hole, filled)
	}
	if outside := img.RGBAAt(2, 2); outside.R != 0x1a || outside.A != 0xff {
		t.Errorf("background changed outside the shape: %v", outside)
	}
}

func TestDrawFacesCallSequence(t *testing.T) {
	rec := canvastest.NewRecorder(100, 100)
	style := Style{Fill: "red", Stroke: "red", StrokeWidth: 0.1, Opacity: 0.5}
	DrawFaces(rec, punchedSquare().Geometry.Faces, style, geom.Identity())

	var ops []canvas.CompositeOp
	for _, c := range rec.Filter("SetGlobalCompositeOperation") {
		ops = append(ops, c.Args[0].(canvas.CompositeOp))
	}
	wantOps := []canvas.CompositeOp{canvas.DestinationOut, canvas.SourceOver}
	if !reflect.DeepEqual(ops, wantOps) {
		t.Errorf("composite ops = %v, want %v", ops, wantOps)
	}

	// one pass: outer fill, hole fill, outer stroke
	if n := rec.Count("Fill"); n != 2 {
		t.Errorf("Fill called %d times, want 2", n)
	}
	if n := rec.Count("Stroke"); n != 1 {
		t.Errorf("Stroke called %d times, want 1", n)
	}
	if rec.Count("Save") != rec.Count("Restore") {
		t.Errorf("unbalanced Save/Restore: %v", rec.Names())
	}
	if a := rec.GlobalAlpha(); a != 1 {
		t.Errorf("global alpha after draw = %v, want 1", a)
	}

	styles := rec.Filter("SetFillStyle")
	if styles[1].Args[0] != holeFill {
		t.Errorf("hole fill = %v, want %q", styles[1].Args[0], holeFill)
	}
}

func TestDegenerateFaceDrawsNothing(t *testing.T) {
	faces := []circuit.Face{
		{Outer: circuit.Loop{Edges: []circuit.Edge{{Start: v(0, 0), End: v(1, 1)}}}},
		{Outer: circuit.Loop{Edges: []circuit.Edge{{Start: v(0, 0), End: v(5, 5), Curve: circuit.CurveBezier}}}},
		{},
	}

	rec := canvastest.NewRecorder(100, 100)
	skipped := DrawFaces(rec, faces, Style{Fill: "red", Opacity: 0.5}, geom.Identity())
	if len(rec.Calls) != 0 {
		t.Errorf("degenerate faces made calls: %v", rec.Names())
	}
	if skipped != len(faces) {
		t.Errorf("skipped = %d, want %d", skipped, len(faces))
	}
}

func TestDegenerateHoleSkipped(t *testing.T) {
	faces := []circuit.Face{{
		Outer: square(0, 0, 10, 10),
		Holes: []circuit.Loop{{Edges: []circuit.Edge{{Start: v(1, 1), End: v(2, 2)}}}},
	}}

	rec := canvastest.NewRecorder(100, 100)
	DrawFaces(rec, faces, Style{Fill: "red", Stroke: "red", StrokeWidth: 0.1, Opacity: 0.5}, geom.Identity())
	if n := rec.Count("Fill"); n != 1 {
		t.Errorf("Fill called %d times, want 1", n)
	}
}

func TestCopperPourFace(t *testing.T) {
	center := geom.Pt(5, 5)
	tests := []struct {
		name   string
		pour   circuit.CopperPour
		wantOK bool
		points int
	}{
		{"rect", circuit.CopperPour{Shape: "rect", Center: &center, Width: 4, Height: 2}, true, 4},
		{"rect without center", circuit.CopperPour{Shape: "rect", Width: 4, Height: 2}, false, 0},
		{"polygon", circuit.CopperPour{Shape: "polygon", Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}, true, 3},
		{"brep", circuit.CopperPour{Shape: "brep", BrepShape: &circuit.BrepRings{OuterRing: circuit.Ring{Vertices: []circuit.Vertex{v(0, 0), v(2, 0), v(2, 2)}}}}, true, 3},
		{"brep without rings", circuit.CopperPour{Shape: "brep"}, false, 0},
		{"unknown", circuit.CopperPour{Shape: "circle"}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face, ok := copperPourFace(tt.pour)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got := len(face.Outer.Edges); got != tt.points {
				t.Errorf("outer edges = %d, want %d", got, tt.points)
			}
		})
	}
}

func TestRectCornersRotation(t *testing.T) {
	corners := rectCorners(geom.Pt(0, 0), 4, 2, 90)
	// (-2,-1) rotated 90 degrees counter-clockwise is (1,-2)
	if corners[0].Dist(geom.Pt(1, -2)) > eps {
		t.Errorf("corner 0 = %v, want (1,-2)", corners[0])
	}
}
