package renderer

import (
	"reflect"
	"testing"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas/canvastest"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

func pad(id string, x, y float64) circuit.SMTPad {
	return circuit.SMTPad{SMTPadID: id, Shape: "rect", X: x, Y: y, Width: 5, Height: 5, Layer: "top"}
}

func TestDrawRatsNestTwoPads(t *testing.T) {
	elements := []circuit.Element{pad("pad1", 20, 20), pad("pad2", 80, 80)}
	conn := circuit.NewConnectivityMap()
	conn.Add("net1", "pad1", "pad2", "missing")

	rec := canvastest.NewRecorder(100, 100)
	d := New(rec)
	d.SetCameraBounds(geom.Bounds{MaxX: 100, MaxY: 100})
	rec.Reset()
	d.DrawRatsNest(elements, conn)

	if n := rec.Count("Stroke"); n != 1 {
		t.Fatalf("Stroke called %d times, want 1", n)
	}
	move := rec.Filter("MoveTo")[0]
	line := rec.Filter("LineTo")[0]
	if !reflect.DeepEqual(move.Args, []any{20.0, 20.0}) || !reflect.DeepEqual(line.Args, []any{80.0, 80.0}) {
		t.Errorf("segment = %v -> %v, want (20,20) -> (80,80)", move, line)
	}

	dash := rec.Filter("SetLineDash")
	if len(dash) != 1 || !reflect.DeepEqual(dash[0].Args[0], []float64{1, 1}) {
		t.Errorf("dash = %v, want [1 1]", dash)
	}
	if style := rec.Filter("SetStrokeStyle")[0].Args[0]; style != d.Colors().Silkscreen.Top {
		t.Errorf("stroke style = %v, want silkscreen top", style)
	}
	if rec.Names()[0] != "Save" || rec.Names()[len(rec.Calls)-1] != "Restore" {
		t.Errorf("rats nest not wrapped in Save/Restore: %v", rec.Names())
	}
}

func TestRatsNestLines(t *testing.T) {
	hole := circuit.PlatedHole{PlatedHoleID: "h1", Shape: "circle", X: 0, Y: 10}
	via := circuit.Via{ViaID: "v1", X: 100, Y: 100}

	tests := []struct {
		name     string
		elements []circuit.Element
		nets     map[string][]string
		want     []RatsNestLine
	}{
		{
			name:     "isolated point draws nothing",
			elements: []circuit.Element{pad("a", 0, 0)},
			nets:     map[string][]string{"n": {"a"}},
		},
		{
			name:     "only unresolved ids",
			elements: []circuit.Element{pad("a", 0, 0)},
			nets:     map[string][]string{"n": {"x", "y"}},
		},
		{
			name:     "coincident points are not neighbors",
			elements: []circuit.Element{pad("a", 5, 5), pad("b", 5, 5)},
			nets:     map[string][]string{"n": {"a", "b"}},
		},
		{
			name:     "chain of three",
			elements: []circuit.Element{pad("a", 0, 0), hole, via},
			nets:     map[string][]string{"n": {"a", "h1", "v1"}},
			want: []RatsNestLine{
				{Net: "n", From: geom.Pt(0, 0), To: geom.Pt(0, 10)},
				{Net: "n", From: geom.Pt(100, 100), To: geom.Pt(0, 10)},
			},
		},
		{
			name:     "tie goes to first",
			elements: []circuit.Element{pad("a", 0, 0), pad("b", 1, 0), pad("c", -1, 0)},
			nets:     map[string][]string{"n": {"a", "b", "c"}},
			want: []RatsNestLine{
				{Net: "n", From: geom.Pt(0, 0), To: geom.Pt(1, 0)},
				{Net: "n", From: geom.Pt(-1, 0), To: geom.Pt(0, 0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := circuit.NewConnectivityMap()
			for net, ids := range tt.nets {
				conn.Add(net, ids...)
			}
			got := RatsNestLines(tt.elements, conn)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RatsNestLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRatsNestWithoutConnectivity(t *testing.T) {
	rec := canvastest.NewRecorder(10, 10)
	if n := DrawRatsNest(rec, []circuit.Element{pad("a", 0, 0)}, nil, DefaultColorMap(), geom.Identity()); n != 0 {
		t.Errorf("lines = %d, want 0", n)
	}
	if len(rec.Calls) != 0 {
		t.Errorf("calls = %v, want none", rec.Names())
	}
}
