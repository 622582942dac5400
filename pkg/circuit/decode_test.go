package circuit

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

func TestDecodeArray(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[
		{"type": "pcb_plated_hole", "pcb_plated_hole_id": "h1", "shape": "circle", "x": 1, "y": 2, "outer_diameter": 1.2, "hole_diameter": 0.6},
		{"type": "pcb_smtpad", "pcb_smtpad_id": "s1", "shape": "rect", "x": 0, "y": 0, "width": 1, "height": 0.5, "layer": "top"},
		{"type": "pcb_via", "pcb_via_id": "v1", "x": 3, "y": 3, "outer_diameter": 0.8, "hole_diameter": 0.4},
		{"type": "pcb_copper_pour", "pcb_copper_pour_id": "c1", "layer": "bottom", "shape": "polygon", "points": [{"x": 0, "y": 0}, {"x": 1, "y": 0}, {"x": 1, "y": 1}]},
		{"type": "pcb_brep_shape", "pcb_brep_shape_id": "b1", "layer": "top", "operation": "subtract",
		 "geometry": {"faces": [{"outer": {"edges": [{"start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 0}, "curve": "line"}]}}]},
		 "style": {"fill": "red", "opacity": 0.25}},
		{"type": "pcb_silkscreen_text", "text": "R1"}
	]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	wantKinds := []Kind{KindPlatedHole, KindSMTPad, KindVia, KindCopperPour, KindBrepShape, "pcb_silkscreen_text"}
	if len(doc.Elements) != len(wantKinds) {
		t.Fatalf("got %d elements, want %d", len(doc.Elements), len(wantKinds))
	}
	for i, want := range wantKinds {
		if got := doc.Elements[i].Kind(); got != want {
			t.Errorf("element %d kind = %q, want %q", i, got, want)
		}
	}

	hole := doc.Elements[0].(PlatedHole)
	if hole.ID() != "h1" || hole.OuterDiameter != 1.2 || hole.Position() != geom.Pt(1, 2) {
		t.Errorf("plated hole = %+v", hole)
	}

	brep := doc.Elements[4].(BrepShape)
	if brep.Operation != OperationSubtract || brep.Style.Fill != "red" {
		t.Errorf("brep = %+v", brep)
	}
	if brep.Style.Opacity == nil || *brep.Style.Opacity != 0.25 || brep.Style.StrokeWidth != nil {
		t.Errorf("brep style = %+v", brep.Style)
	}

	unknown := doc.Elements[5].(Unknown)
	if unknown.ID() != "" || !strings.Contains(string(unknown.Raw), "R1") {
		t.Errorf("unknown = %+v", unknown)
	}
	if Layers(unknown) != nil {
		t.Error("unknown elements have no layers")
	}

	if doc.Connectivity == nil || doc.Connectivity.Len() != 0 {
		t.Errorf("array documents have an empty connectivity map")
	}
}

func TestDecodeObjectKeepsNetOrder(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{
		"elements": [],
		"connectivity": {"VCC": ["a", "b", "a"], "GND": ["c"], "AUX": []}
	}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	nets := doc.Connectivity.Nets()
	want := []string{"VCC", "GND", "AUX"}
	if strings.Join(nets, ",") != strings.Join(want, ",") {
		t.Errorf("Nets() = %v, want %v", nets, want)
	}
	if ids := doc.Connectivity.IDsConnectedToNet("VCC"); strings.Join(ids, ",") != "a,b" {
		t.Errorf("VCC ids = %v, want [a b]", ids)
	}
	if net, ok := doc.Connectivity.NetForID("c"); !ok || net != "GND" {
		t.Errorf("NetForID(c) = %q, %v", net, ok)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		unsupported bool
	}{
		{"empty", "  ", true},
		{"scalar", `"hello"`, true},
		{"bad array", `[{"type": 1}]`, false},
		{"bad element", `[{"type": "pcb_via", "x": "left"}]`, false},
		{"bad connectivity", `{"connectivity": {"a": "b"}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrUnsupportedDocument); got != tt.unsupported {
				t.Errorf("errors.Is(err, ErrUnsupportedDocument) = %v, want %v (err: %v)", got, tt.unsupported, err)
			}
		})
	}
}
