package sexp

import (
	"strings"
	"testing"
)

func TestParseString(t *testing.T) {
	nodes, err := ParseString(`(kicad_pcb (version 20221018) (generator "pcbnew")
  (net 1 "GND") (layers "F.Cu" B.Cu) ())`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(nodes))
	}

	root := nodes[0]
	if root.Name() != "kicad_pcb" {
		t.Errorf("Name() = %q, want kicad_pcb", root.Name())
	}
	if len(root.Items()) != 6 {
		t.Errorf("got %d items, want 6", len(root.Items()))
	}

	version, ok := root.Find("version")
	if !ok {
		t.Fatal("version not found")
	}
	if v, err := version.Int(1); err != nil || v != 20221018 {
		t.Errorf("version = %d, %v", v, err)
	}

	if gen, ok := root.FindString("generator"); !ok || gen != "pcbnew" {
		t.Errorf("generator = %q, %v", gen, ok)
	}

	layers, _ := root.Find("layers")
	got := layers.Strings()
	if len(got) != 2 || got[0] != "F.Cu" || got[1] != "B.Cu" {
		t.Errorf("layers = %v", got)
	}

	empty := root.Items()[5]
	if !empty.IsList() || len(empty.Items()) != 0 || empty.Name() != "" {
		t.Errorf("empty list parsed as %+v", empty)
	}
}

func TestQuotedEscapes(t *testing.T) {
	nodes, err := ParseString(`(property "Value" "say \"hi\"" "a\\b" "")`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	tests := []struct {
		index int
		want  string
	}{
		{1, "Value"},
		{2, `say "hi"`},
		{3, `a\b`},
		{4, ""},
	}
	for _, tt := range tests {
		got, err := nodes[0].String(tt.index)
		if err != nil {
			t.Fatalf("String(%d) error = %v", tt.index, err)
		}
		if got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestFindAll(t *testing.T) {
	nodes, err := ParseString(`(pts (xy 0 0) (xy 1.5 -2) (arc (start 0 0)) (xy 3 4))`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	xys := nodes[0].FindAll("xy")
	if len(xys) != 3 {
		t.Fatalf("got %d xy nodes, want 3", len(xys))
	}
	x, y, err := xys[1].XY()
	if err != nil || x != 1.5 || y != -2 {
		t.Errorf("XY() = %v, %v, %v", x, y, err)
	}
	if _, ok := nodes[0].Find("missing"); ok {
		t.Error("Find(missing) reported found")
	}
}

func TestAccessorErrors(t *testing.T) {
	nodes, err := ParseString(`(at x (nested) 1)`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	at := nodes[0]

	if _, err := at.Float(1); err == nil {
		t.Error("Float on a symbol should fail")
	}
	if _, err := at.String(2); err == nil {
		t.Error("String on a list should fail")
	}
	if _, err := at.Int(9); err == nil {
		t.Error("out of range index should fail")
	}
	if !at.HasSymbol("x") || at.HasSymbol("y") {
		t.Error("HasSymbol mismatch")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`(kicad_pcb (version 1)`,
		`)`,
		`("unterminated)`,
	}
	for _, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}
