package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenTraceLab/pcbcanvas/internal/config"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

const circuitJSON = `{
  "elements": [
    {"type": "pcb_smtpad", "pcb_smtpad_id": "p1", "shape": "rect", "x": 0, "y": 0, "width": 2, "height": 2, "layer": "top"},
    {"type": "pcb_smtpad", "pcb_smtpad_id": "p2", "shape": "rect", "x": 10, "y": 10, "width": 2, "height": 2, "layer": "bottom"}
  ],
  "connectivity": {"n1": ["p1", "p2"]}
}`

const kicadBoard = `(kicad_pcb (version 20221018) (generator pcbnew)
  (net 0 "") (net 1 "GND")
  (via (at 0 0) (size 1) (drill 0.5) (layers "F.Cu" "B.Cu") (net 1))
  (via (at 5 5) (size 1) (drill 0.5) (layers "F.Cu" "B.Cu") (net 1))
)`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		elements int
		nets     int
	}{
		{"circuit json", "board.json", circuitJSON, 2, 1},
		{"kicad", "board.kicad_pcb", kicadBoard, 2, 1},
		{"kicad upper case", "BOARD.KICAD_PCB", kicadBoard, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := LoadDocument(writeFile(t, tt.file, tt.content), nil)
			if err != nil {
				t.Fatalf("LoadDocument() error = %v", err)
			}
			if len(doc.Elements) != tt.elements {
				t.Errorf("got %d elements, want %d", len(doc.Elements), tt.elements)
			}
			if doc.Connectivity.Len() != tt.nets {
				t.Errorf("got %d nets, want %d", doc.Connectivity.Len(), tt.nets)
			}
		})
	}

	if _, err := LoadDocument(writeFile(t, "bad.kicad_pcb", "(kicad_sch)"), nil); err == nil {
		t.Error("expected error for a schematic")
	}
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSceneRender(t *testing.T) {
	doc, err := LoadDocument(writeFile(t, "board.json", circuitJSON), nil)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	cfg := config.Default()
	cfg.Colors.Background = "#000000"
	scene := NewScene(doc, cfg, nil)

	opts := OptionsFromConfig(cfg)
	opts.Width, opts.Height = 100, 100
	surface, err := scene.Render(opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := surface.Image()

	// Background covers the corners
	if c := img.RGBAAt(0, 99); c.A != 255 || c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("corner = %v, want opaque black", c)
	}

	// The pads sit at the opposite corners of the fitted bounds
	center := func(x, y float64) (int, int) {
		m := renderer.ComputeTransform(renderer.FitBounds(doc.Bounds(), cfg.Margin), 100, 100)
		p := m.Apply(circuit.SMTPad{X: x, Y: y}.Position())
		return int(p.X), int(p.Y)
	}
	x, y := center(0, 0)
	if c := img.RGBAAt(x, y); c.R == 0 && c.G == 0 && c.B == 0 {
		t.Errorf("pad p1 at (%d, %d) not drawn", x, y)
	}

	opts.Layers = []string{renderer.LayerBottom}
	opts.RatsNest = false
	surface, err = scene.Render(opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c := surface.Image().RGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("top pad drawn with bottom-only filter: %v", c)
	}
}

func TestSceneRenderErrors(t *testing.T) {
	scene := NewScene(&circuit.Document{Connectivity: circuit.NewConnectivityMap()}, config.Default(), nil)

	if _, err := scene.Render(Options{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}

	// An empty document still gets a background
	surface, err := scene.Render(Options{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c := surface.Image().RGBAAt(1, 1); c.A != 255 {
		t.Errorf("background alpha = %d, want 255", c.A)
	}
}
