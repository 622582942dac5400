// Package render ties input loading, configuration and the renderer
// together for the CLI and the viewer.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/pcbcanvas/internal/config"
	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas/raster"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/kicad/pcb"
	"github.com/OpenTraceLab/pcbcanvas/pkg/renderer"
)

// IsKiCadBoard reports whether path names a KiCad board file
func IsKiCadBoard(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".kicad_pcb")
}

// LoadDocument reads a KiCad board (.kicad_pcb) or a circuit-json file
func LoadDocument(path string, logger *log.Logger) (*circuit.Document, error) {
	if IsKiCadBoard(path) {
		board, err := pcb.NewParser(logger).ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("error parsing board: %w", err)
		}
		return board.Document(), nil
	}

	doc, err := circuit.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing circuit: %w", err)
	}
	return doc, nil
}

// Options selects what a render draws
type Options struct {
	Width    int
	Height   int
	Margin   float64
	Layers   []string
	RatsNest bool
}

// OptionsFromConfig copies the render options out of cfg
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Margin:   cfg.Margin,
		Layers:   cfg.Layers,
		RatsNest: cfg.RatsNest,
	}
}

// Scene renders one document with a fixed color configuration
type Scene struct {
	doc    *circuit.Document
	cfg    config.Config
	logger *log.Logger
}

// NewScene creates a scene. A nil logger discards.
func NewScene(doc *circuit.Document, cfg config.Config, logger *log.Logger) *Scene {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scene{doc: doc, cfg: cfg, logger: logger}
}

// Document returns the scene's document
func (s *Scene) Document() *circuit.Document {
	return s.doc
}

// Render draws the document onto a fresh surface: background, elements
// on the requested layers, then the rats nest when enabled
func (s *Scene) Render(opts Options) (*raster.Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	surface := raster.NewSurface(opts.Width, opts.Height)

	drawerOpts := append(s.cfg.DrawerOptions(), renderer.WithLogger(s.logger))
	d, err := renderer.NewFromProvider(surface, drawerOpts...)
	if err != nil {
		return nil, err
	}
	d.Configure(s.cfg.RendererConfig())

	bounds := renderer.FitBounds(s.doc.Bounds(), opts.Margin)
	if bounds.IsEmpty() {
		s.logger.Warn("document has no drawable elements")
		d.DrawBackground()
		return surface, nil
	}
	d.SetCameraBounds(bounds)

	d.DrawBackground()
	d.DrawElements(s.doc.Elements, renderer.DrawOptions{Layers: opts.Layers})
	if opts.RatsNest && s.doc.Connectivity != nil {
		d.DrawRatsNest(s.doc.Elements, s.doc.Connectivity)
	}

	s.logger.Debug("rendered",
		"elements", len(s.doc.Elements),
		"width", opts.Width,
		"height", opts.Height,
		"layers", opts.Layers)
	return surface, nil
}
