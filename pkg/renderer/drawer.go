package renderer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/circuit"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// ErrNoContext is returned when a provider cannot produce a 2D context
var ErrNoContext = canvas.ErrNoContext

// Config patches a Drawer. Nil fields are left alone; inside
// ColorOverrides empty strings are.
type Config struct {
	ColorOverrides  *ColorMap
	StylePrecedence *StylePrecedence
}

// DrawOptions filters a DrawElements call. No layers means all layers.
type DrawOptions struct {
	Layers []string
}

// Option configures a Drawer at construction
type Option func(*Drawer)

// WithLogger sets the logger skipped geometry is reported to at debug level
func WithLogger(logger *log.Logger) Option {
	return func(d *Drawer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTheme starts the Drawer from a built-in color map
func WithTheme(t Theme) Option {
	return func(d *Drawer) {
		d.colors = ThemeColorMap(t)
	}
}

// Drawer renders circuit elements onto one drawing context. It owns the
// board-to-pixel transform and the color map. A Drawer is not safe for
// concurrent use.
type Drawer struct {
	ctx        canvas.Context
	colors     ColorMap
	precedence StylePrecedence
	transform  geom.Matrix
	logger     *log.Logger
}

// New creates a Drawer on an acquired context
func New(ctx canvas.Context, opts ...Option) *Drawer {
	d := &Drawer{
		ctx:        ctx,
		colors:     DefaultColorMap(),
		precedence: PolicyWins,
		transform:  geom.Identity(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewFromProvider acquires a 2D context from p and creates a Drawer on it
func NewFromProvider(p canvas.Provider, opts ...Option) (*Drawer, error) {
	if p == nil {
		return nil, fmt.Errorf("failed to get 2D context: %w", ErrNoContext)
	}
	ctx, err := p.Context2D()
	if err != nil {
		return nil, fmt.Errorf("failed to get 2D context: %w", err)
	}
	if ctx == nil {
		return nil, fmt.Errorf("failed to get 2D context: %w", ErrNoContext)
	}
	return New(ctx, opts...), nil
}

// Configure merges cfg into the Drawer's settings
func (d *Drawer) Configure(cfg Config) {
	if cfg.ColorOverrides != nil {
		d.colors = d.colors.Merge(*cfg.ColorOverrides)
	}
	if cfg.StylePrecedence != nil {
		d.precedence = *cfg.StylePrecedence
	}
}

// Colors returns the active color map
func (d *Drawer) Colors() ColorMap {
	return d.colors
}

// Context returns the drawing context
func (d *Drawer) Context() canvas.Context {
	return d.ctx
}

// SetCameraBounds fits bounds to the current surface size. The size is
// read once; resizing the surface later does not update the transform.
func (d *Drawer) SetCameraBounds(bounds geom.Bounds) {
	size := d.ctx.Canvas()
	d.transform = ComputeTransform(bounds, size.Width, size.Height)
	if !d.transform.IsFinite() {
		d.logger.Debug("camera transform is not finite", "bounds", bounds)
	}
}

// Transform returns the active board-to-pixel transform
func (d *Drawer) Transform() geom.Matrix {
	return d.transform
}

// DrawBackground fills the whole surface with the background color
func (d *Drawer) DrawBackground() {
	size := d.ctx.Canvas()
	d.ctx.Save()
	defer d.ctx.Restore()
	d.ctx.SetFillStyle(d.colors.Background)
	d.ctx.FillRect(0, 0, float64(size.Width), float64(size.Height))
}

// DrawElements draws elements in order, skipping those on no requested
// layer and those of kinds that have no renderer
func (d *Drawer) DrawElements(elements []circuit.Element, opts DrawOptions) {
	filter := NewLayerFilter(opts.Layers...)
	for _, e := range elements {
		if !filter.Accepts(e) {
			continue
		}
		d.drawElement(e)
	}
}

func (d *Drawer) drawElement(e circuit.Element) {
	switch el := e.(type) {
	case circuit.PlatedHole:
		if !DrawPlatedHole(d.ctx, el, d.colors, d.transform) {
			d.logger.Debug("skipping plated hole with unsupported shape", "id", el.ID(), "shape", el.Shape)
		}
	case circuit.SMTPad:
		if !DrawSMTPad(d.ctx, el, d.colors, d.transform) {
			d.logger.Debug("skipping smt pad with unsupported shape", "id", el.ID(), "shape", el.Shape)
		}
	case circuit.Via:
		DrawVia(d.ctx, el, d.colors, d.transform)
	case circuit.CopperPour:
		face, ok := copperPourFace(el)
		if !ok {
			d.logger.Debug("skipping copper pour without geometry", "id", el.ID(), "shape", el.Shape)
			return
		}
		style := ResolveStyle(circuit.Style{}, el.Layer, d.colors, d.precedence)
		d.drawFaces(el.ID(), []circuit.Face{face}, style)
	case circuit.BrepShape:
		style := ResolveStyle(el.Style, el.Layer, d.colors, d.precedence)
		d.drawFaces(el.ID(), el.Geometry.Faces, style)
	case circuit.Unknown:
		// no renderer for this kind
		d.logger.Debug("skipping unhandled element", "type", el.Type)
	default:
		d.logger.Debug("skipping unhandled element", "type", fmt.Sprintf("%T", e))
	}
}

func (d *Drawer) drawFaces(id string, faces []circuit.Face, style Style) {
	if skipped := DrawFaces(d.ctx, faces, style, d.transform); skipped > 0 {
		d.logger.Debug("skipped degenerate faces", "id", id, "count", skipped)
	}
}

// DrawRatsNest overlays unrouted connections between the elements of each
// net in conn
func (d *Drawer) DrawRatsNest(elements []circuit.Element, conn *circuit.ConnectivityMap) {
	n := DrawRatsNest(d.ctx, elements, conn, d.colors, d.transform)
	d.logger.Debug("drew rats nest", "nets", conn.Len(), "lines", n)
}
