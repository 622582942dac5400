// Package canvas defines the 2D drawing-surface capability the renderer
// draws through. It mirrors the HTML canvas 2D context closely enough that
// any immediate-mode raster backend can implement it.
package canvas

import "errors"

// ErrNoContext is returned by a Provider that cannot produce a 2D context
var ErrNoContext = errors.New("no 2D drawing context available")

// CompositeOp selects how drawn pixels combine with the existing surface
type CompositeOp string

const (
	// SourceOver paints new coverage over existing pixels
	SourceOver CompositeOp = "source-over"
	// DestinationOut erases existing pixels where new coverage lands; only
	// the source alpha matters, its color is ignored
	DestinationOut CompositeOp = "destination-out"
)

// Size is a surface size in pixels
type Size struct {
	Width  int
	Height int
}

// Context is an immediate-mode 2D drawing context.
//
// Path coordinates are transformed by the current transform when they are
// added. Save pushes the whole drawing state (styles, line width, dash,
// global alpha, composite operation, transform); Restore pops it.
// The current path is not part of the saved state.
type Context interface {
	// Canvas returns the surface size in pixels
	Canvas() Size

	Save()
	Restore()

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc around (x, y) from angle start to end
	// (radians), clockwise on screen unless counterClockwise is set
	Arc(x, y, radius, start, end float64, counterClockwise bool)
	// ArcTo adds a line to the tangent point and an arc of the given
	// radius tangent to the lines (current→1) and (1→2)
	ArcTo(x1, y1, x2, y2, radius float64)
	Rect(x, y, w, h float64)
	ClosePath()

	Fill()
	Stroke()
	FillRect(x, y, w, h float64)

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(width float64)
	SetLineDash(segments []float64)
	SetGlobalAlpha(alpha float64)
	GlobalAlpha() float64
	SetGlobalCompositeOperation(op CompositeOp)

	Translate(x, y float64)
	Rotate(angle float64)
}

// Provider is anything that can hand out a 2D context, such as a surface
// that owns its pixels
type Provider interface {
	Context2D() (Context, error)
}
