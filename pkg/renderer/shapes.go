package renderer

import (
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// DrawPolygon fills a polygon given in board coordinates
func DrawPolygon(ctx canvas.Context, points []geom.Point, fill string, m geom.Matrix) {
	if len(points) == 0 {
		return
	}
	ctx.Save()
	defer ctx.Restore()

	ctx.BeginPath()
	tracePolyline(ctx, points, m)
	ctx.ClosePath()
	ctx.SetFillStyle(fill)
	ctx.Fill()
}

// DrawPath strokes a polyline given in board coordinates. The line width
// is in board units and scales with m. With closePath set the last point is
// joined back to the first.
func DrawPath(ctx canvas.Context, points []geom.Point, stroke string, width float64, m geom.Matrix, closePath bool) {
	if len(points) == 0 {
		return
	}
	ctx.Save()
	defer ctx.Restore()

	ctx.BeginPath()
	tracePolyline(ctx, points, m)
	if closePath {
		ctx.ClosePath()
	}
	ctx.SetStrokeStyle(stroke)
	ctx.SetLineWidth(width * m.ScaleFactor())
	ctx.Stroke()
}

func tracePolyline(ctx canvas.Context, points []geom.Point, m geom.Matrix) {
	for i, p := range points {
		q := m.Apply(p)
		if i == 0 {
			ctx.MoveTo(q.X, q.Y)
		} else {
			ctx.LineTo(q.X, q.Y)
		}
	}
}

// Rect describes a filled rectangle primitive in board coordinates.
// Rotation is in degrees, counter-clockwise on the board.
type Rect struct {
	Center       geom.Point
	Width        float64
	Height       float64
	Fill         string
	BorderRadius float64
	Rotation     float64
}

// DrawRect fills a rectangle. Only the center goes through m; the sizes
// are scaled by m.ScaleFactor(), so m must not shear or scale the axes
// differently.
func DrawRect(ctx canvas.Context, r Rect, m geom.Matrix) {
	c := m.Apply(r.Center)
	s := m.ScaleFactor()
	w := r.Width * s
	h := r.Height * s
	radius := r.BorderRadius * s

	ctx.Save()
	defer ctx.Restore()

	ctx.Translate(c.X, c.Y)
	if r.Rotation != 0 {
		ctx.Rotate(-r.Rotation * math.Pi / 180)
	}

	ctx.BeginPath()
	if radius > 0 {
		x := -w / 2
		y := -h / 2
		rr := math.Min(radius, math.Min(w/2, h/2))

		ctx.MoveTo(x+rr, y)
		ctx.LineTo(x+w-rr, y)
		ctx.ArcTo(x+w, y, x+w, y+rr, rr)
		ctx.LineTo(x+w, y+h-rr)
		ctx.ArcTo(x+w, y+h, x+w-rr, y+h, rr)
		ctx.LineTo(x+rr, y+h)
		ctx.ArcTo(x, y+h, x, y+h-rr, rr)
		ctx.LineTo(x, y+rr)
		ctx.ArcTo(x, y, x+rr, y, rr)
	} else {
		ctx.Rect(-w/2, -h/2, w, h)
	}

	ctx.SetFillStyle(r.Fill)
	ctx.Fill()
}

// DrawCircle fills a circle of the given board radius
func DrawCircle(ctx canvas.Context, center geom.Point, radius float64, fill string, m geom.Matrix) {
	c := m.Apply(center)
	r := radius * m.ScaleFactor()

	ctx.Save()
	defer ctx.Restore()

	ctx.BeginPath()
	ctx.Arc(c.X, c.Y, r, 0, 2*math.Pi, false)
	ctx.SetFillStyle(fill)
	ctx.Fill()
}

// Pill describes a stadium: a rectangle whose short sides are half circles
type Pill struct {
	Center   geom.Point
	Width    float64
	Height   float64
	Fill     string
	Rotation float64
}

// DrawPill fills a pill. A square pill is a circle.
func DrawPill(ctx canvas.Context, p Pill, m geom.Matrix) {
	c := m.Apply(p.Center)
	s := m.ScaleFactor()
	w := p.Width * s
	h := p.Height * s

	ctx.Save()
	defer ctx.Restore()

	ctx.Translate(c.X, c.Y)
	if p.Rotation != 0 {
		ctx.Rotate(-p.Rotation * math.Pi / 180)
	}

	ctx.BeginPath()
	if w >= h {
		r := h / 2
		straight := w/2 - r
		ctx.Arc(-straight, 0, r, math.Pi/2, 3*math.Pi/2, false)
		ctx.Arc(straight, 0, r, -math.Pi/2, math.Pi/2, false)
	} else {
		r := w / 2
		straight := h/2 - r
		ctx.Arc(0, -straight, r, math.Pi, 2*math.Pi, false)
		ctx.Arc(0, straight, r, 0, math.Pi, false)
	}
	ctx.ClosePath()

	ctx.SetFillStyle(p.Fill)
	ctx.Fill()
}
