package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// miterLimit is the canvas default ratio of miter length to line width
const miterLimit = 10

type state struct {
	fill      color.NRGBA
	stroke    color.NRGBA
	lineWidth float64
	dash      []float64
	alpha     float64
	op        canvas.CompositeOp
	m         geom.Matrix
}

func defaultState() state {
	black := color.NRGBA{A: 0xff}
	return state{
		fill:      black,
		stroke:    black,
		lineWidth: 1,
		alpha:     1,
		op:        canvas.SourceOver,
		m:         geom.Identity(),
	}
}

// Context draws into an *image.RGBA. It is not safe for concurrent use.
type Context struct {
	img   *image.RGBA
	cur   state
	stack []state
	path  path
}

var _ canvas.Context = (*Context)(nil)

func newContext(img *image.RGBA) *Context {
	return &Context{img: img, cur: defaultState()}
}

func (c *Context) Canvas() canvas.Size {
	b := c.img.Bounds()
	return canvas.Size{Width: b.Dx(), Height: b.Dy()}
}

func (c *Context) Save() {
	s := c.cur
	s.dash = append([]float64(nil), c.cur.dash...)
	c.stack = append(c.stack, s)
}

// Restore pops the saved state. An unbalanced Restore is ignored.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) BeginPath() {
	c.path.reset()
}

func (c *Context) MoveTo(x, y float64) {
	c.path.moveTo(c.cur.m.Apply(geom.Pt(x, y)))
}

func (c *Context) LineTo(x, y float64) {
	c.path.lineTo(c.cur.m.Apply(geom.Pt(x, y)))
}

func (c *Context) ClosePath() {
	c.path.close()
}

func (c *Context) Rect(x, y, w, h float64) {
	m := c.cur.m
	c.path.moveTo(m.Apply(geom.Pt(x, y)))
	c.path.lineTo(m.Apply(geom.Pt(x+w, y)))
	c.path.lineTo(m.Apply(geom.Pt(x+w, y+h)))
	c.path.lineTo(m.Apply(geom.Pt(x, y+h)))
	c.path.close()
}

func (c *Context) Arc(x, y, radius, start, end float64, counterClockwise bool) {
	if radius < 0 {
		return
	}
	sweep := arcSweep(start, end, counterClockwise)
	c.arcPoints(geom.Pt(x, y), radius, start, sweep, true)
}

// arcPoints appends the flattened arc. The first point is connected to the
// current point with a line, or starts a new subpath when there is none.
func (c *Context) arcPoints(center geom.Point, radius, start, sweep float64, connect bool) {
	m := c.cur.m
	n := arcSegments(radius*m.LinearScale(), sweep)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		p := m.Apply(geom.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a)))
		if i == 0 && (!connect || !c.path.hasCurrent()) {
			c.path.moveTo(p)
			continue
		}
		c.path.lineTo(p)
	}
}

func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) {
	if radius < 0 {
		return
	}
	m := c.cur.m
	p1 := geom.Pt(x1, y1)
	p2 := geom.Pt(x2, y2)
	if !c.path.hasCurrent() {
		c.path.moveTo(m.Apply(p1))
	}
	p0 := m.Invert().Apply(c.path.current())

	v1 := p0.Sub(p1)
	v2 := p2.Sub(p1)
	if radius == 0 || v1.Len() == 0 || v2.Len() == 0 || math.Abs(v1.Unit().Cross(v2.Unit())) < 1e-12 {
		c.path.lineTo(m.Apply(p1))
		return
	}
	u1 := v1.Unit()
	u2 := v2.Unit()
	theta := math.Acos(clamp(u1.Dot(u2), -1, 1))
	t := radius / math.Tan(theta/2)
	t1 := p1.Add(u1.Mul(t))
	t2 := p1.Add(u2.Mul(t))
	center := p1.Add(u1.Add(u2).Unit().Mul(radius / math.Sin(theta/2)))

	a0 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	a1 := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep <= -math.Pi {
		sweep += 2 * math.Pi
	}
	c.path.lineTo(m.Apply(t1))
	c.arcPoints(center, radius, a0, sweep, true)
}

func (c *Context) Fill() {
	c.fillPath(&c.path, c.cur.fill)
}

func (c *Context) FillRect(x, y, w, h float64) {
	var p path
	m := c.cur.m
	p.moveTo(m.Apply(geom.Pt(x, y)))
	p.lineTo(m.Apply(geom.Pt(x+w, y)))
	p.lineTo(m.Apply(geom.Pt(x+w, y+h)))
	p.lineTo(m.Apply(geom.Pt(x, y+h)))
	p.close()
	c.fillPath(&p, c.cur.fill)
}

func (c *Context) fillPath(p *path, col color.NRGBA) {
	var polys [][]geom.Point
	for _, sp := range p.subpaths {
		if len(sp.pts) >= 3 {
			polys = append(polys, sp.pts)
		}
	}
	c.paint(polys, col)
}

func (c *Context) Stroke() {
	width := c.cur.lineWidth * c.cur.m.LinearScale()
	if !(width > 0) {
		return
	}
	var dash []float64
	if len(c.cur.dash) > 0 {
		scale := c.cur.m.LinearScale()
		dash = make([]float64, len(c.cur.dash))
		for i, d := range c.cur.dash {
			dash[i] = d * scale
		}
	}
	var polys [][]geom.Point
	for _, sp := range c.path.subpaths {
		polys = append(polys, strokeSubpath(sp.pts, sp.closed, width, dash)...)
	}
	for i, poly := range polys {
		polys[i] = orientPositive(poly)
	}
	c.paint(polys, c.cur.stroke)
}

func (c *Context) paint(polys [][]geom.Point, col color.NRGBA) {
	if len(polys) == 0 {
		return
	}
	mask := coverage(c.img.Bounds(), polys)
	if mask == nil {
		return
	}
	alpha := float64(col.A) / 255 * c.cur.alpha
	switch c.cur.op {
	case canvas.DestinationOut:
		erase(c.img, mask, alpha)
	default:
		over(c.img, mask, col, alpha)
	}
}

// SetFillStyle accepts a CSS color. Unparseable values are ignored.
func (c *Context) SetFillStyle(style string) {
	if col, err := canvas.ParseColor(style); err == nil {
		c.cur.fill = col
	}
}

// SetStrokeStyle accepts a CSS color. Unparseable values are ignored.
func (c *Context) SetStrokeStyle(style string) {
	if col, err := canvas.ParseColor(style); err == nil {
		c.cur.stroke = col
	}
}

// SetLineWidth ignores zero, negative and non-finite widths
func (c *Context) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) {
		c.cur.lineWidth = width
	}
}

// SetLineDash ignores patterns with negative or non-finite entries. An odd
// pattern is repeated to make it even; an all-zero pattern draws solid.
func (c *Context) SetLineDash(segments []float64) {
	var sum float64
	for _, s := range segments {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return
		}
		sum += s
	}
	if sum == 0 {
		c.cur.dash = nil
		return
	}
	dash := append([]float64(nil), segments...)
	if len(dash)%2 == 1 {
		dash = append(dash, segments...)
	}
	c.cur.dash = dash
}

// SetGlobalAlpha ignores values outside [0, 1]
func (c *Context) SetGlobalAlpha(alpha float64) {
	if alpha >= 0 && alpha <= 1 {
		c.cur.alpha = alpha
	}
}

func (c *Context) GlobalAlpha() float64 {
	return c.cur.alpha
}

// SetGlobalCompositeOperation ignores unsupported operations
func (c *Context) SetGlobalCompositeOperation(op canvas.CompositeOp) {
	switch op {
	case canvas.SourceOver, canvas.DestinationOut:
		c.cur.op = op
	}
}

func (c *Context) Translate(x, y float64) {
	c.cur.m = c.cur.m.Multiply(geom.Translate(x, y))
}

func (c *Context) Rotate(angle float64) {
	c.cur.m = c.cur.m.Multiply(geom.Rotate(angle))
}

// arcSweep normalizes the angular extent of a canvas arc
func arcSweep(start, end float64, ccw bool) float64 {
	sweep := end - start
	if !ccw {
		if sweep >= 2*math.Pi {
			return 2 * math.Pi
		}
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
		return sweep
	}
	if sweep <= -2*math.Pi {
		return -2 * math.Pi
	}
	sweep = math.Mod(sweep, 2*math.Pi)
	if sweep > 0 {
		sweep -= 2 * math.Pi
	}
	return sweep
}

// arcSegments picks a segment count keeping the chord error under a tenth
// of a pixel
func arcSegments(deviceRadius, sweep float64) int {
	const tolerance = 0.1
	if !(deviceRadius > tolerance) || math.IsInf(deviceRadius, 0) {
		return 4
	}
	step := 2 * math.Acos(1-tolerance/deviceRadius)
	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 1 {
		n = 1
	}
	if n > 1024 {
		n = 1024
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
