// Package canvastest provides a canvas.Context that records every call,
// for tests that assert on drawing commands rather than pixels.
package canvastest

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
)

// Call is one recorded method invocation
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name + "()"
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder records calls and tracks just enough state (global alpha and
// the save stack) to answer GlobalAlpha.
type Recorder struct {
	Size  canvas.Size
	Calls []Call

	alpha  float64
	alphas []float64
}

var _ canvas.Context = (*Recorder)(nil)

// NewRecorder returns a recorder reporting the given surface size
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Size: canvas.Size{Width: width, Height: height}, alpha: 1}
}

// Context2D makes a Recorder its own canvas.Provider
func (r *Recorder) Context2D() (canvas.Context, error) {
	return r, nil
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

// Reset drops recorded calls
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count returns how many times name was called
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the calls named name, in order
func (r *Recorder) Filter(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the sequence of called method names
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Name
	}
	return out
}

func (r *Recorder) Canvas() canvas.Size { return r.Size }

func (r *Recorder) Save() {
	r.alphas = append(r.alphas, r.alpha)
	r.record("Save")
}

func (r *Recorder) Restore() {
	if n := len(r.alphas); n > 0 {
		r.alpha = r.alphas[n-1]
		r.alphas = r.alphas[:n-1]
	}
	r.record("Restore")
}

func (r *Recorder) BeginPath()          { r.record("BeginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.record("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.record("LineTo", x, y) }

func (r *Recorder) Arc(x, y, radius, start, end float64, counterClockwise bool) {
	r.record("Arc", x, y, radius, start, end, counterClockwise)
}

func (r *Recorder) ArcTo(x1, y1, x2, y2, radius float64) {
	r.record("ArcTo", x1, y1, x2, y2, radius)
}

func (r *Recorder) Rect(x, y, w, h float64)     { r.record("Rect", x, y, w, h) }
func (r *Recorder) ClosePath()                  { r.record("ClosePath") }
func (r *Recorder) Fill()                       { r.record("Fill") }
func (r *Recorder) Stroke()                     { r.record("Stroke") }
func (r *Recorder) FillRect(x, y, w, h float64) { r.record("FillRect", x, y, w, h) }

func (r *Recorder) SetFillStyle(style string)   { r.record("SetFillStyle", style) }
func (r *Recorder) SetStrokeStyle(style string) { r.record("SetStrokeStyle", style) }
func (r *Recorder) SetLineWidth(width float64)  { r.record("SetLineWidth", width) }

func (r *Recorder) SetLineDash(segments []float64) {
	r.record("SetLineDash", append([]float64(nil), segments...))
}

func (r *Recorder) SetGlobalAlpha(alpha float64) {
	r.alpha = alpha
	r.record("SetGlobalAlpha", alpha)
}

func (r *Recorder) GlobalAlpha() float64 { return r.alpha }

func (r *Recorder) SetGlobalCompositeOperation(op canvas.CompositeOp) {
	r.record("SetGlobalCompositeOperation", op)
}

func (r *Recorder) Translate(x, y float64) { r.record("Translate", x, y) }
func (r *Recorder) Rotate(angle float64)   { r.record("Rotate", angle) }
