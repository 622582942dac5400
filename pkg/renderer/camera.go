// Package renderer draws circuit elements onto a canvas.Context: it maps
// board coordinates to pixels, tessellates boundary loops, renders pads,
// holes, vias and copper shapes, and overlays the rats nest.
package renderer

import (
	"math"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// ComputeTransform fits bounds into a width x height pixel surface.
// The scale is the same on both axes (the smaller of the two fits) and the
// content is centered, so a board point p maps to
// offset + scale*(p - bounds.Min).
//
// Zero-width or zero-height bounds give a non-finite matrix.
func ComputeTransform(bounds geom.Bounds, width, height int) geom.Matrix {
	canvasW := float64(width)
	canvasH := float64(height)
	realW := bounds.MaxX - bounds.MinX
	realH := bounds.MaxY - bounds.MinY

	s := math.Min(canvasW/realW, canvasH/realH)

	offsetX := (canvasW - realW*s) / 2
	offsetY := (canvasH - realH*s) / 2

	return geom.Compose(
		geom.Translate(offsetX, offsetY),
		geom.Scale(s, s),
		geom.Translate(-bounds.MinX, -bounds.MinY),
	)
}

// FitBounds pads bounds by a fraction of their larger side, so content
// does not touch the surface edge. Bounds around a single point grow by
// one unit. Empty bounds are returned unchanged.
func FitBounds(bounds geom.Bounds, margin float64) geom.Bounds {
	if bounds.IsEmpty() {
		return bounds
	}
	pad := math.Max(bounds.Width(), bounds.Height()) * margin
	if pad == 0 {
		pad = 1
	}
	return bounds.Pad(pad)
}
