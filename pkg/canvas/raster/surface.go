// Package raster is a software implementation of canvas.Context that draws
// into an *image.RGBA. Coverage is computed with golang.org/x/image/vector;
// compositing (source-over and destination-out) and stroking are done here.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/OpenTraceLab/pcbcanvas/pkg/canvas"
)

// Surface owns a premultiplied RGBA pixel buffer and the single 2D context
// that draws into it
type Surface struct {
	img *image.RGBA
	ctx *Context
}

// NewSurface creates a transparent surface of the given size
func NewSurface(width, height int) *Surface {
	return NewSurfaceForImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewSurfaceForImage wraps an existing image. Drawing writes into img.
func NewSurfaceForImage(img *image.RGBA) *Surface {
	return &Surface{img: img}
}

// Context2D returns the surface's drawing context. Every call returns the
// same context, as a browser canvas does.
func (s *Surface) Context2D() (canvas.Context, error) {
	if s == nil || s.img == nil {
		return nil, canvas.ErrNoContext
	}
	if s.ctx == nil {
		s.ctx = newContext(s.img)
	}
	return s.ctx, nil
}

// Image returns the backing image
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Width returns the surface width in pixels
func (s *Surface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the surface height in pixels
func (s *Surface) Height() int {
	return s.img.Bounds().Dy()
}

// Clear fills the whole surface with c, replacing existing pixels
func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// EncodePNG writes the surface as PNG
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes the surface to a PNG file
func (s *Surface) SavePNG(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := s.EncodePNG(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
