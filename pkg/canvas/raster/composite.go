package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/OpenTraceLab/pcbcanvas/pkg/geom"
)

// coordLimit keeps coordinates within what the rasterizer indexes safely
const coordLimit = 1 << 20

// coverage rasterizes polygons into an alpha mask the size of bounds.
// Polygons holding non-finite coordinates are skipped. It returns nil when
// nothing was added.
func coverage(bounds image.Rectangle, polys [][]geom.Point) *image.Alpha {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	added := 0
	for _, poly := range polys {
		if len(poly) < 3 || !finite(poly) {
			continue
		}
		ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
		z.MoveTo(f32(poly[0].X-ox), f32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			z.LineTo(f32(p.X-ox), f32(p.Y-oy))
		}
		z.ClosePath()
		added++
	}
	if added == 0 {
		return nil
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func finite(poly []geom.Point) bool {
	for _, p := range poly {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

func f32(v float64) float32 {
	return float32(clamp(v, -coordLimit, coordLimit))
}

// over composites col scaled by alpha through mask with source-over
func over(dst *image.RGBA, mask *image.Alpha, col color.NRGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	src := col
	src.A = uint8(math.Round(clamp(alpha, 0, 1) * 255))
	r := dst.Bounds()
	draw.DrawMask(dst, r, image.NewUniform(src), image.Point{}, mask, image.Point{}, draw.Over)
}

// erase applies destination-out: every channel of dst is scaled by one
// minus the source coverage times alpha
func erase(dst *image.RGBA, mask *image.Alpha, alpha float64) {
	if alpha <= 0 {
		return
	}
	b := dst.Bounds()
	for y := 0; y < b.Dy(); y++ {
		mi := y * mask.Stride
		di := y * dst.Stride
		for x := 0; x < b.Dx(); x, mi, di = x+1, mi+1, di+4 {
			m := mask.Pix[mi]
			if m == 0 {
				continue
			}
			k := 1 - float64(m)/255*alpha
			for j := 0; j < 4; j++ {
				dst.Pix[di+j] = uint8(math.Round(float64(dst.Pix[di+j]) * k))
			}
		}
	}
}

// signedArea is positive for polygons wound clockwise on screen
func signedArea(poly []geom.Point) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}

// orientPositive makes stroke pieces share one winding so overlaps
// accumulate rather than cancel
func orientPositive(poly []geom.Point) []geom.Point {
	if signedArea(poly) >= 0 {
		return poly
	}
	out := make([]geom.Point, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}
