// Package raster renders the command log into pixel buffers.
//
// Path geometry is rasterised by a gg software context into coverage masks
// (*image.Alpha). Clipping, hole punching and painting are all expressed as
// mask arithmetic and Porter-Duff compositing on premultiplied *image.RGBA
// layers, so every raster operation is integer and deterministic.
package raster

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/papercut/internal/geom"
)

// PathFunc appends a path to dc. Coordinates go through dc's transform.
type PathFunc func(dc *gg.Context)

// Rasterizer converts paths into anti-aliased coverage masks.
//
// It owns one scratch gg.Context: the path is filled or stroked in opaque
// white on a transparent surface and the alpha channel is read back as the
// coverage.
type Rasterizer struct {
	dc   *gg.Context
	rect image.Rectangle
}

// NewRasterizer returns a Rasterizer producing masks of the given size.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		dc:   gg.NewContext(width, height),
		rect: image.Rect(0, 0, width, height),
	}
}

// Bounds returns the mask rectangle.
func (r *Rasterizer) Bounds() image.Rectangle { return r.rect }

// Fill returns the coverage of the closed path built by path under m.
func (r *Rasterizer) Fill(m gg.Matrix, path PathFunc) *image.Alpha {
	return r.cover(m, path, 0)
}

// Stroke returns the coverage of the path stroked with round caps and
// joins. width is in path units and scales with m.
func (r *Rasterizer) Stroke(m gg.Matrix, width float64, path PathFunc) *image.Alpha {
	if width <= 0 {
		return image.NewAlpha(r.rect)
	}
	return r.cover(m, path, width)
}

func (r *Rasterizer) cover(m gg.Matrix, path PathFunc, width float64) *image.Alpha {
	dc := r.dc
	dc.Clear()
	dc.ClearPath()
	dc.SetTransform(m)
	dc.SetRGBA(1, 1, 1, 1)
	dc.SetFillRule(gg.FillRuleNonZero)
	path(dc)

	var err error
	if width > 0 {
		dc.SetLineWidth(width)
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
		err = dc.Stroke()
	} else {
		err = dc.Fill()
	}

	mask := image.NewAlpha(r.rect)
	if err != nil {
		slogger().Warn("raster: coverage failed", "stroke", width > 0, "err", err)
		return mask
	}
	data := dc.ResizeTarget().Data()
	for i := range mask.Pix {
		mask.Pix[i] = data[i*4+3]
	}
	return mask
}

// Polygon builds a closed polygon through pts.
func Polygon(pts []geom.ModelPoint) PathFunc {
	return func(dc *gg.Context) {
		if len(pts) == 0 {
			return
		}
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	}
}

// Polyline builds an open polyline through pts.
func Polyline(pts []geom.ModelPoint) PathFunc {
	return func(dc *gg.Context) {
		if len(pts) == 0 {
			return
		}
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
	}
}

// Smooth builds an open stroke through pts with quadratic segments: each
// interior point is a control point and the curve passes through the
// midpoints between consecutive points.
func Smooth(pts []geom.ModelPoint) PathFunc {
	return func(dc *gg.Context) {
		n := len(pts)
		if n < 2 {
			return
		}
		dc.MoveTo(pts[0].X, pts[0].Y)
		for i := 1; i < n-1; i++ {
			mid := pts[i].Vec().Lerp(pts[i+1].Vec(), 0.5)
			dc.QuadraticTo(pts[i].X, pts[i].Y, mid.X, mid.Y)
		}
		dc.LineTo(pts[n-1].X, pts[n-1].Y)
	}
}

// Silhouette builds the paper outline centred on the origin. radius is the
// circle radius or half the square side.
func Silhouette(shape geom.Shape, radius float64) PathFunc {
	return func(dc *gg.Context) {
		if shape == geom.ShapeSquare {
			dc.DrawRectangle(-radius, -radius, 2*radius, 2*radius)
			return
		}
		dc.DrawCircle(0, 0, radius)
	}
}

// Dots builds one circle of the given radius around each point.
func Dots(pts []geom.ModelPoint, radius float64) PathFunc {
	return func(dc *gg.Context) {
		for _, p := range pts {
			dc.NewSubPath()
			dc.DrawCircle(p.X, p.Y, radius)
		}
	}
}

// Centered returns the transform that places the model origin at the
// middle of a size×size raster.
func Centered(size int) gg.Matrix {
	c := float64(size) / 2
	return gg.Translate(c, c)
}

// Fitted returns the transform that maps a canvas×canvas model square,
// centred on the origin, uniformly onto the middle of a width×height raster.
func Fitted(canvas float64, width, height int) gg.Matrix {
	k := math.Min(float64(width), float64(height)) / canvas
	return gg.Translate(float64(width)/2, float64(height)/2).Multiply(gg.Scale(k, k))
}
