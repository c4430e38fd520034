package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Porter-Duff helpers on premultiplied 8-bit values.

// mulDiv255 computes (a * b) / 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// NewLayer returns a transparent premultiplied layer.
func NewLayer(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Reset makes every pixel of dst transparent.
func Reset(dst *image.RGBA) {
	clear(dst.Pix)
}

// FillColor replaces every pixel of dst with c.
func FillColor(dst *image.RGBA, c color.Color) {
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Paint composites c over dst through coverage (source-over).
// A nil coverage paints everywhere.
func Paint(dst *image.RGBA, coverage *image.Alpha, c color.Color) {
	if coverage == nil {
		xdraw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Over)
		return
	}
	xdraw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, coverage, image.Point{}, xdraw.Over)
}

// Punch removes dst content where coverage is set (destination-out with the
// coverage as source alpha): D' = D * (1 - Sa).
func Punch(dst *image.RGBA, coverage *image.Alpha) {
	for i, a := range coverage.Pix {
		if a == 0 {
			continue
		}
		keep := 255 - a
		p := dst.Pix[i*4 : i*4+4 : i*4+4]
		p[0] = mulDiv255(p[0], keep)
		p[1] = mulDiv255(p[1], keep)
		p[2] = mulDiv255(p[2], keep)
		p[3] = mulDiv255(p[3], keep)
	}
}

// Intersect multiplies mask by clip in place and returns mask. A nil clip
// leaves mask unchanged.
func Intersect(mask, clip *image.Alpha) *image.Alpha {
	if clip == nil {
		return mask
	}
	for i, c := range clip.Pix {
		mask.Pix[i] = mulDiv255(mask.Pix[i], c)
	}
	return mask
}
