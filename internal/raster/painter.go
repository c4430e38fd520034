package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/gogpu/papercut/internal/history"
)

// Style is the fixed look of strokes and cut highlights.
type Style struct {
	InkColor   color.NRGBA
	InkWidth   float64
	EraseWidth float64

	CutFill      color.NRGBA // translucent live-cut highlight
	CutOutline   color.NRGBA
	OutlineWidth float64

	GuideColor color.NRGBA
	GuideWidth float64 // screen pixels
}

// DefaultStyle returns the editor's stock styling.
func DefaultStyle() Style {
	return Style{
		InkColor:     color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		InkWidth:     3,
		EraseWidth:   8,
		CutFill:      color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0x59},
		CutOutline:   color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF},
		OutlineWidth: 3,
		GuideColor:   color.NRGBA{A: 0x80},
		GuideWidth:   2,
	}
}

// Painter applies commands to layers of one fixed size.
type Painter struct {
	rast  *Rasterizer
	style Style
}

// NewPainter returns a Painter for width×height layers.
func NewPainter(width, height int, style Style) *Painter {
	return &Painter{rast: NewRasterizer(width, height), style: style}
}

// Rasterizer returns the painter's coverage rasterizer.
func (p *Painter) Rasterizer() *Rasterizer { return p.rast }

// Style returns the painter's styling.
func (p *Painter) Style() Style { return p.style }

// Apply renders the visual effect of cmd into dst. m maps model space into
// dst pixels. A non-nil clip limits the effect to its coverage.
//
// A Cut punches a transparent hole shaped like its polygon. Ink and erase
// strokes are painted with the quadratic smoothing of Smooth. A ClearMarker
// makes dst fully transparent. Commands without enough geometry do nothing.
func (p *Painter) Apply(dst *image.RGBA, cmd history.Command, m gg.Matrix, clip *image.Alpha) {
	if !cmd.Drawable() {
		return
	}
	switch cmd.Kind {
	case history.KindCut:
		cov := p.rast.Fill(m, Polygon(cmd.Points))
		Punch(dst, Intersect(cov, clip))
	case history.KindInk:
		cov := p.rast.Stroke(m, p.style.InkWidth, Smooth(cmd.Points))
		Paint(dst, Intersect(cov, clip), p.style.InkColor)
	case history.KindErase:
		cov := p.rast.Stroke(m, p.style.EraseWidth, Smooth(cmd.Points))
		Paint(dst, Intersect(cov, clip), cmd.Color)
	case history.KindClear:
		Reset(dst)
	}
}
