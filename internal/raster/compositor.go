package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/papercut/internal/geom"
	"github.com/gogpu/papercut/internal/history"
)

// bezierDotRadius is the control point marker size in screen pixels.
const bezierDotRadius = 6

// EditScene is everything the edit canvas shows.
type EditScene struct {
	View       geom.View
	Sheet      Sheet
	Background color.NRGBA

	Data *image.RGBA
	Live *image.RGBA // nil when no gesture is active

	// LiveUnclipped shows the live layer outside the editable region.
	LiveUnclipped bool

	Guides      bool
	Bezier      []geom.ModelPoint
	BezierSharp bool
}

// PreviewScene is everything the unfolded preview shows.
type PreviewScene struct {
	Sheet      Sheet
	Background color.NRGBA
	Cuts       []history.Command
	LiveCut    []geom.ModelPoint
}

// Compositor renders the two output canvases. It keeps one painter per
// output so alternating edit and preview frames do not reallocate.
type Compositor struct {
	style   Style
	edit    *Painter
	preview *Painter
	scratch *image.RGBA
}

// NewCompositor returns a Compositor using style.
func NewCompositor(style Style) *Compositor {
	return &Compositor{style: style}
}

func (c *Compositor) painterFor(p **Painter, w, h int) *Painter {
	if *p == nil || (*p).Rasterizer().Bounds() != image.Rect(0, 0, w, h) {
		*p = NewPainter(w, h, c.style)
	}
	return *p
}

// Edit draws the edit canvas into dst: the data layer and live layer under
// the view transform, clipped to the paper (unfolded) or the active wedge,
// then fold guides and the Bezier overlay.
func (c *Compositor) Edit(dst *image.RGBA, s EditScene) {
	b := dst.Bounds()
	rast := c.painterFor(&c.edit, b.Dx(), b.Dy()).Rasterizer()

	FillColor(dst, s.Background)

	m := s.View.Matrix()
	var outline PathFunc
	if s.Sheet.FoldMode > 0 {
		outline = Polygon(s.Sheet.Wedge())
	} else {
		outline = Silhouette(s.Sheet.Shape, s.Sheet.Radius())
	}
	clip := rast.Fill(m, outline)

	half := float64(s.Sheet.Canvas) / 2
	layerToScreen := m.Multiply(gg.Translate(-half, -half))
	if s.Data != nil {
		blit(dst, s.Data, layerToScreen, clip)
	}
	if s.Live != nil {
		mask := clip
		if s.LiveUnclipped {
			mask = nil
		}
		blit(dst, s.Live, layerToScreen, mask)
	}

	px := 1 / s.View.Scale()
	if s.Guides {
		Paint(dst, rast.Stroke(m, c.style.GuideWidth*px, outline), c.style.GuideColor)
	}
	if len(s.Bezier) > 0 {
		c.drawBezier(dst, rast, m, px, s.Bezier, s.BezierSharp)
	}
}

func (c *Compositor) drawBezier(dst *image.RGBA, rast *Rasterizer, m gg.Matrix, px float64, pts []geom.ModelPoint, sharp bool) {
	if len(pts) >= 2 {
		shape := pts
		if !sharp {
			shape = geom.CatmullRom(pts, true)
		}
		if len(pts) >= 3 {
			Paint(dst, rast.Fill(m, Polygon(shape)), c.style.CutFill)
		}
		Paint(dst, rast.Stroke(m, c.style.GuideWidth*px, Polygon(shape)), c.style.CutOutline)
	}
	Paint(dst, rast.Fill(m, Dots(pts, bezierDotRadius*px)), c.style.CutOutline)
}

// Preview draws the unfolded sheet into dst. The logical canvas is scaled
// uniformly to fit dst and the view transform is ignored. Each segment
// replays the cuts through its own rotation or mirror, clipped to its
// wedge. Ink and erase strokes are not shown.
func (c *Compositor) Preview(dst *image.RGBA, s PreviewScene) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	p := c.painterFor(&c.preview, w, h)
	rast := p.Rasterizer()

	if c.scratch == nil || c.scratch.Bounds() != image.Rect(0, 0, w, h) {
		c.scratch = NewLayer(w, h)
	}
	paper := c.scratch
	Reset(paper)

	base := Fitted(float64(s.Sheet.Canvas), w, h)
	Paint(paper, rast.Fill(base, Silhouette(s.Sheet.Shape, s.Sheet.Radius())), s.Sheet.Color)

	fold := s.Sheet.FoldMode
	for i := 0; i < geom.SegmentCount(fold); i++ {
		m := base.Multiply(geom.SegmentMatrix(i, fold))
		var clip *image.Alpha
		if fold > 0 {
			clip = rast.Fill(m, Polygon(s.Sheet.Wedge()))
		}
		for _, cmd := range s.Cuts {
			if cmd.Kind == history.KindCut {
				p.Apply(paper, cmd, m, clip)
			}
		}
		if len(s.LiveCut) >= 3 {
			cov := rast.Fill(m, Polygon(s.LiveCut))
			Paint(paper, Intersect(cov, clip), c.style.CutFill)
		}
	}

	FillColor(dst, s.Background)
	xdraw.Draw(dst, b, paper, image.Point{}, xdraw.Over)
}

// blit composites src over dst through the affine src-to-dst transform m.
// A non-nil mask limits which dst pixels are touched.
func blit(dst, src *image.RGBA, m gg.Matrix, mask *image.Alpha) {
	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	var opts *xdraw.Options
	if mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	xdraw.BiLinear.Transform(dst, s2d, src, src.Bounds(), xdraw.Over, opts)
}
