package raster

import (
	"image"
	"image/color"
	"time"

	"github.com/gogpu/papercut/internal/geom"
	"github.com/gogpu/papercut/internal/history"
)

// Sheet describes the paper being edited.
type Sheet struct {
	Canvas   int // logical canvas side in pixels
	Shape    geom.Shape
	Color    color.NRGBA
	FoldMode int
}

// Radius returns the paper radius in model units.
func (s Sheet) Radius() float64 { return geom.PaperRadius(float64(s.Canvas)) }

// ClipRadius returns the wedge radius in model units.
func (s Sheet) ClipRadius() float64 { return geom.ClipRadius(float64(s.Canvas)) }

// Wedge returns the boundary of the editable wedge.
func (s Sheet) Wedge() []geom.ModelPoint {
	return geom.ActiveWedge(s.FoldMode, s.ClipRadius())
}

// DataLayer is the authoritative raster: the paper with every command since
// the last ClearMarker applied. It holds the model origin at its centre.
//
// The layer remembers the version it was built for. It is rebuilt exactly
// when asked for a different version.
type DataLayer struct {
	img      *image.RGBA
	painter  *Painter
	built    uint64
	valid    bool
	rebuilds int
}

// NewDataLayer returns an unbuilt layer drawn by p. The layer has p's size.
func NewDataLayer(p *Painter) *DataLayer {
	b := p.Rasterizer().Bounds()
	return &DataLayer{img: NewLayer(b.Dx(), b.Dy()), painter: p}
}

// Image returns the layer pixels. The caller must not modify them.
func (d *DataLayer) Image() *image.RGBA { return d.img }

// Stale reports whether the layer does not show version.
func (d *DataLayer) Stale(version uint64) bool { return !d.valid || d.built != version }

// Version returns the version the layer was last built for.
func (d *DataLayer) Version() uint64 { return d.built }

// Rebuilds returns how many times the layer has been rebuilt.
func (d *DataLayer) Rebuilds() int { return d.rebuilds }

// Sync rebuilds the layer if it is stale for version and reports whether it did.
func (d *DataLayer) Sync(version uint64, sheet Sheet, log *history.Log) bool {
	if !d.Stale(version) {
		return false
	}
	d.Rebuild(version, sheet, log)
	return true
}

// Rebuild redraws the layer from scratch: paper silhouette in the sheet
// color, then every command after the log's last ClearMarker, in order,
// clipped to the silhouette.
func (d *DataLayer) Rebuild(version uint64, sheet Sheet, log *history.Log) {
	start := time.Now()
	Reset(d.img)

	m := Centered(sheet.Canvas)
	rast := d.painter.Rasterizer()
	sil := rast.Fill(m, Silhouette(sheet.Shape, sheet.Radius()))
	Paint(d.img, sil, sheet.Color)

	from := log.ReplayStart()
	cmds := log.Replay()
	for _, cmd := range cmds {
		d.painter.Apply(d.img, cmd, m, sil)
	}

	d.built = version
	d.valid = true
	d.rebuilds++
	slogger().Debug("raster: data layer rebuilt",
		"version", version,
		"replayFrom", from,
		"commands", len(cmds),
		"elapsed", time.Since(start))
}

// LiveStroke is the in-progress gesture shown on the interactive layer.
type LiveStroke struct {
	Tool       history.Tool
	Points     []geom.ModelPoint
	EraseColor color.NRGBA
}

// InteractiveLayer is the ephemeral raster showing the gesture in progress.
type InteractiveLayer struct {
	img      *image.RGBA
	painter  *Painter
	built    uint64
	valid    bool
	rebuilds int
}

// NewInteractiveLayer returns an empty layer drawn by p.
func NewInteractiveLayer(p *Painter) *InteractiveLayer {
	b := p.Rasterizer().Bounds()
	return &InteractiveLayer{img: NewLayer(b.Dx(), b.Dy()), painter: p}
}

// Image returns the layer pixels. The caller must not modify them.
func (l *InteractiveLayer) Image() *image.RGBA { return l.img }

// Stale reports whether the layer does not show revision rev.
func (l *InteractiveLayer) Stale(rev uint64) bool { return !l.valid || l.built != rev }

// Rebuilds returns how many times the layer has been redrawn.
func (l *InteractiveLayer) Rebuilds() int { return l.rebuilds }

// Clear empties the layer and marks it current for rev.
func (l *InteractiveLayer) Clear(rev uint64) {
	Reset(l.img)
	l.built = rev
	l.valid = true
}

// Rebuild redraws the live stroke for revision rev.
//
// When the sheet is folded, ink and erase previews are clipped to the active
// wedge. A cut is shown unclipped as a translucent highlight with an outline
// so the whole candidate shape stays visible.
func (l *InteractiveLayer) Rebuild(rev uint64, sheet Sheet, s LiveStroke) {
	Reset(l.img)
	st := l.painter.Style()
	rast := l.painter.Rasterizer()
	m := Centered(sheet.Canvas)

	var clip *image.Alpha
	if sheet.FoldMode != 0 && s.Tool != history.ToolCut {
		clip = rast.Fill(m, Polygon(sheet.Wedge()))
	}

	switch s.Tool {
	case history.ToolCut:
		if len(s.Points) >= 3 {
			Paint(l.img, rast.Fill(m, Polygon(s.Points)), st.CutFill)
		}
		if len(s.Points) >= 2 {
			Paint(l.img, rast.Stroke(m, st.OutlineWidth, Polygon(s.Points)), st.CutOutline)
		}
	case history.ToolInk:
		if len(s.Points) >= 2 {
			cov := rast.Stroke(m, st.InkWidth, Smooth(s.Points))
			Paint(l.img, Intersect(cov, clip), st.InkColor)
		}
	case history.ToolErase:
		if len(s.Points) >= 2 {
			cov := rast.Stroke(m, st.EraseWidth, Smooth(s.Points))
			Paint(l.img, Intersect(cov, clip), s.EraseColor)
		}
	}

	l.built = rev
	l.valid = true
	l.rebuilds++
}
