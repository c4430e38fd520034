package papercut

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/papercut/internal/geom"
	"github.com/gogpu/papercut/internal/history"
	"github.com/gogpu/papercut/internal/raster"
)

// Session is one editing session: the command log, the layers rebuilt from
// it, the gesture in progress and the view. The zero value is not usable;
// create one with NewSession and call Initialize before rendering.
type Session struct {
	opts sessionOptions

	width, height int
	ready         bool

	tool        ToolMode
	fold        int
	shape       PaperShape
	paperColor  color.NRGBA
	background  color.NRGBA
	showGuides  bool
	bezierSharp bool

	zoom     float64
	pan      gg.Point
	rotation float64
	flipped  bool

	log         history.Log
	factory     *history.Factory
	settingsRev uint64

	gesture    gesture
	gestureRev uint64
	bezier     []geom.ModelPoint

	data *raster.DataLayer
	live *raster.InteractiveLayer
	comp *raster.Compositor
}

// NewSession returns a session with the given options applied. It holds no
// rasters until Initialize.
func NewSession(opts ...SessionOption) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		opts:       o,
		tool:       o.tool,
		fold:       o.foldMode,
		shape:      o.shape,
		paperColor: o.paperColor,
		background: o.background,
		showGuides: o.showGuides,
		zoom:       1,
		factory:    history.NewFactory(o.now, o.newID),
	}
}

// Initialize sets the edit canvas size and allocates the layers. The model
// raster keeps the fixed logical canvas size whatever the display size. It
// may be called again to follow a resized surface.
func (s *Session) Initialize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.width, s.height = width, height
	if s.data == nil {
		style := raster.DefaultStyle()
		painter := raster.NewPainter(s.opts.canvasSize, s.opts.canvasSize, style)
		s.data = raster.NewDataLayer(painter)
		s.live = raster.NewInteractiveLayer(painter)
		s.comp = raster.NewCompositor(style)
	}
	s.ready = true
	s.syncData()
	Logger().Info("papercut: initialized",
		"width", width, "height", height, "canvas", s.opts.canvasSize)
	return nil
}

// Size returns the edit canvas size set by Initialize.
func (s *Session) Size() (width, height int) { return s.width, s.height }

// CanvasSize returns the side of the model-space raster.
func (s *Session) CanvasSize() int { return s.opts.canvasSize }

// revision identifies the data layer content: it moves whenever the log or
// a paper setting changes.
func (s *Session) revision() uint64 { return s.log.Version() + s.settingsRev }

func (s *Session) sheet() raster.Sheet {
	return raster.Sheet{
		Canvas:   s.opts.canvasSize,
		Shape:    s.shape,
		Color:    s.paperColor,
		FoldMode: s.fold,
	}
}

func (s *Session) view() geom.View {
	return geom.View{
		Width:    float64(s.width),
		Height:   float64(s.height),
		Canvas:   float64(s.opts.canvasSize),
		FoldMode: s.fold,
		Zoom:     s.zoom,
		Pan:      s.pan,
		Rotation: s.rotation,
		Flipped:  s.flipped,
	}
}

// syncData rebuilds the data layer if the log or paper changed since it
// was last built.
func (s *Session) syncData() {
	if !s.ready {
		return
	}
	s.data.Sync(s.revision(), s.sheet(), &s.log)
}

// syncLive brings the interactive layer up to the gesture revision.
func (s *Session) syncLive() {
	if !s.ready || !s.live.Stale(s.gestureRev) {
		return
	}
	if !s.gesture.active {
		s.live.Clear(s.gestureRev)
		return
	}
	s.live.Rebuild(s.gestureRev, s.sheet(), raster.LiveStroke{
		Tool:       s.tool,
		Points:     s.gesture.points,
		EraseColor: s.paperColor,
	})
}

// RenderEditCanvas composes the edit canvas at the Initialize size. It
// returns nil before Initialize. The buffer belongs to the caller.
func (s *Session) RenderEditCanvas() *image.RGBA {
	if !s.ready {
		return nil
	}
	s.syncData()
	s.syncLive()

	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	scene := raster.EditScene{
		View:        s.view(),
		Sheet:       s.sheet(),
		Background:  s.background,
		Data:        s.data.Image(),
		Guides:      s.showGuides,
		Bezier:      s.bezier,
		BezierSharp: s.bezierSharp,
	}
	if s.gesture.active {
		scene.Live = s.live.Image()
		scene.LiveUnclipped = s.tool == ToolCut
	}
	s.comp.Edit(dst, scene)
	return dst
}

// RenderPreviewCanvas renders the unfolded sheet. Its size is the preview
// size option, or the edit canvas size. It returns nil before Initialize.
func (s *Session) RenderPreviewCanvas() *image.RGBA {
	if !s.ready {
		return nil
	}
	w, h := s.opts.previewWidth, s.opts.previewHeight
	if w == 0 || h == 0 {
		w, h = s.width, s.height
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scene := raster.PreviewScene{
		Sheet:      s.sheet(),
		Background: s.background,
		Cuts:       s.log.Replay(),
	}
	if s.gesture.active && s.tool == ToolCut {
		scene.LiveCut = s.gesture.points
	}
	s.comp.Preview(dst, scene)
	return dst
}

// SetToolMode selects the tool. A freehand gesture in progress is
// discarded, and leaving the Bezier tool discards any placed control points.
func (s *Session) SetToolMode(tool ToolMode) {
	if !tool.Valid() || tool == s.tool {
		return
	}
	s.CancelDrawing()
	if tool != ToolBezierCut {
		s.CancelBezier()
	}
	s.tool = tool
	s.gestureRev++
}

// ToolMode returns the selected tool.
func (s *Session) ToolMode() ToolMode { return s.tool }

// SetFoldMode sets the fold count, clamped to 0..8. A gesture or Bezier
// outline in progress is discarded since it was gated by the old wedge.
func (s *Session) SetFoldMode(n int) {
	n = clampFold(n)
	if n == s.fold {
		return
	}
	s.CancelDrawing()
	s.CancelBezier()
	s.fold = n
}

// FoldMode returns the fold count.
func (s *Session) FoldMode() int { return s.fold }

// SetPaperShape sets the paper silhouette.
func (s *Session) SetPaperShape(shape PaperShape) {
	if shape > PaperSquare || shape == s.shape {
		return
	}
	s.shape = shape
	s.settingsRev++
	s.syncData()
}

// PaperShape returns the paper silhouette.
func (s *Session) PaperShape() PaperShape { return s.shape }

// SetPaperColor sets the paper color. Erase strokes already recorded keep
// the color they were made with.
func (s *Session) SetPaperColor(c color.Color) {
	nc := toNRGBA(c)
	if nc == s.paperColor {
		return
	}
	s.paperColor = nc
	s.settingsRev++
	s.gestureRev++
	s.syncData()
}

// PaperColor returns the paper color.
func (s *Session) PaperColor() color.NRGBA { return s.paperColor }

// SetShowGuides toggles the fold guide lines.
func (s *Session) SetShowGuides(show bool) { s.showGuides = show }

// Undo reverts the newest command.
func (s *Session) Undo() {
	if s.log.Undo() {
		s.syncData()
	}
}

// Redo reapplies the most recently undone command.
func (s *Session) Redo() {
	if s.log.Redo() {
		s.syncData()
	}
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.log.Len() > 0 }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.log.RedoLen() > 0 }

// Clear empties the sheet by appending a ClearMarker. Earlier commands stay
// in the log so the clear can be undone. Any gesture or Bezier outline in
// progress is discarded.
func (s *Session) Clear() {
	s.CancelDrawing()
	s.CancelBezier()
	s.log.Append(s.factory.Clear(s.tool))
	Logger().Info("papercut: cleared", "history", s.log.Len())
	s.syncData()
}

// SetZoom sets the zoom factor, clamped to [0.2, 8].
func (s *Session) SetZoom(z float64) { s.zoom = geom.ClampZoom(z) }

// SetPan sets the view offset in model units. Non-finite offsets are
// ignored.
func (s *Session) SetPan(x, y float64) {
	if !geom.Model(x, y).Finite() {
		return
	}
	s.pan = gg.Pt(x, y)
}

// SetRotation sets the view rotation in radians.
func (s *Session) SetRotation(radians float64) {
	if math.IsNaN(radians) || math.IsInf(radians, 0) {
		return
	}
	s.rotation = radians
}

// SetFlip mirrors the edit canvas horizontally.
func (s *Session) SetFlip(flipped bool) { s.flipped = flipped }

// ResetView restores zoom 1 with no pan, rotation or flip.
func (s *Session) ResetView() {
	s.zoom, s.pan, s.rotation, s.flipped = 1, gg.Point{}, 0, false
}

// View returns the current view transform parameters.
func (s *Session) View() ViewState {
	return ViewState{
		Zoom:     s.zoom,
		Pan:      Point{X: s.pan.X, Y: s.pan.Y},
		Rotation: s.rotation,
		Flipped:  s.flipped,
	}
}

// ScreenToModel maps an edit canvas position into model space. It returns
// the zero point before Initialize.
func (s *Session) ScreenToModel(x, y float64) Point {
	if !s.ready {
		return Point{}
	}
	p := s.view().ToModel(geom.Screen(x, y))
	return Point{X: p.X, Y: p.Y}
}

// ModelToScreen maps a model point onto the edit canvas. It returns the
// zero point before Initialize.
func (s *Session) ModelToScreen(x, y float64) Point {
	if !s.ready {
		return Point{}
	}
	p := s.view().ToScreen(geom.Model(x, y))
	return Point{X: p.X, Y: p.Y}
}

// IsPointInActiveSector reports whether the edit canvas position (x, y) is
// in the editable region: anywhere when unfolded, otherwise inside the
// active wedge.
func (s *Session) IsPointInActiveSector(x, y float64) bool {
	if !s.ready {
		return false
	}
	return s.inSector(s.view().ToModel(geom.Screen(x, y)))
}

func (s *Session) inSector(p geom.ModelPoint) bool {
	return geom.InActiveSector(p, s.fold, geom.ClipRadius(float64(s.opts.canvasSize)))
}

// Stats reports layer bookkeeping.
type Stats struct {
	LogVersion   uint64 // revision of the log and paper settings
	DataVersion  uint64 // revision the data layer was last built for
	DataRebuilds int
	LiveRebuilds int
	History      int
	Redo         int
}

// Stats returns the current layer bookkeeping.
func (s *Session) Stats() Stats {
	st := Stats{
		LogVersion: s.revision(),
		History:    s.log.Len(),
		Redo:       s.log.RedoLen(),
	}
	if s.data != nil {
		st.DataVersion = s.data.Version()
		st.DataRebuilds = s.data.Rebuilds()
		st.LiveRebuilds = s.live.Rebuilds()
	}
	return st
}
