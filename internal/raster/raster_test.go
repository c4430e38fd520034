package raster

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/papercut/internal/geom"
	"github.com/gogpu/papercut/internal/history"
)

const testCanvas = 200

var (
	paperRed   = color.NRGBA{R: 0xC4, G: 0x16, B: 0x1C, A: 0xFF}
	background = color.NRGBA{R: 0xFD, G: 0xF6, B: 0xE3, A: 0xFF}
)

func testSheet(fold int) Sheet {
	return Sheet{Canvas: testCanvas, Shape: geom.ShapeCircle, Color: paperRed, FoldMode: fold}
}

func polar(deg, r float64) geom.ModelPoint {
	a := deg * math.Pi / 180
	return geom.Model(r*math.Cos(a), r*math.Sin(a))
}

// square returns a closed square of half side h around c.
func square(c geom.ModelPoint, h float64) []geom.ModelPoint {
	return []geom.ModelPoint{
		geom.Model(c.X-h, c.Y-h),
		geom.Model(c.X+h, c.Y-h),
		geom.Model(c.X+h, c.Y+h),
		geom.Model(c.X-h, c.Y+h),
	}
}

// layerPixel returns the pixel of a centred layer at model point p.
func layerPixel(img *image.RGBA, p geom.ModelPoint) color.RGBA {
	c := Centered(img.Bounds().Dx()).TransformPoint(p.Vec())
	return img.RGBAAt(int(c.X), int(c.Y))
}

func near(got, want color.RGBA, tol int) bool {
	d := func(a, b uint8) bool { return math.Abs(float64(a)-float64(b)) <= float64(tol) }
	return d(got.R, want.R) && d(got.G, want.G) && d(got.B, want.B) && d(got.A, want.A)
}

func opaque(c color.NRGBA) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF} }

func TestRasterizerFill(t *testing.T) {
	r := NewRasterizer(50, 50)
	mask := r.Fill(gg.Identity(), Polygon(square(geom.Model(25, 25), 10)))
	if got := mask.AlphaAt(25, 25).A; got != 255 {
		t.Errorf("inside coverage = %d, want 255", got)
	}
	if got := mask.AlphaAt(2, 2).A; got != 0 {
		t.Errorf("outside coverage = %d, want 0", got)
	}
}

func TestRasterizerReusable(t *testing.T) {
	r := NewRasterizer(50, 50)
	_ = r.Fill(gg.Identity(), Polygon(square(geom.Model(10, 10), 5)))
	mask := r.Fill(gg.Identity(), Polygon(square(geom.Model(40, 40), 5)))
	if got := mask.AlphaAt(10, 10).A; got != 0 {
		t.Errorf("coverage from previous call leaked: %d", got)
	}
}

func TestRasterizerStrokeZeroWidth(t *testing.T) {
	r := NewRasterizer(20, 20)
	mask := r.Stroke(gg.Identity(), 0, Polyline([]geom.ModelPoint{geom.Model(0, 10), geom.Model(20, 10)}))
	for i, a := range mask.Pix {
		if a != 0 {
			t.Fatalf("pixel %d coverage = %d, want 0", i, a)
		}
	}
}

func TestPunch(t *testing.T) {
	dst := NewLayer(4, 1)
	FillColor(dst, paperRed)
	cov := image.NewAlpha(image.Rect(0, 0, 4, 1))
	copy(cov.Pix, []byte{0, 255, 128, 0})
	Punch(dst, cov)

	if got := dst.RGBAAt(0, 0); got != opaque(paperRed) {
		t.Errorf("untouched pixel = %v, want %v", got, opaque(paperRed))
	}
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Errorf("fully punched pixel = %v, want transparent", got)
	}
	if got := dst.RGBAAt(2, 0).A; got != 127 {
		t.Errorf("half punched alpha = %d, want 127", got)
	}
}

func TestIntersect(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 3, 1))
	copy(mask.Pix, []byte{255, 255, 100})
	clip := image.NewAlpha(image.Rect(0, 0, 3, 1))
	copy(clip.Pix, []byte{255, 0, 255})
	Intersect(mask, clip)
	want := []byte{255, 0, 100}
	if !bytes.Equal(mask.Pix, want) {
		t.Errorf("Intersect = %v, want %v", mask.Pix, want)
	}
	if got := Intersect(mask, nil); got != mask {
		t.Error("Intersect(mask, nil) did not return mask")
	}
}

func TestApply(t *testing.T) {
	f := history.NewFactory(nil, nil)
	eraseColor := color.NRGBA{R: 10, G: 200, B: 30, A: 255}
	horizontal := []geom.ModelPoint{geom.Model(-40, 0), geom.Model(0, 0), geom.Model(40, 0)}

	tests := []struct {
		name string
		cmd  history.Command
		at   geom.ModelPoint
		want color.RGBA
	}{
		{"cut punches hole", f.Cut(history.ToolCut, square(geom.Model(0, 0), 20)), geom.Model(0, 0), color.RGBA{}},
		{"cut leaves outside", f.Cut(history.ToolCut, square(geom.Model(0, 0), 20)), geom.Model(50, 50), opaque(paperRed)},
		{"ink paints draft color", f.Ink(horizontal), geom.Model(0, 0), opaque(DefaultStyle().InkColor)},
		{"erase paints its color", f.Erase(horizontal, eraseColor), geom.Model(0, 0), opaque(eraseColor)},
		{"clear marker empties", f.Clear(history.ToolCut), geom.Model(50, 50), color.RGBA{}},
		{"single point is a no-op", f.Cut(history.ToolCut, square(geom.Model(0, 0), 20)[:1]), geom.Model(0, 0), opaque(paperRed)},
	}
	p := NewPainter(testCanvas, testCanvas, DefaultStyle())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := NewLayer(testCanvas, testCanvas)
			FillColor(dst, paperRed)
			p.Apply(dst, tt.cmd, Centered(testCanvas), nil)
			if got := layerPixel(dst, tt.at); !near(got, tt.want, 1) {
				t.Errorf("pixel at %v = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestApplyRespectsClip(t *testing.T) {
	p := NewPainter(testCanvas, testCanvas, DefaultStyle())
	m := Centered(testCanvas)
	// Clip to the right half of the layer.
	clip := p.Rasterizer().Fill(m, Polygon([]geom.ModelPoint{
		geom.Model(0, -100), geom.Model(100, -100), geom.Model(100, 100), geom.Model(0, 100),
	}))
	dst := NewLayer(testCanvas, testCanvas)
	FillColor(dst, paperRed)
	cut := history.NewFactory(nil, nil).Cut(history.ToolCut, square(geom.Model(0, 0), 30))
	p.Apply(dst, cut, m, clip)

	if got := layerPixel(dst, geom.Model(15, 0)); got.A != 0 {
		t.Errorf("clipped-in pixel alpha = %d, want 0", got.A)
	}
	if got := layerPixel(dst, geom.Model(-15, 0)); got != opaque(paperRed) {
		t.Errorf("clipped-out pixel = %v, want paper", got)
	}
}

func newDataLayer() *DataLayer {
	return NewDataLayer(NewPainter(testCanvas, testCanvas, DefaultStyle()))
}

func TestDataLayerRebuildIdempotent(t *testing.T) {
	f := history.NewFactory(nil, nil)
	var log history.Log
	log.Append(f.Ink([]geom.ModelPoint{geom.Model(-30, -30), geom.Model(10, 5), geom.Model(30, 40)}))
	log.Append(f.Cut(history.ToolCut, square(geom.Model(5, 5), 15)))
	log.Append(f.Erase([]geom.ModelPoint{geom.Model(-50, 0), geom.Model(50, 0)}, paperRed))

	d := newDataLayer()
	d.Rebuild(log.Version(), testSheet(0), &log)
	first := bytes.Clone(d.Image().Pix)
	d.Rebuild(log.Version(), testSheet(0), &log)
	if !bytes.Equal(first, d.Image().Pix) {
		t.Error("second rebuild produced different pixels")
	}
}

func TestDataLayerSync(t *testing.T) {
	var log history.Log
	d := newDataLayer()
	if !d.Stale(log.Version()) {
		t.Fatal("new layer is not stale")
	}
	if !d.Sync(log.Version(), testSheet(0), &log) {
		t.Fatal("Sync on stale layer did not rebuild")
	}
	if d.Sync(log.Version(), testSheet(0), &log) {
		t.Error("Sync rebuilt without a version change")
	}
	log.Append(history.NewFactory(nil, nil).Ink([]geom.ModelPoint{geom.Model(0, 0), geom.Model(10, 10)}))
	if !d.Sync(log.Version(), testSheet(0), &log) {
		t.Error("Sync did not rebuild after the log changed")
	}
	if d.Rebuilds() != 2 {
		t.Errorf("Rebuilds() = %d, want 2", d.Rebuilds())
	}
}

func TestDataLayerPaperAndClip(t *testing.T) {
	var log history.Log
	// A cut reaching past the paper edge must not disturb the outside.
	log.Append(history.NewFactory(nil, nil).Cut(history.ToolCut, square(geom.Model(80, 0), 30)))
	d := newDataLayer()
	d.Rebuild(log.Version(), testSheet(0), &log)

	if got := layerPixel(d.Image(), geom.Model(0, 0)); got != opaque(paperRed) {
		t.Errorf("paper centre = %v, want paper color", got)
	}
	if got := layerPixel(d.Image(), geom.Model(70, 0)); got.A != 0 {
		t.Errorf("inside cut alpha = %d, want 0", got.A)
	}
	if got := layerPixel(d.Image(), geom.Model(95, 95)); got.A != 0 {
		t.Errorf("outside paper alpha = %d, want 0", got.A)
	}
}

func TestDataLayerReplayBoundary(t *testing.T) {
	f := history.NewFactory(nil, nil)
	var log history.Log
	log.Append(f.Cut(history.ToolCut, square(geom.Model(0, 0), 20)))
	d := newDataLayer()
	d.Rebuild(log.Version(), testSheet(0), &log)
	withHole := bytes.Clone(d.Image().Pix)

	log.Append(f.Clear(history.ToolCut))
	d.Rebuild(log.Version(), testSheet(0), &log)
	if got := layerPixel(d.Image(), geom.Model(0, 0)); got != opaque(paperRed) {
		t.Errorf("after clear centre = %v, want fresh paper", got)
	}

	log.Undo()
	d.Rebuild(log.Version(), testSheet(0), &log)
	if !bytes.Equal(withHole, d.Image().Pix) {
		t.Error("undoing clear did not restore the previous raster")
	}
}

func TestDataLayerOrderMatters(t *testing.T) {
	f := history.NewFactory(nil, nil)
	ink := f.Ink([]geom.ModelPoint{geom.Model(-40, 0), geom.Model(40, 0)})
	cut := f.Cut(history.ToolCut, square(geom.Model(0, 0), 15))

	var a, b history.Log
	a.Append(ink)
	a.Append(cut)
	b.Append(cut)
	b.Append(ink)

	da, db := newDataLayer(), newDataLayer()
	da.Rebuild(a.Version(), testSheet(0), &a)
	db.Rebuild(b.Version(), testSheet(0), &b)

	if got := layerPixel(da.Image(), geom.Model(0, 0)); got.A != 0 {
		t.Errorf("ink then cut: centre alpha = %d, want hole", got.A)
	}
	if got := layerPixel(db.Image(), geom.Model(0, 0)); got != opaque(DefaultStyle().InkColor) {
		t.Errorf("cut then ink: centre = %v, want ink over the hole", got)
	}
}

func TestInteractiveLayer(t *testing.T) {
	outside := []geom.ModelPoint{polar(180, 20), polar(180, 60), polar(150, 60)}
	inside := []geom.ModelPoint{polar(-80, 20), polar(-80, 60), polar(-55, 60)}
	tests := []struct {
		name    string
		tool    history.Tool
		pts     []geom.ModelPoint
		visible bool
	}{
		{"ink inside wedge", history.ToolInk, inside, true},
		{"ink outside wedge clipped", history.ToolInk, outside, false},
		{"erase outside wedge clipped", history.ToolErase, outside, false},
		{"cut outside wedge still shown", history.ToolCut, outside, true},
	}
	l := NewInteractiveLayer(NewPainter(testCanvas, testCanvas, DefaultStyle()))
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.Rebuild(uint64(i+1), testSheet(4), LiveStroke{Tool: tt.tool, Points: tt.pts, EraseColor: paperRed})
			got := layerPixel(l.Image(), tt.pts[0]).A > 0
			if got != tt.visible {
				t.Errorf("stroke visible = %v, want %v", got, tt.visible)
			}
		})
	}
}

func TestInteractiveLayerClear(t *testing.T) {
	l := NewInteractiveLayer(NewPainter(testCanvas, testCanvas, DefaultStyle()))
	pts := []geom.ModelPoint{geom.Model(-40, 0), geom.Model(40, 0)}
	l.Rebuild(1, testSheet(0), LiveStroke{Tool: history.ToolInk, Points: pts})
	if l.Stale(1) || !l.Stale(2) {
		t.Fatal("Stale does not track the built revision")
	}
	l.Clear(2)
	for i, v := range l.Image().Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d after Clear, want 0", i, v)
		}
	}
	if l.Stale(2) {
		t.Error("layer stale right after Clear(2)")
	}
}

func TestPreviewSymmetry(t *testing.T) {
	const fold = 4
	// Off the bisector, so a mirrored copy differs from a rotated one.
	centre := polar(-80, 50)
	f := history.NewFactory(nil, nil)
	cuts := []history.Command{
		f.Ink([]geom.ModelPoint{polar(-67.5, 10), polar(-67.5, 70)}),
		f.Cut(history.ToolCut, square(centre, 6)),
	}

	dst := image.NewRGBA(image.Rect(0, 0, testCanvas, testCanvas))
	c := NewCompositor(DefaultStyle())
	c.Preview(dst, PreviewScene{Sheet: testSheet(fold), Background: background, Cuts: cuts})

	base := Fitted(testCanvas, testCanvas, testCanvas)
	at := func(m gg.Matrix, p geom.ModelPoint) color.RGBA {
		q := m.TransformPoint(p.Vec())
		return dst.RGBAAt(int(math.Round(q.X)), int(math.Round(q.Y)))
	}
	sector := geom.SectorAngle(fold)
	for i := 0; i < geom.SegmentCount(fold); i++ {
		m := base.Multiply(geom.SegmentMatrix(i, fold))
		if got := at(m, centre); !near(got, opaque(background), 2) {
			t.Errorf("segment %d hole = %v, want background", i, got)
		}
		// Ink is not part of the preview.
		if got := at(m, polar(-67.5, 25)); !near(got, opaque(paperRed), 2) {
			t.Errorf("segment %d paper = %v, want paper color", i, got)
		}
		if i%2 == 1 {
			rotated := base.Multiply(gg.Rotate(float64(i) * sector))
			if got := at(rotated, centre); !near(got, opaque(paperRed), 2) {
				t.Errorf("segment %d unmirrored hole position = %v, want paper", i, got)
			}
		}
	}
}

func TestPreviewUnfolded(t *testing.T) {
	f := history.NewFactory(nil, nil)
	cuts := []history.Command{f.Cut(history.ToolCut, square(geom.Model(30, 30), 8))}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	c := NewCompositor(DefaultStyle())
	c.Preview(dst, PreviewScene{Sheet: testSheet(0), Background: background, Cuts: cuts})

	// 200 logical pixels fitted into 100: the hole centre lands at (65, 65).
	if got := dst.RGBAAt(65, 65); !near(got, opaque(background), 2) {
		t.Errorf("hole = %v, want background", got)
	}
	// Its mirror image must not exist when unfolded.
	if got := dst.RGBAAt(35, 65); !near(got, opaque(paperRed), 2) {
		t.Errorf("mirror position = %v, want paper", got)
	}
}

func TestEditClipsToWedge(t *testing.T) {
	sheet := testSheet(4)
	var log history.Log
	d := newDataLayer()
	d.Rebuild(log.Version(), sheet, &log)

	view := geom.View{Width: 200, Height: 200, Canvas: testCanvas, FoldMode: 4, Zoom: 1}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	c := NewCompositor(DefaultStyle())
	c.Edit(dst, EditScene{View: view, Sheet: sheet, Background: background, Data: d.Image()})

	up := view.ToScreen(polar(-67.5, 40))
	if got := dst.RGBAAt(int(up.X), int(up.Y)); !near(got, opaque(paperRed), 2) {
		t.Errorf("wedge interior %v = %v, want paper", up, got)
	}
	side := view.ToScreen(polar(-150, 40))
	if got := dst.RGBAAt(int(side.X), int(side.Y)); !near(got, opaque(background), 2) {
		t.Errorf("outside wedge %v = %v, want background", side, got)
	}
}

func TestEditUnfoldedShowsWholeSheet(t *testing.T) {
	sheet := testSheet(0)
	var log history.Log
	d := newDataLayer()
	d.Rebuild(log.Version(), sheet, &log)

	view := geom.View{Width: 300, Height: 300, Canvas: testCanvas, Zoom: 1, Rotation: 0.3, Flipped: true}
	dst := image.NewRGBA(image.Rect(0, 0, 300, 300))
	NewCompositor(DefaultStyle()).Edit(dst, EditScene{View: view, Sheet: sheet, Background: background, Data: d.Image()})

	for _, p := range []geom.ModelPoint{polar(0, 50), polar(120, 50), polar(240, 50)} {
		s := view.ToScreen(p)
		if got := dst.RGBAAt(int(s.X), int(s.Y)); !near(got, opaque(paperRed), 2) {
			t.Errorf("model %v at screen %v = %v, want paper", p, s, got)
		}
	}
	if got := dst.RGBAAt(2, 2); !near(got, opaque(background), 0) {
		t.Errorf("corner = %v, want background", got)
	}
}
