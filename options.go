package papercut

import (
	"image/color"
	"time"

	"github.com/gogpu/papercut/internal/geom"
)

// DefaultCanvasSize is the side of the square model-space raster.
const DefaultCanvasSize = 2048

// Stock colors.
var (
	DefaultPaperColor      = ARGB(0xFFC4161C)
	DefaultBackgroundColor = ARGB(0xFFFDF6E3)
)

// SessionOption configures a Session during creation.
//
// Example:
//
//	s := papercut.NewSession(
//		papercut.WithFoldMode(6),
//		papercut.WithPaperShape(papercut.PaperSquare),
//	)
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	canvasSize    int
	previewWidth  int
	previewHeight int

	foldMode   int
	shape      PaperShape
	tool       ToolMode
	paperColor color.NRGBA
	background color.NRGBA
	showGuides bool

	now   func() time.Time
	newID func() string
}

func defaultOptions() sessionOptions {
	return sessionOptions{
		canvasSize: DefaultCanvasSize,
		foldMode:   4,
		shape:      PaperCircle,
		tool:       ToolCut,
		paperColor: DefaultPaperColor,
		background: DefaultBackgroundColor,
		showGuides: true,
	}
}

// WithCanvasSize sets the side of the model-space raster. Values below 16
// are ignored.
func WithCanvasSize(size int) SessionOption {
	return func(o *sessionOptions) {
		if size >= 16 {
			o.canvasSize = size
		}
	}
}

// WithPreviewSize sets the preview output size. By default the preview
// matches the edit canvas.
func WithPreviewSize(width, height int) SessionOption {
	return func(o *sessionOptions) {
		if width > 0 && height > 0 {
			o.previewWidth, o.previewHeight = width, height
		}
	}
}

// WithFoldMode sets the initial fold count, clamped to 0..8.
func WithFoldMode(n int) SessionOption {
	return func(o *sessionOptions) {
		o.foldMode = clampFold(n)
	}
}

// WithPaperShape sets the initial paper silhouette.
func WithPaperShape(shape PaperShape) SessionOption {
	return func(o *sessionOptions) {
		if shape <= PaperSquare {
			o.shape = shape
		}
	}
}

// WithToolMode sets the initial tool.
func WithToolMode(tool ToolMode) SessionOption {
	return func(o *sessionOptions) {
		if tool.Valid() {
			o.tool = tool
		}
	}
}

// WithPaperColor sets the initial paper color.
func WithPaperColor(c color.Color) SessionOption {
	return func(o *sessionOptions) {
		o.paperColor = toNRGBA(c)
	}
}

// WithBackgroundColor sets the color shown around the paper and through holes.
func WithBackgroundColor(c color.Color) SessionOption {
	return func(o *sessionOptions) {
		o.background = toNRGBA(c)
	}
}

// WithGuides toggles the fold guide lines on the edit canvas.
func WithGuides(show bool) SessionOption {
	return func(o *sessionOptions) {
		o.showGuides = show
	}
}

// WithClock sets the time source for command timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(o *sessionOptions) {
		o.now = now
	}
}

// WithIDGenerator sets the command identifier source. The default generates
// random UUIDs.
func WithIDGenerator(newID func() string) SessionOption {
	return func(o *sessionOptions) {
		o.newID = newID
	}
}

func clampFold(n int) int {
	return max(0, min(geom.MaxFoldMode, n))
}
