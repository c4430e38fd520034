package papercut

import (
	"image/color"

	"github.com/gogpu/papercut/internal/geom"
	"github.com/gogpu/papercut/internal/history"
)

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToolMode selects what a gesture produces.
type ToolMode = history.Tool

const (
	ToolCut       = history.ToolCut       // freehand scissors
	ToolBezierCut = history.ToolBezierCut // spline through control points
	ToolInk       = history.ToolInk       // draft pen
	ToolErase     = history.ToolErase     // draft eraser
)

// CommandKind is the variant of a recorded command.
type CommandKind = history.Kind

const (
	KindCut   = history.KindCut
	KindInk   = history.KindInk
	KindErase = history.KindErase
	KindClear = history.KindClear
)

// PaperShape is the paper silhouette.
type PaperShape = geom.Shape

const (
	PaperCircle = geom.ShapeCircle
	PaperSquare = geom.ShapeSquare
)

// ViewState is the display transform of the edit canvas.
type ViewState struct {
	Zoom     float64
	Pan      Point
	Rotation float64 // radians
	Flipped  bool
}

// ARGB converts a 0xAARRGGBB value into a color.
func ARGB(v uint32) color.NRGBA {
	return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// toARGB is the inverse of ARGB.
func toARGB(c color.NRGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
