package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// View display constants.
const (
	// ViewScale is the paper magnification when the shorter screen side
	// equals the logical canvas side.
	ViewScale = 1.2

	// ViewOffsetYRatio shifts a folded sheet down, in canvas units, so the
	// wedge apex sits near the bottom edge of the screen.
	ViewOffsetYRatio = 0.25

	MinZoom = 0.2
	MaxZoom = 8.0
)

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// View is the mapping between model space and the edit canvas surface.
//
// The model-to-screen transform is, applied to a model point from the right:
//
//	translate(center) · flip · scale(zoom·base) · translate(pan+offset) · rotate(base+rotation)
type View struct {
	Width, Height float64 // edit canvas surface size
	Canvas        float64 // logical canvas side
	FoldMode      int

	Zoom     float64
	Pan      gg.Point
	Rotation float64
	Flipped  bool
}

// Center returns the screen position of the paper centre before pan.
func (v View) Center() ScreenPoint {
	if v.FoldMode > 0 {
		return ScreenPoint{X: v.Width / 2, Y: v.Height - math.Min(v.Width, v.Height)*PaperRadiusRatio}
	}
	return ScreenPoint{X: v.Width / 2, Y: v.Height / 2}
}

// Scale returns the total model-to-screen scale factor.
func (v View) Scale() float64 {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	base := ViewScale
	if v.Canvas > 0 {
		base *= math.Min(v.Width, v.Height) / v.Canvas
	}
	return zoom * base
}

func (v View) offset() gg.Point {
	if v.FoldMode > 0 {
		return gg.Point{X: v.Pan.X, Y: v.Pan.Y + v.Canvas*ViewOffsetYRatio}
	}
	return v.Pan
}

func (v View) angle() float64 {
	if v.FoldMode > 0 {
		return v.Rotation - SectorAngle(v.FoldMode)/2
	}
	return v.Rotation
}

func (v View) flipX() float64 {
	if v.Flipped {
		return -1
	}
	return 1
}

// Matrix returns the model-to-screen transform.
func (v View) Matrix() gg.Matrix {
	c := v.Center()
	s := v.Scale()
	off := v.offset()
	return gg.Translate(c.X, c.Y).
		Multiply(gg.Scale(v.flipX(), 1)).
		Multiply(gg.Scale(s, s)).
		Multiply(gg.Translate(off.X, off.Y)).
		Multiply(gg.Rotate(v.angle()))
}

// Inverse returns the screen-to-model transform. It is composed from the
// inverse of each step rather than by inverting Matrix.
func (v View) Inverse() gg.Matrix {
	c := v.Center()
	s := v.Scale()
	off := v.offset()
	return gg.Rotate(-v.angle()).
		Multiply(gg.Translate(-off.X, -off.Y)).
		Multiply(gg.Scale(1/s, 1/s)).
		Multiply(gg.Scale(v.flipX(), 1)).
		Multiply(gg.Translate(-c.X, -c.Y))
}

// ToScreen maps a model point onto the edit canvas.
func (v View) ToScreen(p ModelPoint) ScreenPoint {
	return ScreenPoint(v.Matrix().TransformPoint(p.Vec()))
}

// ToModel maps an edit canvas position into model space.
func (v View) ToModel(p ScreenPoint) ModelPoint {
	return ModelPoint(v.Inverse().TransformPoint(p.Vec()))
}
