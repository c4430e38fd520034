package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// ScreenPoint is a position on the edit canvas output surface, in pixels.
type ScreenPoint gg.Point

// ModelPoint is a position relative to the paper centre, in logical canvas pixels.
type ModelPoint gg.Point

// WedgePoint is a model position in polar form. Angle is measured clockwise
// (screen orientation) from the active wedge's start edge and lies in [0, 2π).
type WedgePoint struct {
	Radius float64
	Angle  float64
}

// Screen returns a ScreenPoint.
func Screen(x, y float64) ScreenPoint { return ScreenPoint{X: x, Y: y} }

// Model returns a ModelPoint.
func Model(x, y float64) ModelPoint { return ModelPoint{X: x, Y: y} }

// Vec returns the point as an untyped vector.
func (p ScreenPoint) Vec() gg.Point { return gg.Point(p) }

// DistanceSquared returns the squared distance between two screen points.
func (p ScreenPoint) DistanceSquared(q ScreenPoint) float64 {
	return p.Vec().Sub(q.Vec()).LengthSquared()
}

// Vec returns the point as an untyped vector.
func (p ModelPoint) Vec() gg.Point { return gg.Point(p) }

// Finite reports whether both coordinates are finite numbers.
func (p ModelPoint) Finite() bool { return finite(p.X) && finite(p.Y) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Wedge converts p to wedge-local polar coordinates.
func (p ModelPoint) Wedge() WedgePoint {
	return WedgePoint{
		Radius: math.Hypot(p.X, p.Y),
		Angle:  NormalizeAngle(math.Atan2(p.Y, p.X) - StartAngle),
	}
}

// Model converts w back to model space.
func (w WedgePoint) Model() ModelPoint {
	a := w.Angle + StartAngle
	return ModelPoint{X: w.Radius * math.Cos(a), Y: w.Radius * math.Sin(a)}
}

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
