package geom

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gg"
)

// Shape is the paper silhouette.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
)

var shapeNames = [...]string{
	ShapeCircle: "circle",
	ShapeSquare: "square",
}

// String returns the text form of s.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if int(s) >= len(shapeNames) {
		return nil, fmt.Errorf("geom: invalid shape %d", s)
	}
	return []byte(shapeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(b []byte) error {
	i := slices.Index(shapeNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("geom: unknown shape %q", b)
	}
	*s = Shape(i)
	return nil
}

// Contains reports whether p lies on a sheet of this shape with the given
// radius (half side for a square) centred on the origin.
func (s Shape) Contains(p ModelPoint, radius float64) bool {
	if s == ShapeSquare {
		return math.Abs(p.X) <= radius && math.Abs(p.Y) <= radius
	}
	return p.Vec().Length() <= radius
}

// SegmentMatrix maps the active wedge onto segment i of the unfolded sheet.
// Even segments are rotations of the wedge. Odd segments are its mirror
// image across their leading boundary, which gives the folded-paper symmetry.
func SegmentMatrix(i, foldMode int) gg.Matrix {
	if foldMode <= 0 {
		return gg.Identity()
	}
	sector := SectorAngle(foldMode)
	if i%2 == 0 {
		return gg.Rotate(float64(i) * sector)
	}
	boundary := StartAngle + float64((i+1)/2)*sector
	return gg.Rotate(2 * boundary).Multiply(gg.Scale(1, -1))
}
