package geom

import "math"

// Fold and paper proportions, as fractions of the logical canvas side.
const (
	PaperRadiusRatio = 0.40
	ClipRadiusRatio  = 1.5

	// StartAngle is the first edge of the active wedge (straight up).
	StartAngle = -math.Pi / 2

	// MaxFoldMode is the largest supported fold count.
	MaxFoldMode = 8

	arcStep = 0.05
)

// SectorAngle returns the angular width of one wedge. Fold mode 0 is the
// unfolded sheet and spans the full circle.
func SectorAngle(foldMode int) float64 {
	if foldMode <= 0 {
		return 2 * math.Pi
	}
	return 2 * math.Pi / float64(2*foldMode)
}

// SegmentCount returns how many wedges the unfolded sheet is made of.
func SegmentCount(foldMode int) int {
	if foldMode <= 0 {
		return 1
	}
	return 2 * foldMode
}

// PaperRadius returns the paper radius for a logical canvas side.
func PaperRadius(canvas float64) float64 { return canvas * PaperRadiusRatio }

// ClipRadius returns the wedge radius for a logical canvas side. It reaches
// well past the paper so that the wedge boundary is only ever angular.
func ClipRadius(canvas float64) float64 { return canvas * ClipRadiusRatio }

// InActiveSector reports whether p may be edited. A point with a NaN or
// infinite coordinate never may. Any other point may when the sheet is
// unfolded. Otherwise p must lie within clipRadius and inside
// [StartAngle, StartAngle+SectorAngle). The wedge apex counts as inside.
func InActiveSector(p ModelPoint, foldMode int, clipRadius float64) bool {
	if !p.Finite() {
		return false
	}
	if foldMode <= 0 {
		return true
	}
	w := p.Wedge()
	if w.Radius > clipRadius {
		return false
	}
	if w.Radius == 0 {
		return true
	}
	return w.Angle < SectorAngle(foldMode)
}

// WedgePath returns the closed boundary of a wedge: the origin, then the arc
// from startAngle through startAngle+sweepAngle. The closing edge back to the
// origin is implied. A sweep of a full turn or more yields a plain circle
// polygon without the origin.
func WedgePath(radius, startAngle, sweepAngle float64) []ModelPoint {
	full := sweepAngle >= 2*math.Pi
	if full {
		sweepAngle = 2 * math.Pi
	}
	steps := int(math.Ceil(sweepAngle / arcStep))
	if steps < 1 {
		steps = 1
	}

	path := make([]ModelPoint, 0, steps+2)
	if !full {
		path = append(path, ModelPoint{})
	}
	last := steps
	if full {
		last = steps - 1
	}
	for i := 0; i <= last; i++ {
		a := startAngle + sweepAngle*float64(i)/float64(steps)
		path = append(path, ModelPoint{X: radius * math.Cos(a), Y: radius * math.Sin(a)})
	}
	return path
}

// ActiveWedge returns the boundary of the editable wedge for foldMode.
func ActiveWedge(foldMode int, radius float64) []ModelPoint {
	return WedgePath(radius, StartAngle, SectorAngle(foldMode))
}
