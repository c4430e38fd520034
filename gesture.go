package papercut

import "github.com/gogpu/papercut/internal/geom"

// minPointSpacing is the smallest screen distance between two accepted
// gesture points, in pixels.
const minPointSpacing = 10

// gesture is the freehand stroke in progress.
type gesture struct {
	active bool
	points []geom.ModelPoint
	last   geom.ScreenPoint
}

// StartDrawing begins a freehand gesture at the edit canvas position (x, y).
// It does nothing while a gesture is already active, with the Bezier tool
// selected, before Initialize, or when the point is outside the active
// wedge. Non-finite coordinates are never inside.
func (s *Session) StartDrawing(x, y float64) {
	if !s.ready || s.gesture.active || s.tool == ToolBezierCut {
		return
	}
	sp := geom.Screen(x, y)
	p := s.view().ToModel(sp)
	if !s.inSector(p) {
		Logger().Debug("papercut: gesture start outside wedge", "x", x, "y", y)
		return
	}
	s.gesture = gesture{active: true, points: []geom.ModelPoint{p}, last: sp}
	s.gestureRev++
}

// AddPoint extends the active gesture. Points closer than 10 pixels to the
// previous one, outside the active wedge or not finite are dropped.
func (s *Session) AddPoint(x, y float64) {
	if !s.gesture.active {
		return
	}
	sp := geom.Screen(x, y)
	if sp.DistanceSquared(s.gesture.last) < minPointSpacing*minPointSpacing {
		return
	}
	p := s.view().ToModel(sp)
	if !s.inSector(p) {
		return
	}
	s.gesture.points = append(s.gesture.points, p)
	s.gesture.last = sp
	s.gestureRev++
}

// FinishDrawing ends the gesture. With at least two points it records a
// command for the selected tool and rebuilds the data layer before
// returning; otherwise the gesture is dropped.
func (s *Session) FinishDrawing() {
	if !s.gesture.active {
		return
	}
	pts := s.gesture.points
	s.endGesture()

	if len(pts) < 2 {
		Logger().Debug("papercut: gesture discarded", "points", len(pts))
		return
	}
	switch s.tool {
	case ToolCut:
		s.log.Append(s.factory.Cut(ToolCut, pts))
	case ToolInk:
		s.log.Append(s.factory.Ink(pts))
	case ToolErase:
		s.log.Append(s.factory.Erase(pts, s.paperColor))
	default:
		return
	}
	s.syncData()
}

// CancelDrawing drops the active gesture without recording anything.
func (s *Session) CancelDrawing() {
	if s.gesture.active {
		s.endGesture()
	}
}

// endGesture resets the gesture and empties the interactive layer.
func (s *Session) endGesture() {
	s.gesture = gesture{}
	s.gestureRev++
	if s.ready {
		s.live.Clear(s.gestureRev)
	}
}

// Drawing reports whether a gesture is active.
func (s *Session) Drawing() bool { return s.gesture.active }

// GesturePoints returns the accepted points of the active gesture in model
// space.
func (s *Session) GesturePoints() []Point {
	return toPoints(s.gesture.points)
}

// AddBezierPoint places a Bezier control point at the edit canvas position
// (x, y). Points outside the active wedge are ignored.
func (s *Session) AddBezierPoint(x, y float64) {
	if !s.ready {
		return
	}
	p := s.view().ToModel(geom.Screen(x, y))
	if !s.inSector(p) {
		return
	}
	s.bezier = append(s.bezier, p)
}

// UpdateBezierPoint moves control point i to (x, y). Out-of-range indices
// and positions outside the active wedge are ignored.
func (s *Session) UpdateBezierPoint(i int, x, y float64) {
	if !s.ready || i < 0 || i >= len(s.bezier) {
		return
	}
	p := s.view().ToModel(geom.Screen(x, y))
	if !s.inSector(p) {
		return
	}
	s.bezier[i] = p
}

// CloseBezier turns the control points into one Cut command: a closed
// Catmull-Rom spline, or the control polygon itself in sharp mode. It needs
// at least three points and otherwise leaves them in place.
func (s *Session) CloseBezier() {
	if len(s.bezier) < 3 {
		return
	}
	shape := s.bezier
	if !s.bezierSharp {
		shape = geom.CatmullRom(s.bezier, true)
	}
	s.log.Append(s.factory.Cut(ToolBezierCut, shape))
	s.bezier = nil
	s.syncData()
}

// CancelBezier discards the placed control points.
func (s *Session) CancelBezier() {
	s.bezier = nil
}

// SetBezierSharp selects straight edges between Bezier control points
// instead of a smooth spline.
func (s *Session) SetBezierSharp(sharp bool) { s.bezierSharp = sharp }

// BezierPoints returns the placed control points on the edit canvas, for
// hit testing by the host.
func (s *Session) BezierPoints() []Point {
	if !s.ready {
		return nil
	}
	v := s.view()
	out := make([]Point, len(s.bezier))
	for i, p := range s.bezier {
		sp := v.ToScreen(p)
		out[i] = Point{X: sp.X, Y: sp.Y}
	}
	return out
}

func toPoints(pts []geom.ModelPoint) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

func fromPoints(pts []Point) []geom.ModelPoint {
	out := make([]geom.ModelPoint, len(pts))
	for i, p := range pts {
		out[i] = geom.Model(p.X, p.Y)
	}
	return out
}
