package main

import (
	"math"

	"github.com/gogpu/papercut"
)

// cutDemo cuts a small lattice pattern into the active wedge: two
// freehand diamonds, a smooth Bezier petal and an ink vein.
func cutDemo(s *papercut.Session) {
	fold := s.FoldMode()
	if fold == 0 {
		fold = 4
		s.SetFoldMode(fold)
	}
	r := 0.4 * float64(s.CanvasSize())
	sector := math.Pi / float64(fold)
	mid := -math.Pi/2 + sector/2

	at := func(angle, radius float64) papercut.Point {
		x, y := radius*math.Cos(angle), radius*math.Sin(angle)
		return s.ModelToScreen(x, y)
	}
	stroke := func(pts ...papercut.Point) {
		s.StartDrawing(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			s.AddPoint(p.X, p.Y)
		}
		s.FinishDrawing()
	}

	s.SetToolMode(papercut.ToolCut)
	for _, k := range []float64{0.35, 0.75} {
		d := 0.12 * r
		c := at(mid, k*r)
		stroke(
			papercut.Point{X: c.X, Y: c.Y - d},
			papercut.Point{X: c.X + d*0.6, Y: c.Y},
			papercut.Point{X: c.X, Y: c.Y + d},
			papercut.Point{X: c.X - d*0.6, Y: c.Y},
		)
	}

	s.SetToolMode(papercut.ToolBezierCut)
	for _, p := range []papercut.Point{
		at(mid-sector*0.3, 0.55*r),
		at(mid, 0.45*r),
		at(mid+sector*0.3, 0.55*r),
		at(mid, 0.65*r),
	} {
		s.AddBezierPoint(p.X, p.Y)
	}
	s.CloseBezier()

	s.SetToolMode(papercut.ToolInk)
	stroke(at(mid, 0.1*r), at(mid, 0.2*r), at(mid+sector*0.1, 0.3*r))
}
