package geom

// SplineSamples is the number of samples produced per Catmull-Rom segment.
const SplineSamples = 16

// CatmullRom evaluates a uniform Catmull-Rom spline through points.
//
// A closed spline wraps around: it has one segment per control point and
// yields len(points)*SplineSamples samples. An open spline repeats its end
// points as phantom neighbours, has len(points)-1 segments and also includes
// the final control point. Fewer than two points are returned unchanged.
func CatmullRom(points []ModelPoint, closed bool) []ModelPoint {
	n := len(points)
	if n < 2 {
		return append([]ModelPoint(nil), points...)
	}

	pts := make([]ModelPoint, 0, n+3)
	if closed {
		pts = append(pts, points[n-1])
		pts = append(pts, points...)
		pts = append(pts, points[0], points[1])
	} else {
		pts = append(pts, points[0])
		pts = append(pts, points...)
		pts = append(pts, points[n-1])
	}

	segments := len(pts) - 3
	out := make([]ModelPoint, 0, segments*SplineSamples+1)
	for i := 1; i <= segments; i++ {
		p0, p1, p2, p3 := pts[i-1], pts[i], pts[i+1], pts[i+2]
		for s := 0; s < SplineSamples; s++ {
			out = append(out, catmullRomPoint(p0, p1, p2, p3, float64(s)/SplineSamples))
		}
	}
	if !closed {
		out = append(out, points[n-1])
	}
	return out
}

func catmullRomPoint(p0, p1, p2, p3 ModelPoint, t float64) ModelPoint {
	t2 := t * t
	t3 := t2 * t
	eval := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b +
			(-a+c)*t +
			(2*a-5*b+4*c-d)*t2 +
			(-a+3*b-3*c+d)*t3)
	}
	return ModelPoint{
		X: eval(p0.X, p1.X, p2.X, p3.X),
		Y: eval(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}
