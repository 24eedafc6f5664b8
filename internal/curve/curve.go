// Package curve implements piecewise-linear curves used to shape scores.
package curve

import "sort"

// Point is a single control point.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Curve is an ordered set of control points. Outside the first and last
// point the curve is flat.
type Curve struct {
	points []Point
}

// New builds a curve from control points, sorting them by X.
// A curve must have at least one point; Evaluate on an empty curve returns 0.
func New(points ...Point) Curve {
	ps := make([]Point, len(points))
	copy(ps, points)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].X < ps[j].X })
	return Curve{points: ps}
}

// Points returns a copy of the control points in ascending X order.
func (c Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Evaluate returns the interpolated y for x.
func (c Curve) Evaluate(x float64) float64 {
	n := len(c.points)
	if n == 0 {
		return 0
	}
	if x <= c.points[0].X {
		return c.points[0].Y
	}
	if x >= c.points[n-1].X {
		return c.points[n-1].Y
	}

	// first point strictly right of x; 1 <= i <= n-1 given the checks above
	i := sort.Search(n, func(i int) bool { return c.points[i].X > x })
	lo, hi := c.points[i-1], c.points[i]
	if hi.X == lo.X {
		return hi.Y
	}
	t := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + t*(hi.Y-lo.Y)
}
