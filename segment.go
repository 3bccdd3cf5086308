package track

import "math"

// Segment is a single Bézier curve of arbitrary degree. A segment with n
// control points has degree n-1. A segment with a single control point is a
// stationary point.
type Segment struct {
	Points []Point
}

var _ ParametricCurve = Segment{}

// Degree returns the degree of the segment, or -1 if it has no control
// points.
func (s Segment) Degree() int {
	return len(s.Points) - 1
}

// Eval evaluates the segment at u ∈ [0, 1] using the explicit Bernstein
// form. u isn't clamped.
func (s Segment) Eval(u float64) Point {
	return evalBezier(Points(s.Points), 0, len(s.Points), u)
}

func (s Segment) Start() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[0]
}

func (s Segment) End() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[len(s.Points)-1]
}

// Deriv returns the derivative of the segment with respect to u, which is a
// Bézier of one degree lower. Its control points are to be interpreted as
// vectors. The derivative of a stationary point is the zero vector.
func (s Segment) Deriv() Segment {
	d := s.Degree()
	if d < 1 {
		return Segment{Points: []Point{{}}}
	}
	pts := make([]Point, d)
	for i := range pts {
		pts[i] = Point(s.Points[i+1].Sub(s.Points[i]).Mul(float64(d)))
	}
	return Segment{Points: pts}
}

// Tangent returns the derivative of the segment at u. It is not normalized.
func (s Segment) Tangent(u float64) Vec3 {
	return Vec3(s.Deriv().Eval(u))
}

// Split subdivides the segment at u, using de Casteljau. The first result
// covers [0, u] and the second [u, 1]; both have the segment's degree.
func (s Segment) Split(u float64) (Segment, Segment) {
	n := len(s.Points)
	if n == 0 {
		return Segment{}, Segment{}
	}
	work := append([]Point(nil), s.Points...)
	left := make([]Point, n)
	right := make([]Point, n)
	for level := range n {
		left[level] = work[0]
		right[n-1-level] = work[n-1-level]
		for i := range n - 1 - level {
			work[i] = work[i].Lerp(work[i+1], u)
		}
	}
	return Segment{Points: left}, Segment{Points: right}
}

// Subsegment returns the part of the segment between u0 and u1, reparametrized
// to [0, 1].
func (s Segment) Subsegment(u0, u1 float64) Segment {
	head, _ := s.Split(u1)
	if u1 == 0 {
		return head
	}
	_, tail := head.Split(u0 / u1)
	return tail
}

// evalBezier evaluates the Bézier formed by the n positions of src starting
// at first.
func evalBezier(src PositionSource, first, n int, u float64) Point {
	if n == 0 {
		return Point{}
	}
	d := n - 1
	mt := 1 - u
	var x, y, z float64
	for i := range n {
		b := float64(Binomial(d, i)) * math.Pow(mt, float64(d-i)) * math.Pow(u, float64(i))
		p := src.Position(first + i)
		x += b * p.X
		y += b * p.Y
		z += b * p.Z
	}
	return Point{X: x, Y: y, Z: z}
}
