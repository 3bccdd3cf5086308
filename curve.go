package track

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientControlPoints is returned when a curve is constructed
	// from fewer than two control points.
	ErrInsufficientControlPoints = errors.New("at least 2 control points are required")
	// ErrInvalidPartition is returned when segment sizes don't sum to the
	// number of control points or contain non-positive entries.
	ErrInvalidPartition = errors.New("invalid segment partition")
	// ErrInvalidRange is returned for parameter ranges or distances that
	// the curve's domain can't represent.
	ErrInvalidRange = errors.New("invalid range")
	// ErrConvergence is returned when [Curve.SolveForArclen] exhausts its
	// iteration bound without reaching the requested distance.
	ErrConvergence = errors.New("arc length solver didn't converge")
)

// ParametricCurve describes a curve parametrized by a scalar.
type ParametricCurve interface {
	// Eval evaluates the curve at parameter t. Generally, t is in the range [0, 1].
	Eval(t float64) Point
	Start() Point
	End() Point
}

// Domain decides how a [Curve] treats parameters outside of [0, 1].
type Domain int

const (
	// Wrap treats the curve as a closed loop: t is reduced to its
	// fractional part.
	Wrap Domain = iota
	// Clamp treats the curve as open-ended: t is clamped to [0, 1].
	Clamp
)

func (d Domain) String() string {
	switch d {
	case Wrap:
		return "wrap"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Normalize maps t into the domain. Wrap returns a value in [0, 1), Clamp a
// value in [0, 1].
func (d Domain) Normalize(t float64) float64 {
	switch d {
	case Clamp:
		return min(max(t, 0), 1)
	default:
		f := t - math.Floor(t)
		if f >= 1 {
			// Tiny negative values round up to 1.
			f = 0
		}
		return f
	}
}

// PositionSource provides control point positions by index. Implementations
// may return different positions over time, for example to follow geometry
// that's being edited, but Len must stay the same for the lifetime of any
// curve built on the source.
type PositionSource interface {
	Len() int
	Position(i int) Point
}

// Points is a PositionSource backed by a slice.
type Points []Point

func (ps Points) Len() int             { return len(ps) }
func (ps Points) Position(i int) Point { return ps[i] }

// Curve is a chain of Bézier segments sharing one global parameter t. Each
// segment covers a share of [0, 1] proportional to its number of control
// points.
//
// A Curve is immutable after construction and may be evaluated
// concurrently. If it was built with [NewCurveFromSource], writes to the
// source must be synchronized by the caller.
//
// The zero value is a curve without geometry that evaluates to the origin.
type Curve struct {
	src    PositionSource
	sizes  []int
	first  []int
	lower  []float64
	upper  []float64
	frac   []float64
	domain Domain
}

var _ ParametricCurve = (*Curve)(nil)

// NewCurve returns a curve through a copy of points. sizes partitions the
// points into consecutive segments; segment i uses sizes[i] points and has
// degree sizes[i]-1.
func NewCurve(points []Point, sizes []int, d Domain) (*Curve, error) {
	return NewCurveFromSource(Points(append([]Point(nil), points...)), sizes, d)
}

// NewCurveFromSource is like [NewCurve] but reads positions from src on
// every evaluation instead of copying them.
func NewCurveFromSource(src PositionSource, sizes []int, d Domain) (*Curve, error) {
	n := src.Len()
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientControlPoints, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrInvalidPartition)
	}
	var sum int
	for i, size := range sizes {
		if size < 1 {
			return nil, fmt.Errorf("%w: segment %d has size %d", ErrInvalidPartition, i, size)
		}
		sum += size
	}
	if sum != n {
		return nil, fmt.Errorf("%w: segment sizes sum to %d, but there are %d control points", ErrInvalidPartition, sum, n)
	}

	c := &Curve{
		src:    src,
		sizes:  append([]int(nil), sizes...),
		first:  make([]int, len(sizes)),
		lower:  make([]float64, len(sizes)),
		upper:  make([]float64, len(sizes)),
		frac:   make([]float64, len(sizes)),
		domain: d,
	}
	// Bounds are computed from integer prefix sums so that the last upper
	// bound is exactly 1.
	var prefix int
	total := float64(n)
	for i, size := range sizes {
		c.first[i] = prefix
		c.lower[i] = float64(prefix) / total
		prefix += size
		c.upper[i] = float64(prefix) / total
		c.frac[i] = float64(size) / total
	}
	return c, nil
}

// Domain returns the curve's parameter domain.
func (c *Curve) Domain() Domain { return c.domain }

// NumSegments returns the number of segments.
func (c *Curve) NumSegments() int { return len(c.sizes) }

// Segment returns segment i with the current control point positions.
func (c *Curve) Segment(i int) Segment {
	pts := make([]Point, c.sizes[i])
	for j := range pts {
		pts[j] = c.src.Position(c.first[i] + j)
	}
	return Segment{Points: pts}
}

// Locate maps the global parameter t to a segment index and a local
// parameter u ∈ [0, 1]. A parameter on the boundary between two segments
// belongs to the earlier one, which makes Eval left-continuous at
// junctions. Locate returns -1 for a curve without segments.
func (c *Curve) Locate(t float64) (seg int, u float64) {
	return c.locate(c.domain.Normalize(t))
}

func (c *Curve) locate(t float64) (int, float64) {
	if len(c.sizes) == 0 {
		return -1, 0
	}
	seg := len(c.sizes) - 1
	for i, ub := range c.upper {
		if t <= ub {
			seg = i
			break
		}
	}
	u := (t - c.lower[seg]) / c.frac[seg]
	return seg, min(max(u, 0), 1)
}

// Eval returns the position on the curve at t, after normalizing t
// according to the curve's domain.
func (c *Curve) Eval(t float64) Point {
	return c.evalAt(c.domain.Normalize(t))
}

// evalAt evaluates the curve at t ∈ [0, 1] without normalization, so that
// t = 1 is the end of the curve under either domain.
func (c *Curve) evalAt(t float64) Point {
	seg, u := c.locate(t)
	if seg < 0 {
		return Point{}
	}
	return evalBezier(c.src, c.first[seg], c.sizes[seg], u)
}

// Start returns the first point of the curve.
func (c *Curve) Start() Point { return c.evalAt(0) }

// End returns the last point of the curve. Under [Wrap] this is the limit
// of Eval as t approaches 1, not Eval(1).
func (c *Curve) End() Point { return c.evalAt(1) }

// Tangent returns the derivative of the curve with respect to the global
// parameter at t. It is not normalized and is zero on stationary segments.
func (c *Curve) Tangent(t float64) Vec3 {
	seg, u := c.Locate(t)
	if seg < 0 {
		return Vec3{}
	}
	return c.Segment(seg).Tangent(u).Div(c.frac[seg])
}

// Heading returns the unit direction of travel at t, or the zero vector where
// the curve doesn't move.
func (c *Curve) Heading(t float64) Vec3 {
	v := c.Tangent(t)
	if v.Hypot2() == 0 {
		return Vec3{}
	}
	return v.Normalize()
}

// Sample returns n points evenly spaced in parameter space over [0, 1],
// including both ends of the curve. n is raised to 2 if it is smaller.
func (c *Curve) Sample(n int) []Point {
	n = max(n, 2)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = c.evalAt(float64(i) / float64(n-1))
	}
	return pts
}
