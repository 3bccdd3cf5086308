package track

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the default tolerance, in length units, of
// [Curve.SolveForArclen].
const DefaultEpsilon = 1e-4

// SolveOptions configures [Curve.SolveForArclen]. The zero value selects
// the defaults.
type SolveOptions struct {
	// Epsilon is the accepted difference between the requested and the
	// travelled distance. Defaults to DefaultEpsilon.
	Epsilon float64
	// MaxIterations bounds the number of search steps. Defaults to a bound
	// derived from the sample count and Epsilon that allows for a few laps
	// of travel.
	MaxIterations int
}

// DefaultMaxIterations returns the iteration bound that
// [Curve.SolveForArclen] uses when none is configured.
//
// The forward walk needs up to n steps per lap and every halving of the
// step needs at most a couple of steps, with about log2(1/epsilon) halvings.
func DefaultMaxIterations(n int, epsilon float64) int {
	halvings := int(math.Ceil(math.Log2(1 / epsilon)))
	return 4*max(n, 1) + 8*max(halvings, 0) + 64
}

// SolveForArclen returns the parameter reached by travelling dist along the
// curve from t0 in the direction of increasing t. n controls the initial
// step size of 1/n. The result is normalized into the curve's domain.
//
// The search walks forward until it overshoots, then reverses with half the
// step, halving again at every change of direction, until the travelled
// distance is within epsilon of dist. Travelled distance is the length of
// the polyline through the visited parameters, which isn't the polyline
// [Curve.Arclen] samples. Measuring the result with Arclen only agrees with
// dist to within epsilon when n is large relative to the curvature; with few
// samples on a tight bend the two can differ by much more.
//
// It returns [ErrInvalidRange] for a negative dist and [ErrConvergence] if
// the iteration bound is exhausted or, under [Clamp], the end of the curve
// is reached before dist.
func (c *Curve) SolveForArclen(t0, dist float64, n int, opts *SolveOptions) (float64, error) {
	if dist < 0 || math.IsNaN(dist) {
		return 0, fmt.Errorf("%w: distance %g", ErrInvalidRange, dist)
	}
	epsilon := DefaultEpsilon
	var maxIter int
	if opts != nil {
		if opts.Epsilon > 0 {
			epsilon = opts.Epsilon
		}
		maxIter = opts.MaxIterations
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations(n, epsilon)
	}

	start := c.domain.Normalize(t0)
	t := start
	step := 1 / float64(max(n, 1))
	var travelled float64
	overstep := false
	for range maxIter {
		if math.Abs(travelled-dist) <= epsilon {
			return c.domain.Normalize(t), nil
		}

		if travelled < dist {
			if overstep {
				step /= 2
				overstep = false
			}
			next := t + step
			if c.domain == Clamp && next >= 1 {
				if t == 1 {
					return 0, fmt.Errorf("%w: distance %g exceeds the %g remaining from t=%g", ErrConvergence, dist, travelled, start)
				}
				next = 1
			}
			travelled += c.chord(t, next)
			t = next
		} else {
			if !overstep {
				step /= 2
				overstep = true
			}
			next := max(t-step, start)
			travelled -= c.chord(next, t)
			t = next
		}
	}
	return 0, fmt.Errorf("%w: reached %g of %g after %d iterations", ErrConvergence, travelled, dist, maxIter)
}
