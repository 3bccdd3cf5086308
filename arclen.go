package track

import (
	"fmt"
	"math"
)

// Arclen approximates the distance travelled along the curve from t0 to t1
// by summing the lengths of a polyline through n evenly spaced samples.
// n is raised to 2 if it is smaller.
//
// Distance is always measured in the direction of increasing t. Under
// [Wrap], t1 < t0 describes travel across the end of the curve and is
// measured as the length of [t0, 1] plus the length of [0, t1], each sampled
// with n points. Both ends are normalized first, so a whole lap reports 0;
// use [Curve.Length] for that. Under [Clamp], t1 < t0 returns
// [ErrInvalidRange].
func (c *Curve) Arclen(t0, t1 float64, n int) (float64, error) {
	n = max(n, 2)
	if c.domain == Clamp {
		if t1 < t0 {
			return 0, fmt.Errorf("%w: reversed parameter range [%g, %g]", ErrInvalidRange, t0, t1)
		}
		return c.polylineLength(c.domain.Normalize(t0), c.domain.Normalize(t1), n), nil
	}

	a, b := c.domain.Normalize(t0), c.domain.Normalize(t1)
	if b >= a {
		return c.polylineLength(a, b, n), nil
	}
	return c.polylineLength(a, 1, n) + c.polylineLength(0, b, n), nil
}

// Length approximates the length of the whole curve with n samples.
func (c *Curve) Length(n int) float64 {
	return c.polylineLength(0, 1, max(n, 2))
}

// polylineLength sums the distances between n samples spread evenly over
// [a, b] ⊆ [0, 1].
func (c *Curve) polylineLength(a, b float64, n int) float64 {
	if a == b || len(c.sizes) == 0 {
		return 0
	}
	prev := c.evalAt(a)
	var length float64
	for i := 1; i < n; i++ {
		t := a + (b-a)*float64(i)/float64(n-1)
		if i == n-1 {
			t = b
		}
		p := c.evalAt(t)
		length += prev.Distance(p)
		prev = p
	}
	return length
}

// chord returns the distance between the points at raw parameters a <= b,
// which are at most one lap apart. Under Wrap, a chord that crosses the
// seam goes through the end and the start of the curve instead of jumping
// straight between them.
func (c *Curve) chord(a, b float64) float64 {
	if c.domain == Wrap && math.Floor(a) != math.Floor(b) {
		pa := c.evalAt(Wrap.Normalize(a))
		pb := c.evalAt(Wrap.Normalize(b))
		return pa.Distance(c.End()) + c.Start().Distance(pb)
	}
	return c.Eval(a).Distance(c.Eval(b))
}
