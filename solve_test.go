package track

import (
	"errors"
	"testing"
)

func TestSolveZeroDistance(t *testing.T) {
	for _, d := range []Domain{Wrap, Clamp} {
		c := bent(t, d)
		for _, t0 := range []float64{0, 0.3, 3.0 / 7, 0.75} {
			got, err := c.SolveForArclen(t0, 0, 100, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got != t0 {
				t.Errorf("%v: SolveForArclen(%g, 0) = %g", d, t0, got)
			}
		}
	}

	c := bent(t, Wrap)
	got, err := c.SolveForArclen(1.25, 0, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.25 {
		t.Errorf("got %g, want the normalized start 0.25", got)
	}
}

func TestSolveStraight(t *testing.T) {
	c := twoSegments(t, Clamp)
	// The quadratic moves at 2/0.6 units per unit of t.
	got, err := c.SolveForArclen(0, 1, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "t", got, 0.3, DefaultEpsilon*0.6/2)

	// Starting mid-way and crossing into the line.
	got, err = c.SolveForArclen(0.3, 2, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := c.Arclen(0.3, got, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got <= 0.6 {
		t.Errorf("got %g, want a parameter past the junction", got)
	}
	// The polyline through the junction cuts the corner, so only check
	// against the solver's own measure loosely.
	approxEqual(t, "travelled", l, 2, 0.05)
}

func TestSolveRoundTrip(t *testing.T) {
	const n = 1000
	for _, d := range []Domain{Wrap, Clamp} {
		c := bent(t, d)
		total := c.Length(n)
		for _, frac := range []float64{0.05, 0.25, 0.5, 0.8, 0.95} {
			dist := frac * total
			got, err := c.SolveForArclen(0, dist, n, nil)
			if err != nil {
				t.Fatalf("%v: distance %g: %v", d, dist, err)
			}
			l, err := c.Arclen(0, got, n)
			if err != nil {
				t.Fatal(err)
			}
			approxEqual(t, d.String(), l, dist, 2*DefaultEpsilon)
		}
	}

	// The whole length ends on the last point. Under Wrap that's the seam,
	// so the result may come back as the start.
	c := bent(t, Clamp)
	total := c.Length(n)
	got, err := c.SolveForArclen(0, total, n, nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := c.Arclen(0, got, n)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "whole length", l, total, 2*DefaultEpsilon)

	c = bent(t, Wrap)
	got, err = c.SolveForArclen(0, total, n, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := c.Eval(got)
	if d := min(p.Distance(c.Start()), p.Distance(c.End())); d > 1e-3 {
		t.Errorf("whole lap ended at %v, %g away from the seam", p, d)
	}
}

func TestSolveCustomEpsilon(t *testing.T) {
	// On the straight quadratic the polyline is exact, so the result is
	// as precise as the requested tolerance.
	c := twoSegments(t, Clamp)
	const dist = 0.123456789
	got, err := c.SolveForArclen(0, dist, 100, &SolveOptions{Epsilon: 1e-10})
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "travelled", got*2/0.6, dist, 1e-9)
}

func TestSolveWrapSeam(t *testing.T) {
	c := square(t, Wrap)
	got, err := c.SolveForArclen(0.875, 1, 8, nil)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "closed loop", got, 0.125, 1e-12)

	// Several laps.
	got, err = c.SolveForArclen(0, 10.5, 8, nil)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "laps", got, 0.625, 1e-12)

	open, err := NewCurve([]Point{Pt(0, 0, 0), Pt(1, 0, 0), Pt(2, 0, 0)}, []int{3}, Wrap)
	if err != nil {
		t.Fatal(err)
	}
	got, err = open.SolveForArclen(0.75, 1, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "open curve", got, 0.25, DefaultEpsilon)
}

func TestSolveNegativeDistance(t *testing.T) {
	c := square(t, Wrap)
	if _, err := c.SolveForArclen(0, -1, 8, nil); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("got error %v, want %v", err, ErrInvalidRange)
	}
}

func TestSolveBeyondEnd(t *testing.T) {
	c := twoSegments(t, Clamp)
	for _, opts := range []*SolveOptions{nil, {MaxIterations: 10}, {MaxIterations: 1 << 20}} {
		if _, err := c.SolveForArclen(0, 1000, 20, opts); !errors.Is(err, ErrConvergence) {
			t.Errorf("got error %v, want %v", err, ErrConvergence)
		}
	}
}

func TestSolveIterationBound(t *testing.T) {
	c := square(t, Wrap)
	// 1000 units around a square of perimeter 4 take 2000 steps of 0.5.
	_, err := c.SolveForArclen(0, 1000, 8, &SolveOptions{MaxIterations: 50})
	if !errors.Is(err, ErrConvergence) {
		t.Errorf("got error %v, want %v", err, ErrConvergence)
	}
	got, err := c.SolveForArclen(0, 1000, 8, &SolveOptions{MaxIterations: 3000})
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, "long trip", got, 0, 1e-9)
}

func TestSolveUnreachableEpsilon(t *testing.T) {
	// A tolerance below floating point resolution can't be met. The solver
	// must give up instead of spinning.
	c := bent(t, Wrap)
	got, err := c.SolveForArclen(0, 2.345, 100, &SolveOptions{Epsilon: 1e-300})
	if err == nil {
		// Hitting the distance exactly is allowed, if unlikely.
		l, err := c.Arclen(0, got, 100000)
		if err != nil {
			t.Fatal(err)
		}
		approxEqual(t, "exact hit", l, 2.345, 1e-3)
	} else if !errors.Is(err, ErrConvergence) {
		t.Errorf("got error %v, want %v", err, ErrConvergence)
	}
}

func TestDefaultMaxIterations(t *testing.T) {
	if got := DefaultMaxIterations(100, 1e-4); got != 576 {
		t.Errorf("got %d, want 576", got)
	}
	if got := DefaultMaxIterations(0, 1); got != 68 {
		t.Errorf("got %d, want 68", got)
	}
}
