// Package track provides piecewise Bézier curves for moving agents along a
// track. A track is a chain of Bézier segments of arbitrary degree that
// share a single parameter, and the package answers the questions a mover
// asks every simulation tick: where am I at t, how far is it from t0 to t1,
// and where do I end up if I travel d units from t.
//
// # Curves and segments
//
// [Segment] is a single Bézier curve, evaluated with the explicit Bernstein
// form. Its degree is one less than its number of control points; a segment
// with a single control point is a stationary point.
//
// [Curve] chains segments. It is built from an ordered list of control
// points and a partition of those points into consecutive segments (see
// [NewCurve]). Each segment owns a share of the parameter range [0, 1]
// proportional to its number of control points, so for sizes [3, 2] the
// first segment covers [0, 0.6] and the second (0.6, 1]. A parameter that
// falls exactly on a boundary belongs to the earlier segment.
//
// Control points are read through a [PositionSource]. [NewCurve] copies the
// points into a [Points] slice; [NewCurveFromSource] reads positions from
// the source on every evaluation, so that the curve follows geometry that
// is moved after construction.
//
// # Domains
//
// Every curve has a [Domain] that decides what happens to parameters
// outside [0, 1]. [Wrap], the default, treats the track as a loop and
// reduces t to its fractional part. [Clamp] treats the track as open-ended
// and clamps t, so movement stops at the ends.
//
// # Arc length
//
// [Curve.Arclen] approximates the distance along the curve between two
// parameters by sampling a polyline. [Curve.SolveForArclen] inverts it: it
// searches for the parameter that lies a given distance ahead of a starting
// parameter. There is no closed form for this on Bézier curves, so the
// search walks forward in steps, halving the step and reversing direction
// whenever it overshoots. The search is bounded and reports
// [ErrConvergence] instead of looping when the distance can't be reached,
// for example when it exceeds the remaining length of a clamped curve.
//
// Under [Wrap], distances are measured across the end of the curve as if
// the track continued at its start. The gap between the end and the start
// of an open curve isn't counted.
package track
