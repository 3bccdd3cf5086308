package sim

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"honnef.co/go/track"
)

const (
	defaultOutlineSize = 20
	defaultSamples     = 100
)

// route is a lane of track and the agents currently on it.
type route struct {
	id          string
	curve       *track.Curve
	outlineSize int

	// occupants is ordered by parameter, then by agent ID.
	occupants []*agent
}

func parseDomain(s string) (track.Domain, error) {
	switch s {
	case "", "wrap":
		return track.Wrap, nil
	case "clamp":
		return track.Clamp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

func newRoute(spec RouteSpec) (*route, error) {
	d, err := parseDomain(spec.Domain)
	if err != nil {
		return nil, err
	}
	pts := make([]track.Point, len(spec.ControlPoints))
	for i, v := range spec.ControlPoints {
		pts[i] = v.point()
	}
	c, err := track.NewCurve(pts, spec.SegmentSizes, d)
	if err != nil {
		return nil, err
	}
	size := spec.OutlineSize
	if size <= 0 {
		size = defaultOutlineSize
	}
	return &route{id: spec.RouteID, curve: c, outlineSize: size}, nil
}

func (r *route) outline() RouteOutline {
	pts := r.curve.Sample(r.outlineSize)
	out := RouteOutline{
		RouteID: r.id,
		Length:  r.curve.Length(r.outlineSize),
		Points:  make([]Vector, len(pts)),
	}
	for i, p := range pts {
		out.Points[i] = vectorOf(p)
	}
	return out
}

// sortOccupants orders the route's agents along the curve.
func (r *route) sortOccupants() {
	slices.SortFunc(r.occupants, func(a, b *agent) int {
		if c := cmp.Compare(a.param, b.param); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
}

// measureGaps sets every occupant's distance to the next agent ahead of
// it. On a wrapping route the agent furthest along follows the first one
// around the loop; on a clamped route it has nobody ahead.
func (r *route) measureGaps() error {
	r.sortOccupants()
	n := len(r.occupants)
	for i, a := range r.occupants {
		a.gap = nil
		if n < 2 {
			continue
		}
		if i == n-1 && r.curve.Domain() == track.Clamp {
			continue
		}
		next := r.occupants[(i+1)%n]
		gap, err := r.curve.Arclen(a.param, next.param, a.samples)
		if err != nil {
			return fmt.Errorf("agent %q to %q: %w", a.id, next.id, err)
		}
		a.gap = &gap
	}
	return nil
}
