// Package sim moves agents along lanes of Bézier track in fixed timesteps.
//
// Each step has two passes:
//
//  1. Motion pass - every agent applies any scripted lane changes that are
//     due, integrates its acceleration into its speed, and advances along its
//     current lane by speed × timestep.
//
//  2. Sensing pass - the agents on every lane are ordered along the curve
//     and each one measures the distance to the next agent ahead.
package sim

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"honnef.co/go/track"
)

var (
	// ErrInvalidTimeStep is returned for a time step that isn't positive.
	ErrInvalidTimeStep = errors.New("time step must be positive")
	// ErrDuplicateID is returned when two routes or two agents share an ID.
	ErrDuplicateID = errors.New("duplicate ID")
	// ErrUnknownRoute is returned when an agent refers to a route that
	// doesn't exist.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrNoRoutes is returned for an agent without lanes.
	ErrNoRoutes = errors.New("agent has no routes")
	// ErrUnknownDomain is returned for a route domain other than "wrap" or
	// "clamp".
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrUnknownMove is returned for a lane change direction other than
	// "left" or "right".
	ErrUnknownMove = errors.New("unknown lane change direction")
)

// agent is the simulation state of one mover.
type agent struct {
	id       string
	lanes    []*route
	lane     int
	param    float64
	speed    float64
	accel    float64
	maxSpeed float64
	samples  int

	changes    []LaneChange // ordered by time
	nextChange int

	gap *float64
}

func newAgent(spec AgentSpec, routes map[string]*route) (*agent, error) {
	if len(spec.Routes) == 0 {
		return nil, ErrNoRoutes
	}
	lanes := make([]*route, len(spec.Routes))
	for i, id := range spec.Routes {
		r, ok := routes[id]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRoute, id)
		}
		lanes[i] = r
	}
	for _, ch := range spec.LaneChanges {
		if ch.Direction != "left" && ch.Direction != "right" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, ch.Direction)
		}
	}
	samples := spec.Samples
	if samples <= 0 {
		samples = defaultSamples
	}
	a := &agent{
		id:       spec.AgentID,
		lanes:    lanes,
		lane:     min(max(spec.Lane, 0), len(lanes)-1),
		speed:    max(spec.Speed, 0),
		accel:    spec.Acceleration,
		maxSpeed: spec.MaxSpeed,
		samples:  samples,
		changes:  slices.Clone(spec.LaneChanges),
	}
	slices.SortStableFunc(a.changes, func(x, y LaneChange) int {
		return cmp.Compare(x.Time, y.Time)
	})
	a.param = a.route().curve.Domain().Normalize(spec.Param)
	return a, nil
}

func (a *agent) route() *route {
	return a.lanes[a.lane]
}

// applyLaneChanges performs every scripted lane change due at or before
// now. Moving past the outermost lane keeps the agent where it is.
func (a *agent) applyLaneChanges(now float64) {
	for a.nextChange < len(a.changes) && a.changes[a.nextChange].Time <= now {
		switch a.changes[a.nextChange].Direction {
		case "left":
			a.lane = max(a.lane-1, 0)
		case "right":
			a.lane = min(a.lane+1, len(a.lanes)-1)
		}
		a.nextChange++
	}
	a.param = a.route().curve.Domain().Normalize(a.param)
}

// advance moves the agent along its lane for dt seconds.
func (a *agent) advance(dt float64) error {
	a.speed += a.accel * dt
	a.speed = max(a.speed, 0)
	if a.maxSpeed > 0 {
		a.speed = min(a.speed, a.maxSpeed)
	}
	dist := a.speed * dt
	if dist == 0 {
		return nil
	}

	c := a.route().curve
	clamped := c.Domain() == track.Clamp
	if clamped {
		remaining, err := c.Arclen(a.param, 1, a.samples)
		if err != nil {
			return err
		}
		if dist >= remaining {
			a.stop()
			return nil
		}
	}
	t, err := c.SolveForArclen(a.param, dist, a.samples, nil)
	if clamped && errors.Is(err, track.ErrConvergence) {
		// The solver's walk measures the rest of the lane a little
		// differently from Arclen, so it can still run out of track.
		a.stop()
		return nil
	}
	if err != nil {
		return err
	}
	a.param = t
	return nil
}

// stop parks the agent at the end of a clamped lane.
func (a *agent) stop() {
	a.param = 1
	a.speed = 0
}

func (a *agent) log() AgentLog {
	r := a.route()
	return AgentLog{
		AgentID:           a.id,
		RouteID:           r.id,
		Lane:              a.lane,
		Param:             a.param,
		Position:          vectorOf(r.curve.Eval(a.param)),
		Heading:           vectorOf(track.Point(r.curve.Heading(a.param))),
		Speed:             a.speed,
		NextAgentDistance: a.gap,
	}
}

// Engine is the simulation state.
type Engine struct {
	meta    SimulationMeta
	routes  []*route
	agents  []*agent
	curTime float64
}

// NewEngine constructs an Engine from a SimulationInput, building every
// route's curve and placing each agent on its starting lane.
func NewEngine(input SimulationInput) (*Engine, error) {
	if !(input.Meta.TimeStep > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidTimeStep, input.Meta.TimeStep)
	}

	byID := make(map[string]*route, len(input.Routes))
	routes := make([]*route, 0, len(input.Routes))
	for _, spec := range input.Routes {
		if _, ok := byID[spec.RouteID]; ok {
			return nil, fmt.Errorf("route %q: %w", spec.RouteID, ErrDuplicateID)
		}
		r, err := newRoute(spec)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", spec.RouteID, err)
		}
		byID[spec.RouteID] = r
		routes = append(routes, r)
	}

	seen := make(map[string]bool, len(input.Agents))
	agents := make([]*agent, 0, len(input.Agents))
	for _, spec := range input.Agents {
		if seen[spec.AgentID] {
			return nil, fmt.Errorf("agent %q: %w", spec.AgentID, ErrDuplicateID)
		}
		seen[spec.AgentID] = true
		a, err := newAgent(spec, byID)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", spec.AgentID, err)
		}
		agents = append(agents, a)
	}

	return &Engine{
		meta:   input.Meta,
		routes: routes,
		agents: agents,
	}, nil
}

// Run executes the full simulation and returns the log.
func (e *Engine) Run() (SimulationLog, error) {
	log := SimulationLog{
		Meta:   e.meta,
		Routes: make([]RouteOutline, len(e.routes)),
	}
	for i, r := range e.routes {
		log.Routes[i] = r.outline()
	}
	for e.curTime <= e.meta.RunTime {
		row, err := e.step()
		if err != nil {
			return SimulationLog{}, fmt.Errorf("at t=%.2f: %w", e.curTime, err)
		}
		log.Output = append(log.Output, row)
		e.curTime += e.meta.TimeStep
	}
	return log, nil
}

// step advances the simulation by one timestep and returns the resulting
// log row.
func (e *Engine) step() (SimulationLogRow, error) {
	dt := e.meta.TimeStep

	// Pass 1: lane changes and motion.
	for _, a := range e.agents {
		a.applyLaneChanges(e.curTime)
		if err := a.advance(dt); err != nil {
			return SimulationLogRow{}, fmt.Errorf("agent %q: %w", a.id, err)
		}
	}

	// Pass 2: distance to the next agent on the same lane.
	for _, r := range e.routes {
		r.occupants = r.occupants[:0]
	}
	for _, a := range e.agents {
		r := a.route()
		r.occupants = append(r.occupants, a)
	}
	for _, r := range e.routes {
		if err := r.measureGaps(); err != nil {
			return SimulationLogRow{}, fmt.Errorf("route %q: %w", r.id, err)
		}
	}

	logs := make([]AgentLog, len(e.agents))
	for i, a := range e.agents {
		logs[i] = a.log()
	}
	return SimulationLogRow{Timestamp: e.curTime, AgentLogs: logs}, nil
}

// RunJSON accepts a JSON-encoded SimulationInput, runs the simulation, and
// returns a JSON-encoded SimulationLog.
func RunJSON(jsonInput []byte) ([]byte, error) {
	var input SimulationInput
	if err := json.Unmarshal(jsonInput, &input); err != nil {
		return nil, fmt.Errorf("invalid input JSON: %w", err)
	}

	e, err := NewEngine(input)
	if err != nil {
		return nil, err
	}

	simLog, err := e.Run()
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(simLog)
	if err != nil {
		return nil, fmt.Errorf("marshaling output: %w", err)
	}
	return out, nil
}
