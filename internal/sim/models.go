package sim

import "honnef.co/go/track"

// Vector is a position encoded as a JSON array [x, y, z].
type Vector [3]float64

func vectorOf(p track.Point) Vector {
	return Vector{p.X, p.Y, p.Z}
}

func (v Vector) point() track.Point {
	return track.Pt(v[0], v[1], v[2])
}

// SimulationMeta holds the identity and timing parameters for a simulation run.
type SimulationMeta struct {
	SimulationID string  `json:"simulation_id"`
	RunTime      float64 `json:"run_time"`  // seconds
	TimeStep     float64 `json:"time_step"` // seconds
}

// RouteSpec describes one lane of track.
type RouteSpec struct {
	RouteID       string   `json:"route_id"`
	ControlPoints []Vector `json:"control_points" jsonschema:"minItems=2"`
	SegmentSizes  []int    `json:"segment_sizes" jsonschema:"minItems=1"`
	Domain        string   `json:"domain,omitempty" jsonschema:"enum=wrap,enum=clamp"` // defaults to wrap
	OutlineSize   int      `json:"outline_size,omitempty"`                             // points in the logged outline, defaults to 20
}

// LaneChange moves an agent one lane to the left or right once the
// simulation reaches Time.
type LaneChange struct {
	Time      float64 `json:"time"`
	Direction string  `json:"direction" jsonschema:"enum=left,enum=right"`
}

// AgentSpec describes one agent and its initial state.
type AgentSpec struct {
	AgentID      string       `json:"agent_id"`
	Routes       []string     `json:"routes" jsonschema:"minItems=1"` // lanes, from left to right
	Lane         int          `json:"lane,omitempty"`
	Param        float64      `json:"param,omitempty"`
	Speed        float64      `json:"speed,omitempty"`        // units/s
	Acceleration float64      `json:"acceleration,omitempty"` // units/s²
	MaxSpeed     float64      `json:"max_speed,omitempty"`    // units/s, 0 is unlimited
	Samples      int          `json:"samples,omitempty"`      // curve approximation points, defaults to 100
	LaneChanges  []LaneChange `json:"lane_changes,omitempty"`
}

// SimulationInput is the JSON-serialisable input to the engine.
type SimulationInput struct {
	Meta   SimulationMeta `json:"simulation_meta"`
	Routes []RouteSpec    `json:"routes"`
	Agents []AgentSpec    `json:"agents"`
}

// AgentLog is the state of one agent after a timestep.
type AgentLog struct {
	AgentID  string  `json:"agent_id"`
	RouteID  string  `json:"route_id"`
	Lane     int     `json:"lane"`
	Param    float64 `json:"param"`
	Position Vector  `json:"position"`
	Heading  Vector  `json:"heading"` // unit direction of travel, zero where the lane doesn't move
	Speed    float64 `json:"speed"`
	// NextAgentDistance is the distance along the route to the next agent
	// ahead, or nil if there is none.
	NextAgentDistance *float64 `json:"next_agent_distance"`
}

// SimulationLogRow is the state of all agents at a single simulation timestep.
type SimulationLogRow struct {
	Timestamp float64    `json:"timestamp"` // seconds
	AgentLogs []AgentLog `json:"agent_logs"`
}

// RouteOutline is a route's curve sampled for display.
type RouteOutline struct {
	RouteID string   `json:"route_id"`
	Length  float64  `json:"length"`
	Points  []Vector `json:"points"`
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta   SimulationMeta     `json:"simulation_meta"`
	Routes []RouteOutline     `json:"routes"`
	Output []SimulationLogRow `json:"output"`
}
