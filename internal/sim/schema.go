package sim

import "github.com/invopop/jsonschema"

// Schema returns the JSON Schema of SimulationInput.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(SimulationInput))
	schema.Title = "Track simulation input"
	schema.Description = "Routes of Bézier track and the agents that move along them"
	return schema
}
