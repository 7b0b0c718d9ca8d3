package backup

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://liftmate-bundle.json"

// bundleSchema describes an export file. Settings are only required to be an
// object so that legacy documents still import.
var bundleSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "settings", "workouts"},
	"properties": map[string]any{
		"version":    map[string]any{"type": "integer", "minimum": 1, "maximum": BundleVersion},
		"exportedAt": map[string]any{"type": "string"},
		"settings":   map[string]any{"type": "object"},
		"program": map[string]any{
			"type":     []any{"object", "null"},
			"required": []any{"t1", "t2", "nextWorkoutType", "workoutCount"},
			"properties": map[string]any{
				"t1":              map[string]any{"type": "object", "additionalProperties": map[string]any{"$ref": "#/$defs/liftState"}},
				"t2":              map[string]any{"type": "object", "additionalProperties": map[string]any{"$ref": "#/$defs/liftState"}},
				"t3":              map[string]any{"type": []any{"object", "null"}},
				"nextWorkoutType": map[string]any{"$ref": "#/$defs/workoutType"},
				"workoutCount":    map[string]any{"type": "integer", "minimum": 0},
			},
		},
		"workouts": map[string]any{
			"type":  []any{"array", "null"},
			"items": map[string]any{"$ref": "#/$defs/workout"},
		},
	},
	"$defs": map[string]any{
		"workoutType": map[string]any{"enum": []any{"A1", "B1", "A2", "B2"}},
		"tier":        map[string]any{"enum": []any{"T1", "T2", "T3"}},
		"liftState": map[string]any{
			"type":     "object",
			"required": []any{"liftId", "tier", "weight", "stage"},
			"properties": map[string]any{
				"liftId": map[string]any{"type": "string", "minLength": 1},
				"tier":   map[string]any{"$ref": "#/$defs/tier"},
				"weight": map[string]any{"type": "number", "exclusiveMinimum": 0},
				"stage":  map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
			},
		},
		"workout": map[string]any{
			"type":     "object",
			"required": []any{"id", "date", "type", "exercises"},
			"properties": map[string]any{
				"id":   map[string]any{"type": "string", "minLength": 1},
				"date": map[string]any{"type": "string"},
				"type": map[string]any{"$ref": "#/$defs/workoutType"},
				"exercises": map[string]any{
					"type": []any{"array", "null"},
					"items": map[string]any{
						"type":     "object",
						"required": []any{"liftId", "tier", "weight", "sets"},
						"properties": map[string]any{
							"liftId": map[string]any{"type": "string", "minLength": 1},
							"tier":   map[string]any{"$ref": "#/$defs/tier"},
							"weight": map[string]any{"type": "number", "minimum": 0},
							"sets": map[string]any{
								"type": []any{"array", "null"},
								"items": map[string]any{
									"type":     "object",
									"required": []any{"reps"},
									"properties": map[string]any{
										"reps": map[string]any{"type": "integer", "minimum": 0},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants plain decoded JSON, so round trip the Go literal.
	b, err := json.Marshal(bundleSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// validateSchema checks raw against the bundle schema.
func validateSchema(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile bundle schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
