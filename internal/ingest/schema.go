package ingest

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSetSchema is the structural schema for an imported question
// set. Question IDs only need to be present; everything else is
// type-checked. Unknown fields pass through untouched.
var questionSetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":   map[string]any{"type": "string"},
		"name": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":          map[string]any{"type": "string"},
					"options":       map[string]any{"type": "array"},
					"correctAnswer": map[string]any{"type": "string"},
					"explanation":   map[string]any{"type": "string"},
				},
				"required": []any{"id", "text", "options", "correctAnswer", "explanation"},
			},
		},
	},
	"required": []any{"id", "name", "questions"},
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the question-set schema once and caches it.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any),
		// not raw bytes. Marshal then unmarshal to get a clean any
		// representation.
		defBytes, err := json.Marshal(questionSetSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-set.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}
