package gateway

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// generateQuestionsSchema constrains the question-generation response.
// Option counts and answer ranges get a second, stricter pass in
// diagnostic.ValidateQuestion; the schema guards structure.
var generateQuestionsSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"topic", "stem", "options", "answerIndex"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string"},
					"topic":       map[string]any{"type": "string"},
					"stem":        map[string]any{"type": "string"},
					"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"answerIndex": map[string]any{"type": "integer", "minimum": 0},
					"rationale":   map[string]any{"type": "string"},
					"difficulty":  map[string]any{"type": "string"},
					"bloom":       map[string]any{"type": "string"},
				},
			},
		},
	},
}

// parseTopicsSchema constrains the topic-parsing response.
var parseTopicsSchema = map[string]any{
	"type":     "object",
	"required": []any{"topics"},
	"properties": map[string]any{
		"topics": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "weight"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string"},
					"name":    map[string]any{"type": "string"},
					"weight":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
					"prereqs": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

// validatePayload validates raw JSON against a named schema definition.
// Returns *ErrInvalidPayload on failure.
func validatePayload(operation, name string, definition map[string]any, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{
			Operation: operation,
			Content:   raw,
			Err:       fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(name, definition)
	if err != nil {
		return &ErrInvalidPayload{
			Operation: operation,
			Content:   raw,
			Err:       fmt.Errorf("compile schema %q: %w", name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidPayload{
			Operation: operation,
			Content:   raw,
			Err:       fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not a Go map of
	// mixed concrete types. Round-trip through JSON to normalize.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
