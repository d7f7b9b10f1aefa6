package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	questionSchemaName = "question-bank"
	sampleSchemaName   = "sample-bank"
)

// questionBankSchema constrains the embedded question bank document.
var questionBankSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"single", "multiple", "boolean"},
			},
			"options": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"answer": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "string", "minLength": 1},
					map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
		"required":             []any{"question", "type", "options", "answer"},
		"additionalProperties": false,
	},
}

// sampleBankSchema constrains the embedded tasting-sample bank document.
var sampleBankSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":      map[string]any{"type": "string", "minLength": 1},
			"aroma":     map[string]any{"type": "string", "minLength": 1},
			"abv":       map[string]any{"type": "number"},
			"score":     map[string]any{"type": "number"},
			"equipment": map[string]any{"type": "string", "minLength": 1},
			"agents":    map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"name", "aroma", "abv", "score", "equipment", "agents"},
		"additionalProperties": false,
	},
}

var schemaDefs = map[string]map[string]any{
	questionSchemaName: questionBankSchema,
	sampleSchemaName:   sampleBankSchema,
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks raw JSON against the named bank schema.
func validate(name string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := schemaDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(def)
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
