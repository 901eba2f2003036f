package source

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "tabextract-document.json"

const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["pages"],
  "properties": {
    "pages": {
      "type": "array",
      "items": {"$ref": "#/$defs/page"}
    }
  },
  "$defs": {
    "page": {
      "type": "object",
      "required": ["number", "tokens"],
      "properties": {
        "number": {"type": "integer", "minimum": 1},
        "width": {"type": "number", "minimum": 0},
        "height": {"type": "number", "minimum": 0},
        "tokens": {"type": "array", "items": {"$ref": "#/$defs/token"}},
        "rulings": {"type": "array", "items": {"$ref": "#/$defs/ruling"}},
        "ruling_scale": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "token": {
      "type": "object",
      "required": ["text", "left", "top", "right", "bottom"],
      "properties": {
        "text": {"type": "string"},
        "left": {"type": "number"},
        "top": {"type": "number"},
        "right": {"type": "number"},
        "bottom": {"type": "number"},
        "font_size": {"type": "number", "minimum": 0}
      }
    },
    "ruling": {
      "type": "object",
      "required": ["orientation", "position", "start", "end"],
      "properties": {
        "orientation": {"enum": ["horizontal", "vertical", "h", "v"]},
        "position": {"type": "number"},
        "start": {"type": "number"},
        "end": {"type": "number"}
      }
    }
  }
}`

var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// validateDocument checks raw JSON against the token document schema.
func validateDocument(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}
