package storage

import (
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// boardSchemaJSON describes a persisted board: exactly three columns of
// task objects with string fields. IDs are optional so files written by
// hand, or before IDs existed, still load. Tasks may use the older
// task/time keys in place of label/effort.
const boardSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["columns"],
  "properties": {
    "columns": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {
        "type": ["array", "null"],
        "items": { "$ref": "#/$defs/task" }
      }
    },
    "next_id": { "type": "integer", "minimum": 0 }
  },
  "$defs": {
    "task": {
      "type": "object",
      "required": ["date"],
      "anyOf": [
        { "required": ["label", "effort"] },
        { "required": ["task", "time"] }
      ],
      "properties": {
        "id": { "type": "integer", "minimum": 0 },
        "label": { "type": "string" },
        "date": { "type": "string" },
        "effort": { "type": "string" },
        "task": { "type": "string" },
        "time": { "type": "string" }
      }
    }
  }
}`

var boardSchema = jsonschema.MustCompileString("board.schema.json", boardSchemaJSON)

// validateDocument checks a decoded JSON document against the board schema.
func validateDocument(doc interface{}) error {
	if err := boardSchema.Validate(doc); err != nil {
		return fmt.Errorf("validating board document: %w", err)
	}
	return nil
}
