package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const todoSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "todo"],
  "properties": {
    "id": {"type": ["integer", "string"]},
    "todo": {"type": "string"},
    "completed": {"type": "boolean"}
  }
}`

const listSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "todos": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "todo"],
        "properties": {
          "id": {"type": ["integer", "string"]},
          "todo": {"type": "string"},
          "completed": {"type": "boolean"}
        }
      }
    }
  },
  "anyOf": [
    {"$ref": "#/definitions/todos"},
    {
      "type": "object",
      "required": ["todos"],
      "properties": {"todos": {"$ref": "#/definitions/todos"}}
    }
  ]
}`

var (
	todoSchema = jsonschema.MustCompileString("todo.schema.json", todoSchemaJSON)
	listSchema = jsonschema.MustCompileString("todos.schema.json", listSchemaJSON)
)

// validate checks a response body against schema before it is decoded.
func validate(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}
