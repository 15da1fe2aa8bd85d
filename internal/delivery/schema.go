package delivery

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// wireSchema is the submission wire contract. Scores are bounded here so
// a clamping bug can never ship an out-of-range value.
const wireSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["agent_id", "report_type", "communication", "orchestration", "problem_solving", "tool_fluency", "domain", "generated_at"],
  "properties": {
    "agent_id": {"type": "string", "minLength": 1},
    "session_id": {"type": "string"},
    "report_type": {"enum": ["session_analysis", "periodic_summary", "historical_analysis"]},
    "communication": {"$ref": "#/$defs/dimension"},
    "orchestration": {"$ref": "#/$defs/dimension"},
    "problem_solving": {"$ref": "#/$defs/dimension"},
    "tool_fluency": {"$ref": "#/$defs/dimension"},
    "domain": {"$ref": "#/$defs/dimension"}
  },
  "$defs": {
    "dimension": {
      "type": "object",
      "required": ["score"],
      "properties": {
        "score": {"type": "integer", "minimum": 0, "maximum": 100},
        "evidence": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// validatePayload checks a marshaled report against the wire schema.
func validatePayload(payload []byte) error {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(wireSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parsing wire schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("report.json", doc); err != nil {
			schemaErr = fmt.Errorf("registering wire schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("report.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	value, err := jsonschema.UnmarshalJSON(strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}
	return compiledSchema.Validate(value)
}
