// internal/lead/extraction/schema.go
package extraction

import "lead-assistant/internal/common/validation"

// Every key is optional and unknown keys are tolerated; only the shapes of
// the known keys are enforced.
const extractionSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"budget": {"type": ["string", "number", "null"]},
		"location": {
			"anyOf": [
				{"type": ["string", "null"]},
				{"type": "array", "items": {"type": "string"}}
			]
		},
		"property_type": {"type": ["string", "null"]},
		"additional_requirements": {"type": ["string", "null"]}
	},
	"additionalProperties": true
}`

var extractionSchema = validation.MustSchema(extractionSchemaJSON)
