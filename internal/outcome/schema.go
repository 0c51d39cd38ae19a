package outcome

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The service is an ASP.NET API; depending on its serializer settings field
// names arrive PascalCase or camelCase, so both spellings are accepted.
const taxResultSchema = `{
	"type": "object",
	"properties": {
		"Amount": {"type": "number"},
		"amount": {"type": "number"}
	},
	"anyOf": [
		{"required": ["Amount"]},
		{"required": ["amount"]}
	]
}`

const problemDetailsSchema = `{
	"type": "object",
	"properties": {
		"Title": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1}
	},
	"anyOf": [
		{"required": ["Title"]},
		{"required": ["title"]}
	]
}`

var (
	taxResultContract      = jsonschema.MustCompileString("tax_result.json", taxResultSchema)
	problemDetailsContract = jsonschema.MustCompileString("problem_details.json", problemDetailsSchema)
)

// decodeContract parses body and checks it against schema, returning the
// decoded object.
func decodeContract(schema *jsonschema.Schema, body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errEmptyBody
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate body: %w", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("body is %T, not an object", doc)
	}
	return obj, nil
}

// firstOf returns the value of the first key present in obj.
func firstOf(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	return nil
}
