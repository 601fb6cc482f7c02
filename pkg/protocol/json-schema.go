package protocol

import (
	"encoding/json"
)

// JSONSchema describes the shape of a tool's input arguments. It covers
// the subset of JSON Schema the adapters actually declare: object schemas
// with typed properties, required fields, enums and numeric bounds.
type JSONSchema struct {
	Type        string                 `json:"type,omitempty"`
	Description string                 `json:"description,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Items       *JSONSchema            `json:"items,omitempty"`
	Enum        []interface{}          `json:"enum,omitempty"`
	Default     interface{}            `json:"default,omitempty"`

	// Numeric validation
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// AdditionalProperties controls the unknown-field policy during
	// argument validation: absent or false means strict (unknown fields
	// rejected), true means lenient (unknown fields ignored).
	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
}

// NewJSONSchemaFromRaw creates a JSONSchema from raw JSON data.
func NewJSONSchemaFromRaw(data json.RawMessage) (*JSONSchema, error) {
	var schema JSONSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Lenient marks the schema as accepting unknown fields.
func (s *JSONSchema) Lenient() *JSONSchema {
	lenient := true
	s.AdditionalProperties = &lenient
	return s
}

// WithDefault sets the schema's documented default value.
func (s *JSONSchema) WithDefault(value interface{}) *JSONSchema {
	s.Default = value
	return s
}

// ObjectSchema creates an object schema with the given properties and
// required field names.
func ObjectSchema(properties map[string]*JSONSchema, required []string) *JSONSchema {
	return &JSONSchema{
		Type:       "object",
		Required:   required,
		Properties: properties,
	}
}

// StringSchema creates a string schema.
func StringSchema(description string) *JSONSchema {
	return &JSONSchema{Type: "string", Description: description}
}

// StringEnumSchema creates a string schema restricted to the given values.
func StringEnumSchema(description string, values ...string) *JSONSchema {
	enum := make([]interface{}, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}
	return &JSONSchema{Type: "string", Description: description, Enum: enum}
}

// NumberSchema creates a number schema.
func NumberSchema(description string) *JSONSchema {
	return &JSONSchema{Type: "number", Description: description}
}

// IntegerSchema creates an integer schema.
func IntegerSchema(description string) *JSONSchema {
	return &JSONSchema{Type: "integer", Description: description}
}

// BoundedIntegerSchema creates an integer schema with inclusive bounds.
func BoundedIntegerSchema(description string, min, max float64) *JSONSchema {
	return &JSONSchema{Type: "integer", Description: description, Minimum: &min, Maximum: &max}
}

// BooleanSchema creates a boolean schema.
func BooleanSchema(description string) *JSONSchema {
	return &JSONSchema{Type: "boolean", Description: description}
}

// ArraySchema creates an array schema with the given item schema.
func ArraySchema(items *JSONSchema) *JSONSchema {
	return &JSONSchema{Type: "array", Items: items}
}
