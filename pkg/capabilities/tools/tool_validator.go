package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ValidateArguments checks a call's arguments against the tool's input
// schema: required fields must be present, every present field must
// match its declared type, enum and numeric bounds, and unknown fields
// are rejected unless the schema sets additionalProperties to true.
// A nil schema accepts anything.
func ValidateArguments(schema *protocol.JSONSchema, args map[string]interface{}) error {
	if schema == nil {
		return nil
	}

	for _, name := range schema.Required {
		if _, present := args[name]; !present {
			return errors.Newf(errors.ToolValidation, "missing required field %q", name)
		}
	}

	strict := schema.AdditionalProperties == nil || !*schema.AdditionalProperties

	for name, value := range args {
		property, declared := schema.Properties[name]
		if !declared {
			if strict {
				return errors.Newf(errors.ToolValidation, "unknown field %q", name)
			}
			continue
		}

		if err := validateValue(name, property, value); err != nil {
			return err
		}
	}

	return nil
}

func validateValue(name string, schema *protocol.JSONSchema, value interface{}) error {
	if schema == nil || value == nil {
		return nil
	}

	if err := validateType(name, schema.Type, value); err != nil {
		return err
	}

	if len(schema.Enum) > 0 {
		if err := validateEnum(name, schema.Enum, value); err != nil {
			return err
		}
	}

	if schema.Minimum != nil || schema.Maximum != nil {
		if err := validateBounds(name, schema, value); err != nil {
			return err
		}
	}

	if schema.Type == "array" && schema.Items != nil {
		items, _ := value.([]interface{})
		for i, item := range items {
			if err := validateValue(fmt.Sprintf("%s[%d]", name, i), schema.Items, item); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateType(name, expected string, value interface{}) error {
	switch expected {
	case "":
		return nil
	case "string":
		if _, ok := value.(string); !ok {
			return typeError(name, expected, value)
		}
	case "number":
		if !isNumber(value) {
			return typeError(name, expected, value)
		}
	case "integer":
		if !isInteger(value) {
			return typeError(name, expected, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return typeError(name, expected, value)
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			return typeError(name, expected, value)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return typeError(name, expected, value)
		}
	}
	return nil
}

// isNumber accepts the numeric shapes a decoded JSON document can carry.
func isNumber(value interface{}) bool {
	switch v := value.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	default:
		return false
	}
}

// isInteger accepts integers and whole-valued floats, since encoding/json
// decodes every number to float64.
func isInteger(value interface{}) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == math.Trunc(v)
	case float32:
		return float64(v) == math.Trunc(float64(v))
	case json.Number:
		_, err := v.Int64()
		return err == nil
	default:
		return false
	}
}

func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func validateEnum(name string, allowed []interface{}, value interface{}) error {
	for _, candidate := range allowed {
		if candidate == value {
			return nil
		}
	}

	values := make([]string, 0, len(allowed))
	for _, candidate := range allowed {
		values = append(values, fmt.Sprintf("%v", candidate))
	}
	return errors.Newf(errors.ToolValidation, "field %q must be one of [%s], got %v", name, strings.Join(values, ", "), value)
}

func validateBounds(name string, schema *protocol.JSONSchema, value interface{}) error {
	number, ok := numericValue(value)
	if !ok {
		return nil
	}

	if schema.Minimum != nil && number < *schema.Minimum {
		return errors.Newf(errors.ToolValidation, "field %q must be >= %v, got %v", name, *schema.Minimum, number)
	}
	if schema.Maximum != nil && number > *schema.Maximum {
		return errors.Newf(errors.ToolValidation, "field %q must be <= %v, got %v", name, *schema.Maximum, number)
	}
	return nil
}

func typeError(name, expected string, value interface{}) error {
	return errors.Newf(errors.ToolValidation, "field %q must be of type %s, got %T", name, expected, value)
}
