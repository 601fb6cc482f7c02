package tools

import "encoding/json"

// Argument accessors for validated argument maps. Validation has
// already established the types, so these only normalize the decoded
// JSON shapes.

// StringArg returns a string argument, or fallback when absent.
func StringArg(args map[string]interface{}, name, fallback string) string {
	if value, ok := args[name].(string); ok {
		return value
	}
	return fallback
}

// BoolArg returns a boolean argument, or fallback when absent.
func BoolArg(args map[string]interface{}, name string, fallback bool) bool {
	if value, ok := args[name].(bool); ok {
		return value
	}
	return fallback
}

// IntArg returns an integer argument, or fallback when absent.
func IntArg(args map[string]interface{}, name string, fallback int) int {
	switch value := args[name].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

// FloatArg returns a numeric argument, or fallback when absent.
func FloatArg(args map[string]interface{}, name string, fallback float64) float64 {
	switch value := args[name].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case json.Number:
		if n, err := value.Float64(); err == nil {
			return n
		}
	}
	return fallback
}

// StringSliceArg returns a string array argument, or nil when absent.
func StringSliceArg(args map[string]interface{}, name string) []string {
	raw, ok := args[name].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
