package gateway

import (
	"fmt"

	mcpschema "github.com/viant/mcp-protocol/schema"
)

// validateArgs checks an argument map against a tool input schema. The check
// is structural only: required field presence, primitive type match and enum
// membership. Unknown arguments are ignored rather than rejected.
func validateArgs(schema mcpschema.ToolInputSchema, args map[string]any) error {
	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required field %q", name)
		}
	}
	for name, value := range args {
		prop, ok := schema.Properties[name]
		if !ok {
			continue
		}
		if err := checkType(name, prop, value); err != nil {
			return err
		}
		if err := checkEnum(name, prop, value); err != nil {
			return err
		}
	}
	return nil
}

func checkType(name string, prop map[string]interface{}, value any) error {
	kind, _ := prop["type"].(string)
	switch kind {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("field %q must be a string", name)
		}
	case "number", "integer":
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return fmt.Errorf("field %q must be a number", name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("field %q must be a boolean", name)
		}
	case "array":
		switch value.(type) {
		case []any, []string:
		default:
			return fmt.Errorf("field %q must be an array", name)
		}
	}
	return nil
}

func checkEnum(name string, prop map[string]interface{}, value any) error {
	allowed, ok := prop["enum"].([]interface{})
	if !ok || len(allowed) == 0 {
		return nil
	}
	for _, candidate := range allowed {
		if candidate == value {
			return nil
		}
	}
	return fmt.Errorf("field %q must be one of %v, got %v", name, allowed, value)
}
