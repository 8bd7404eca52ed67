package quill

import (
	"fmt"
	"reflect"
)

// ToolValidator validates backend-proposed tool call arguments against the
// declared tools' parameter schemas.
type ToolValidator struct {
	tools map[string]Tool
}

// NewToolValidator creates a validator from a list of declared tools.
func NewToolValidator(tools []Tool) *ToolValidator {
	toolMap := make(map[string]Tool, len(tools))
	for _, t := range tools {
		toolMap[t.Name] = t
	}
	return &ToolValidator{tools: toolMap}
}

// ValidateCall checks that a tool call names a declared tool, carries every
// required parameter, and uses compatible argument types.
func (tv *ToolValidator) ValidateCall(name string, args map[string]any) error {
	tool, exists := tv.tools[name]
	if !exists {
		return fmt.Errorf("quill: unknown tool: %s", name)
	}
	if len(tool.Parameters) == 0 {
		return nil
	}

	for _, fieldName := range stringSlice(tool.Parameters["required"]) {
		if _, ok := args[fieldName]; !ok {
			return fmt.Errorf("quill: missing required parameter: %s", fieldName)
		}
	}

	properties, ok := tool.Parameters["properties"].(map[string]any)
	if !ok {
		return nil
	}
	for argName, argValue := range args {
		propSchema, exists := properties[argName]
		if !exists {
			continue // extra args are allowed
		}
		propMap, ok := propSchema.(map[string]any)
		if !ok {
			continue
		}
		expectedType, ok := propMap["type"].(string)
		if !ok {
			continue
		}
		if err := validateArgType(argName, argValue, expectedType); err != nil {
			return err
		}
	}
	return nil
}

func validateArgType(name string, value any, expectedType string) error {
	if value == nil {
		return nil // null passes; absence is handled by the required check
	}

	actualType := reflect.TypeOf(value).Kind()

	switch expectedType {
	case "string":
		if actualType != reflect.String {
			return fmt.Errorf("quill: parameter %s: expected string, got %v", name, actualType)
		}
	case "number":
		if actualType != reflect.Float64 && actualType != reflect.Float32 {
			return fmt.Errorf("quill: parameter %s: expected number, got %v", name, actualType)
		}
	case "integer":
		// JSON numbers arrive as float64; accept whole values only.
		if f, ok := value.(float64); ok {
			if f != float64(int(f)) {
				return fmt.Errorf("quill: parameter %s: expected integer, got float %v", name, f)
			}
		} else {
			return fmt.Errorf("quill: parameter %s: expected integer, got %v", name, actualType)
		}
	case "boolean":
		if actualType != reflect.Bool {
			return fmt.Errorf("quill: parameter %s: expected boolean, got %v", name, actualType)
		}
	case "array":
		if actualType != reflect.Slice && actualType != reflect.Array {
			return fmt.Errorf("quill: parameter %s: expected array, got %v", name, actualType)
		}
	case "object":
		if actualType != reflect.Map {
			return fmt.Errorf("quill: parameter %s: expected object, got %v", name, actualType)
		}
	}
	return nil
}
