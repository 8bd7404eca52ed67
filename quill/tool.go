package quill

import "sort"

// TypeKind enumerates the closed set of parameter types a Callable can
// declare. Compound kinds carry their components in ParamType.
type TypeKind int

const (
	KindString TypeKind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindUnion
)

// ParamType is a closed tagged variant describing a parameter's type.
type ParamType struct {
	Kind    TypeKind
	Elem    *ParamType  // element type for KindArray
	Members []ParamType // member types for KindUnion
}

// Param describes one parameter of a Callable.
type Param struct {
	Name     string
	Type     ParamType
	Required bool
	Doc      string
}

// Callable is the statically-provided descriptor of a local function a
// prompt may expose as a tool: its name, documentation, and ordered
// parameter list. The schema codec operates only on descriptors, never on
// live function values; see CallableFromFunc for building one by
// reflection.
type Callable struct {
	Name   string
	Doc    string
	Params []Param
}

// Tool is a declared invokable capability: a name plus a provider-facing
// JSON-schema parameters object.
type Tool struct {
	Name        string
	Description string
	// Parameters is a JSON Schema object fragment:
	// {type: "object", properties: {...}, required: [...]}.
	Parameters map[string]any
}

// NewTool converts a Callable descriptor into a declarable Tool.
func NewTool(c Callable) Tool {
	properties := make(map[string]any, len(c.Params))
	required := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		fragment := typeToFragment(p.Type)
		if p.Doc != "" {
			fragment["description"] = p.Doc
		}
		properties[p.Name] = fragment
		if p.Required {
			required = append(required, p.Name)
		}
	}
	parameters := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		parameters["required"] = required
	}
	return Tool{Name: c.Name, Description: c.Doc, Parameters: parameters}
}

// Schema returns the provider-agnostic tool schema.
func (t Tool) Schema() map[string]any {
	return map[string]any{
		"name":        t.Name,
		"description": t.Description,
		"parameters":  t.Parameters,
	}
}

// FunctionSchema wraps the schema in the function-calling envelope expected
// by backends that take function declarations.
func (t Tool) FunctionSchema() map[string]any {
	return map[string]any{
		"type":     "function",
		"function": t.Schema(),
	}
}

// CallableFromSchema inverts a tool schema back into a descriptor.
// Parameters are sorted by name for determinism, since JSON objects carry
// no order. Prose descriptions survive, but the round-trip contract only
// guarantees name, required set, and type shape.
func CallableFromSchema(schema map[string]any) Callable {
	c := Callable{}
	if name, ok := schema["name"].(string); ok {
		c.Name = name
	}
	if doc, ok := schema["description"].(string); ok {
		c.Doc = doc
	}
	params, _ := schema["parameters"].(map[string]any)
	properties, _ := params["properties"].(map[string]any)
	required := make(map[string]bool)
	for _, name := range stringSlice(params["required"]) {
		required[name] = true
	}
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fragment, _ := properties[name].(map[string]any)
		p := Param{Name: name, Type: fragmentToType(fragment), Required: required[name]}
		if doc, ok := fragment["description"].(string); ok {
			p.Doc = doc
		}
		c.Params = append(c.Params, p)
	}
	return c
}

// typeToFragment maps a ParamType to its JSON-schema fragment.
func typeToFragment(t ParamType) map[string]any {
	switch t.Kind {
	case KindString:
		return map[string]any{"type": "string"}
	case KindInteger:
		return map[string]any{"type": "integer"}
	case KindNumber:
		return map[string]any{"type": "number"}
	case KindBoolean:
		return map[string]any{"type": "boolean"}
	case KindArray:
		fragment := map[string]any{"type": "array"}
		if t.Elem != nil {
			fragment["items"] = typeToFragment(*t.Elem)
		}
		return fragment
	case KindObject:
		return map[string]any{"type": "object"}
	case KindUnion:
		members := make([]any, 0, len(t.Members))
		for _, m := range t.Members {
			members = append(members, typeToFragment(m))
		}
		return map[string]any{"anyOf": members}
	}
	return map[string]any{"type": "string"}
}

// fragmentToType maps a JSON-schema fragment back to a ParamType.
// Unrecognized fragments fall back to string.
func fragmentToType(fragment map[string]any) ParamType {
	if members, ok := fragment["anyOf"].([]any); ok {
		u := ParamType{Kind: KindUnion}
		for _, m := range members {
			if mf, ok := m.(map[string]any); ok {
				u.Members = append(u.Members, fragmentToType(mf))
			}
		}
		return u
	}
	switch fragment["type"] {
	case "string":
		return ParamType{Kind: KindString}
	case "integer":
		return ParamType{Kind: KindInteger}
	case "number":
		return ParamType{Kind: KindNumber}
	case "boolean":
		return ParamType{Kind: KindBoolean}
	case "array":
		t := ParamType{Kind: KindArray}
		if items, ok := fragment["items"].(map[string]any); ok {
			elem := fragmentToType(items)
			t.Elem = &elem
		}
		return t
	case "object":
		return ParamType{Kind: KindObject}
	}
	return ParamType{Kind: KindString}
}

// stringSlice reads a required-name list that may be []string or, after a
// JSON round trip, []any.
func stringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
