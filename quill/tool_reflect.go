package quill

import (
	"context"
	"errors"
	"reflect"
	"strings"
)

// CallableFromFunc builds a Callable descriptor from a Go function by
// reflection. The function must have the shape
// func(ctx context.Context, params YourStruct) (result any, err error);
// the params struct's fields and tags describe the parameters. Field names
// follow the json tag when present, `description` tags become parameter
// docs, and a field is optional when its json tag carries omitempty or its
// type is a pointer. Only the descriptor is retained; the function value
// itself is never stored or called.
func CallableFromFunc(name, doc string, fn any) (Callable, error) {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return Callable{}, errors.New("quill: callable must be a function")
	}
	if fnType.NumIn() != 2 {
		return Callable{}, errors.New("quill: function must have exactly 2 parameters: (context.Context, ParamsStruct)")
	}
	if fnType.NumOut() != 2 {
		return Callable{}, errors.New("quill: function must return exactly 2 values: (result any, error)")
	}
	ctxType := reflect.TypeOf((*context.Context)(nil)).Elem()
	if !fnType.In(0).Implements(ctxType) {
		return Callable{}, errors.New("quill: first parameter must be context.Context")
	}
	errType := reflect.TypeOf((*error)(nil)).Elem()
	if !fnType.Out(1).Implements(errType) {
		return Callable{}, errors.New("quill: second return value must be error")
	}
	paramsType := fnType.In(1)
	if paramsType.Kind() != reflect.Struct {
		return Callable{}, errors.New("quill: second parameter must be a struct")
	}

	c := Callable{Name: name, Doc: doc}
	for i := 0; i < paramsType.NumField(); i++ {
		field := paramsType.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		paramName := field.Name
		optional := field.Type.Kind() == reflect.Ptr
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				paramName = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					optional = true
				}
			}
		}
		c.Params = append(c.Params, Param{
			Name:     paramName,
			Type:     reflectParamType(field.Type),
			Required: !optional,
			Doc:      field.Tag.Get("description"),
		})
	}
	return c, nil
}

// reflectParamType maps a Go type onto the closed ParamType variant.
// Pointers describe their element; unrecognized types fall back to string.
func reflectParamType(t reflect.Type) ParamType {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return ParamType{Kind: KindString}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ParamType{Kind: KindInteger}
	case reflect.Float32, reflect.Float64:
		return ParamType{Kind: KindNumber}
	case reflect.Bool:
		return ParamType{Kind: KindBoolean}
	case reflect.Slice, reflect.Array:
		elem := reflectParamType(t.Elem())
		return ParamType{Kind: KindArray, Elem: &elem}
	case reflect.Map, reflect.Struct:
		return ParamType{Kind: KindObject}
	default:
		return ParamType{Kind: KindString}
	}
}
