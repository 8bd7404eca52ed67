package quill

import (
	"regexp"
	"strconv"
	"strings"
)

// OutputType is the declared type of an Output's content. The set is closed;
// anything outside it fails construction.
type OutputType string

const (
	TypeString  OutputType = "string"
	TypeInteger OutputType = "integer"
	TypeNumber  OutputType = "number"
	TypeBoolean OutputType = "boolean"
)

var outputNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Output is a named, typed unit of structured data. A declared Output states
// what a prompt expects back; an observed Output is what was decoded from a
// completion. Both are plain values; nothing mutates an Output after
// NewOutput returns it.
type Output struct {
	// Name identifies the output. It may be empty; when set it must contain
	// only letters, digits, and underscores.
	Name string
	// Description is optional free text shown to the model.
	Description string
	// Type is one of the closed OutputType set. Empty means TypeString.
	Type OutputType
	// Content is the raw text payload. Declared outputs usually leave it
	// empty; observed outputs always carry it (possibly "").
	Content string
}

// NewOutput validates and normalizes an Output. It returns a
// MalformedOutputError when the name is not identifier-safe, the type is
// outside the closed set, or non-empty content does not parse as the
// declared type.
func NewOutput(o Output) (Output, error) {
	if o.Name != "" && !outputNamePattern.MatchString(o.Name) {
		return Output{}, malformedOutputf("invalid output name %q: only letters, digits, and underscores are allowed", o.Name)
	}
	if o.Type == "" {
		o.Type = TypeString
	}
	switch o.Type {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean:
	default:
		return Output{}, malformedOutputf("invalid output type %q: must be one of string, integer, number, boolean", o.Type)
	}
	if o.Content != "" {
		if err := checkCoercion(o.Content, o.Type); err != nil {
			return Output{}, err
		}
	}
	return o, nil
}

// checkCoercion verifies that content parses as the given type using strict
// literal parsing. String always passes.
func checkCoercion(content string, t OutputType) error {
	v := strings.TrimSpace(content)
	var err error
	switch t {
	case TypeString:
		return nil
	case TypeInteger:
		_, err = strconv.ParseInt(v, 10, 64)
	case TypeNumber:
		_, err = strconv.ParseFloat(v, 64)
	case TypeBoolean:
		_, err = strconv.ParseBool(v)
	}
	if err != nil {
		return malformedOutputf("cannot coerce value %q to type %q", content, t)
	}
	return nil
}
