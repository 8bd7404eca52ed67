package quill

import (
	"errors"
	"testing"
)

func TestNewOutput_DefaultsToString(t *testing.T) {
	o, err := NewOutput(Output{Name: "greeting", Content: "Hello World"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Type != TypeString {
		t.Fatalf("expected default type %q, got %q", TypeString, o.Type)
	}
}

func TestNewOutput_EmptyNameAllowed(t *testing.T) {
	if _, err := NewOutput(Output{Description: "Sample text"}); err != nil {
		t.Fatalf("unexpected error for unnamed output: %v", err)
	}
}

func TestNewOutput_InvalidName(t *testing.T) {
	_, err := NewOutput(Output{Name: "python code"})
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
}

func TestNewOutput_InvalidType(t *testing.T) {
	_, err := NewOutput(Output{Name: "greeting", Content: "Hello World", Type: "message"})
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
}

func TestNewOutput_Coercion(t *testing.T) {
	cases := []struct {
		name    string
		content string
		typ     OutputType
		wantErr bool
	}{
		{"integer ok", "42", TypeInteger, false},
		{"integer whitespace", " 42 ", TypeInteger, false},
		{"integer bad", "Hello World", TypeInteger, true},
		{"integer float literal", "42.5", TypeInteger, true},
		{"number ok", "42.5", TypeNumber, false},
		{"number bad", "forty-two", TypeNumber, true},
		{"boolean ok", "true", TypeBoolean, false},
		{"boolean title case", "True", TypeBoolean, false},
		{"boolean bad", "yes", TypeBoolean, true},
		{"string anything", "[1, 2, 3]", TypeString, false},
		{"empty content skips coercion", "", TypeInteger, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOutput(Output{Name: "v", Content: tc.content, Type: tc.typ})
			if tc.wantErr {
				var malformed *MalformedOutputError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedOutputError, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOutput_Equality(t *testing.T) {
	a := Output{Name: "answer", Description: "d", Type: TypeInteger, Content: "42"}
	b := Output{Name: "answer", Description: "d", Type: TypeInteger, Content: "42"}
	if a != b {
		t.Fatalf("expected outputs to compare equal")
	}
	b.Content = "43"
	if a == b {
		t.Fatalf("expected outputs to differ")
	}
}
