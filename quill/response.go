package quill

import (
	"fmt"
	"strings"
)

// Response wraps a raw completion together with the outputs decoded from it.
// It is constructed once and never mutated afterwards.
type Response struct {
	raw     string
	outputs []Output
	byName  map[string]string
}

// NewResponse decodes text and validates the result against the prompt's
// declared outputs. With no declared outputs any reply is valid. Otherwise
// the decoded count must match exactly, and each observed output must agree
// with its declared counterpart on name and type, position by position; all
// mismatches are collected into a single ResponseError.
func NewResponse(text string, prompt Prompt) (*Response, error) {
	outputs, err := decodeOutputs(text)
	if err != nil {
		return nil, err
	}

	declared := prompt.outputs
	if len(declared) > 0 {
		if len(declared) != len(outputs) {
			return nil, responseErrorf("expected %d outputs in completion, but got %d", len(declared), len(outputs))
		}
		var mismatches []string
		for i := range declared {
			if declared[i].Name != outputs[i].Name {
				mismatches = append(mismatches, fmt.Sprintf("name for output at position %d (%q) differs from the one in the completion (%q)", i, declared[i].Name, outputs[i].Name))
			}
			if declared[i].Type != outputs[i].Type {
				mismatches = append(mismatches, fmt.Sprintf("type for output at position %d (%q) differs from the one in the completion (%q)", i, declared[i].Type, outputs[i].Type))
			}
		}
		if len(mismatches) > 0 {
			return nil, responseErrorf("%s", strings.Join(mismatches, "\n"))
		}
	}

	byName := make(map[string]string, len(outputs))
	for _, o := range outputs {
		if o.Name == "" {
			continue
		}
		if _, ok := byName[o.Name]; !ok { // first occurrence wins
			byName[o.Name] = o.Content
		}
	}
	return &Response{raw: text, outputs: outputs, byName: byName}, nil
}

// String returns the raw completion text.
func (r *Response) String() string { return r.raw }

// Len returns the number of decoded outputs.
func (r *Response) Len() int { return len(r.outputs) }

// At returns the decoded output at the given position.
func (r *Response) At(i int) Output { return r.outputs[i] }

// Outputs returns a copy of the decoded outputs in document order.
func (r *Response) Outputs() []Output {
	out := make([]Output, len(r.outputs))
	copy(out, r.outputs)
	return out
}

// Has reports whether an output with the given name was decoded.
func (r *Response) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the content of the named output. When the reply contains the
// same name more than once, the first occurrence wins.
func (r *Response) Get(name string) (string, bool) {
	content, ok := r.byName[name]
	return content, ok
}
