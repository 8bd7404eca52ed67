package quill

import (
	"errors"
	"fmt"
)

// ErrInvalidRetries is returned by Query when the configured retry bound
// would never allow a single attempt.
var ErrInvalidRetries = errors.New("quill: retries must be at least 1")

// MalformedOutputError reports an Output that could not be constructed:
// an invalid name, an unknown type, or content that does not parse as the
// declared type. It is raised at construction and during decoding; the
// query loop never retries it.
type MalformedOutputError struct {
	msg string
}

func (e *MalformedOutputError) Error() string { return e.msg }

func malformedOutputf(format string, args ...any) *MalformedOutputError {
	return &MalformedOutputError{msg: "quill: " + fmt.Sprintf(format, args...)}
}

// ResponseError reports a completion whose decoded outputs do not match the
// prompt's declared outputs: wrong count, wrong name, or wrong type. It is
// the only error kind the query loop retries.
type ResponseError struct {
	msg string
}

func (e *ResponseError) Error() string { return e.msg }

func responseErrorf(format string, args ...any) *ResponseError {
	return &ResponseError{msg: "quill: " + fmt.Sprintf(format, args...)}
}

// PromptError reports a structurally invalid prompt, such as duplicate
// output names or a duplicate tool registration.
type PromptError struct {
	msg string
}

func (e *PromptError) Error() string { return e.msg }

func promptErrorf(format string, args ...any) *PromptError {
	return &PromptError{msg: "quill: " + fmt.Sprintf(format, args...)}
}

// ConcatenationError reports an invalid prompt concatenation: an operand
// that is neither a string nor a Prompt, or overlapping tool names.
type ConcatenationError struct {
	msg string
}

func (e *ConcatenationError) Error() string { return e.msg }

func concatErrorf(format string, args ...any) *ConcatenationError {
	return &ConcatenationError{msg: "quill: " + fmt.Sprintf(format, args...)}
}

// ReplacementError reports an invalid template substitution: more
// positional values than free variables, a variable bound twice, or a
// strict-undefined failure while rendering.
type ReplacementError struct {
	msg string
}

func (e *ReplacementError) Error() string { return e.msg }

func replacementErrorf(format string, args ...any) *ReplacementError {
	return &ReplacementError{msg: "quill: " + fmt.Sprintf(format, args...)}
}
