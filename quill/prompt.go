package quill

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var nopLogger = zap.NewNop()

// Prompt is an immutable prompt value: a template body, an ordered list of
// declared outputs, and a set of declared tools. Builder methods never
// mutate the receiver; each returns a fresh Prompt, so values can be shared
// freely across goroutines.
type Prompt struct {
	body    string
	outputs []Output
	tools   []Tool
	logger  *zap.Logger
}

// NewPrompt creates a Prompt from a template body.
func NewPrompt(body string) Prompt {
	return Prompt{body: body}
}

// LoadPrompt reads a template file and wraps it in a Prompt.
func LoadPrompt(path string) (Prompt, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Prompt{}, err
	}
	return NewPrompt(string(b)), nil
}

// newPrompt assembles a Prompt and enforces output-name uniqueness. The
// slices are owned by the new value; callers must pass fresh copies.
func newPrompt(body string, outputs []Output, tools []Tool, logger *zap.Logger) (Prompt, error) {
	var dups []string
	at := make(map[string]int)
	for i, o := range outputs {
		if o.Name == "" {
			continue
		}
		if prev, ok := at[o.Name]; ok {
			dups = append(dups, fmt.Sprintf("found outputs at positions %d, %d with the same name %q", prev, i, o.Name))
		} else {
			at[o.Name] = i
		}
	}
	if len(dups) > 0 {
		return Prompt{}, promptErrorf("%s", strings.Join(dups, "\n"))
	}
	return Prompt{body: body, outputs: outputs, tools: tools, logger: logger}, nil
}

// Body returns the raw template body.
func (p Prompt) Body() string { return p.body }

// Outputs returns a copy of the declared outputs in declaration order.
func (p Prompt) Outputs() []Output {
	out := make([]Output, len(p.outputs))
	copy(out, p.outputs)
	return out
}

// Tools returns a copy of the declared tools in declaration order.
func (p Prompt) Tools() []Tool {
	out := make([]Tool, len(p.tools))
	copy(out, p.tools)
	return out
}

// WithLogger returns a Prompt that reports warnings (unresolved variables,
// template syntax problems, retry feedback) through the given logger.
func (p Prompt) WithLogger(logger *zap.Logger) Prompt {
	p.logger = logger
	return p
}

func (p Prompt) log() *zap.Logger {
	if p.logger == nil {
		return nopLogger
	}
	return p.logger
}

// Variables returns the free template variables of the body in
// first-appearance order. A syntactically invalid body is downgraded to a
// warning and reported as having no variables.
func (p Prompt) Variables() []string {
	vars, err := templateVariables(p.body)
	if err != nil {
		p.log().Warn("prompt template has invalid syntax", zap.Error(err))
		return nil
	}
	return vars
}

// WithOutput returns a Prompt that additionally expects the given output.
// The output is validated; duplicate names across all declared outputs are
// a PromptError.
func (p Prompt) WithOutput(o Output) (Prompt, error) {
	valid, err := NewOutput(o)
	if err != nil {
		return Prompt{}, err
	}
	outputs := make([]Output, 0, len(p.outputs)+1)
	outputs = append(outputs, p.outputs...)
	outputs = append(outputs, valid)
	return newPrompt(p.body, outputs, p.Tools(), p.logger)
}

// WithTool returns a Prompt that additionally declares the given tool.
func (p Prompt) WithTool(t Tool) (Prompt, error) {
	for _, existing := range p.tools {
		if existing.Name == t.Name {
			return Prompt{}, promptErrorf("tool %q already exists in prompt", t.Name)
		}
	}
	tools := make([]Tool, 0, len(p.tools)+1)
	tools = append(tools, p.tools...)
	tools = append(tools, t)
	return newPrompt(p.body, p.Outputs(), tools, p.logger)
}

// Concat joins this prompt with a string or another Prompt, concatenating
// bodies with a newline and joining output and tool declarations. Prompts
// whose tool name sets intersect cannot be concatenated.
func (p Prompt) Concat(other any) (Prompt, error) {
	var o Prompt
	switch v := other.(type) {
	case string:
		o = NewPrompt(v)
	case Prompt:
		o = v
	default:
		return Prompt{}, concatErrorf("cannot concatenate Prompt with %T: operand must be a string or a Prompt", other)
	}

	var overlap []string
	names := make(map[string]bool, len(p.tools))
	for _, t := range p.tools {
		names[t.Name] = true
	}
	for _, t := range o.tools {
		if names[t.Name] {
			overlap = append(overlap, t.Name)
		}
	}
	if len(overlap) > 0 {
		sort.Strings(overlap)
		return Prompt{}, concatErrorf("cannot concatenate prompts with overlapping tools: %s", strings.Join(overlap, ", "))
	}

	outputs := make([]Output, 0, len(p.outputs)+len(o.outputs))
	outputs = append(outputs, p.outputs...)
	outputs = append(outputs, o.outputs...)
	tools := make([]Tool, 0, len(p.tools)+len(o.tools))
	tools = append(tools, p.tools...)
	tools = append(tools, o.tools...)
	return newPrompt(p.body+"\n"+o.body, outputs, tools, p.logger)
}

// Apply substitutes template variables and returns the rendered Prompt.
// Positional values bind to the free variables in extraction order; named
// bindings go in as-is. Binding a variable both ways, or passing more
// positional values than there are variables, is a ReplacementError.
func (p Prompt) Apply(named map[string]any, positional ...any) (Prompt, error) {
	vars := p.Variables()
	if len(positional) > len(vars) {
		return Prompt{}, replacementErrorf("provided %d positional values, but the template has only %d variables", len(positional), len(vars))
	}
	merged := make(map[string]any, len(named)+len(positional))
	for k, v := range named {
		merged[k] = v
	}
	for i, v := range positional {
		name := vars[i]
		if _, ok := named[name]; ok {
			return Prompt{}, replacementErrorf("got multiple values for template variable %q", name)
		}
		merged[name] = v
	}
	body, err := renderTemplate(p.body, merged)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{body: body, outputs: p.Outputs(), tools: p.Tools(), logger: p.logger}, nil
}

// String renders the prompt for sending to a backend. Unresolved template
// variables are logged as a warning but still rendered best-effort (the raw
// body is used). When outputs are declared, an instructional envelope with
// placeholder content is appended so the model knows the exact reply shape.
func (p Prompt) String() string {
	if vars := p.Variables(); len(vars) > 0 {
		sorted := make([]string, len(vars))
		copy(sorted, vars)
		sort.Strings(sorted)
		p.log().Warn("prompt still has unresolved template variables", zap.Strings("variables", sorted))
	}

	s := p.body
	if len(p.outputs) > 0 {
		placeholders := p.Outputs()
		for i := range placeholders {
			if placeholders[i].Name != "" {
				placeholders[i].Content = "... value for output '" + placeholders[i].Name + "' goes here ..."
			} else {
				placeholders[i].Content = "... value for this output goes here ..."
			}
		}
		encoded, err := encodeOutputs(placeholders)
		if err != nil {
			p.log().Warn("could not render output instructions", zap.Error(err))
			return s
		}
		s += "\nProvide your response inside an XML envelope such as this:\n" + encoded
	}
	return s
}

// appendError amends the body with corrective feedback for the next attempt.
func (p Prompt) appendError(err error) Prompt {
	p.body = p.body + "\n\nMake sure to avoid the following error in your response: " + err.Error() + "\n"
	return p
}
