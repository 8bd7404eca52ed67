package quill

import (
	"encoding/xml"
	"regexp"
)

// Wire format for the output envelope:
//
//	<outputs>
//	  <output name="answer" description="The answer" type="integer">42</output>
//	</outputs>
//
// The type attribute is omitted for the default string type.

type xmlOutput struct {
	XMLName     xml.Name `xml:"output"`
	Name        string   `xml:"name,attr,omitempty"`
	Description string   `xml:"description,attr,omitempty"`
	Type        string   `xml:"type,attr,omitempty"`
	Content     string   `xml:",chardata"`
}

type xmlEnvelope struct {
	XMLName xml.Name    `xml:"outputs"`
	Outputs []xmlOutput `xml:"output"`
}

// envelopePattern matches one envelope occurrence anywhere in a reply,
// including the degenerate self-closed form.
var envelopePattern = regexp.MustCompile(`(?s)<outputs\b[^>]*>.*?</outputs>|<outputs\s*/>`)

// encodeOutputs serializes outputs into one envelope, preserving order.
// It fails only when content cannot be written as XML character data
// (invalid UTF-8).
func encodeOutputs(outputs []Output) (string, error) {
	env := xmlEnvelope{Outputs: make([]xmlOutput, 0, len(outputs))}
	for _, o := range outputs {
		x := xmlOutput{
			Name:        o.Name,
			Description: o.Description,
			Content:     o.Content,
		}
		if o.Type != "" && o.Type != TypeString {
			x.Type = string(o.Type)
		}
		env.Outputs = append(env.Outputs, x)
	}
	b, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeOutputs extracts outputs from arbitrary reply text. Completions are
// noisy: prose before and after the envelope, code fences around it, and
// models that think out loud often emit an early envelope and then restate
// the final one. The last well-formed occurrence wins; earlier occurrences
// are discarded whole, never merged. No envelope at all is not an error and
// yields an empty slice.
func decodeOutputs(text string) ([]Output, error) {
	candidates := envelopePattern.FindAllString(text, -1)
	for i := len(candidates) - 1; i >= 0; i-- {
		var env xmlEnvelope
		if err := xml.Unmarshal([]byte(candidates[i]), &env); err != nil {
			continue // not well-formed, try the previous occurrence
		}
		outputs := make([]Output, 0, len(env.Outputs))
		for _, x := range env.Outputs {
			o, err := NewOutput(Output{
				Name:        x.Name,
				Description: x.Description,
				Type:        OutputType(x.Type),
				Content:     x.Content,
			})
			if err != nil {
				return nil, err
			}
			outputs = append(outputs, o)
		}
		return outputs, nil
	}
	return nil, nil
}
