package quill

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustOutput(t *testing.T, o Output) Output {
	t.Helper()
	valid, err := NewOutput(o)
	if err != nil {
		t.Fatalf("NewOutput(%+v): %v", o, err)
	}
	return valid
}

func sampleOutputs(t *testing.T) []Output {
	t.Helper()
	return []Output{
		mustOutput(t, Output{Name: "greeting", Description: "A greeting", Content: "Hello World"}),
		mustOutput(t, Output{Name: "answer", Description: "The answer to everything", Type: TypeInteger, Content: "42"}),
		mustOutput(t, Output{Name: "numbers", Description: "A list of numbers", Content: "[1, 2, 3]"}),
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	outputs := sampleOutputs(t)
	encoded, err := encodeOutputs(outputs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeOutputs(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(outputs, decoded) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", outputs, decoded)
	}
}

func TestEncode_OmitsDefaultType(t *testing.T) {
	encoded, err := encodeOutputs(sampleOutputs(t))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(encoded, `type="integer"`) {
		t.Errorf("expected explicit integer type attribute in:\n%s", encoded)
	}
	if strings.Contains(encoded, `type="string"`) {
		t.Errorf("string type attribute should be omitted in:\n%s", encoded)
	}
}

func TestDecode_SurroundingProse(t *testing.T) {
	outputs := sampleOutputs(t)
	encoded, err := encodeOutputs(outputs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := "This is a sample response, containing some outputs in the XML\n\n" + encoded + "\n\nThat is all."
	decoded, err := decodeOutputs(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(outputs, decoded) {
		t.Fatalf("decode with prose mismatch:\nwant %+v\ngot  %+v", outputs, decoded)
	}
}

func TestDecode_NoEnvelope(t *testing.T) {
	for _, text := range []string{
		"",
		"This string does not contain an envelope",
		"<output name=\"loose\">not wrapped</output>",
	} {
		decoded, err := decodeOutputs(text)
		if err != nil {
			t.Fatalf("decode(%q): %v", text, err)
		}
		if len(decoded) != 0 {
			t.Fatalf("decode(%q): expected no outputs, got %+v", text, decoded)
		}
	}
}

const responseMultipleEnvelopes = `
<outputs>
  <output name="color" description="Red"/>
</outputs>

However, it's important to note that the perception of warmth in colors can
be subjective. In general, red is often considered the warmest color.
` + "```xml" + `
<outputs>
  <output name="color">red</output>
</outputs>
` + "```" + `
`

func TestDecode_LastEnvelopeWins(t *testing.T) {
	decoded, err := decodeOutputs(responseMultipleEnvelopes)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Output{{Name: "color", Type: TypeString, Content: "red"}}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("expected only the last envelope's outputs:\nwant %+v\ngot  %+v", want, decoded)
	}
}

func TestDecode_MalformedLastFallsBackToEarlier(t *testing.T) {
	text := `
<outputs>
  <output name="color">red</output>
</outputs>
some text
<outputs>
  <output name="broken>red
</outputs>
`
	decoded, err := decodeOutputs(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "color" {
		t.Fatalf("expected fallback to the earlier well-formed envelope, got %+v", decoded)
	}
}

func TestDecode_BadCoercion(t *testing.T) {
	text := `<outputs><output name="answer" type="integer">not a number</output></outputs>`
	_, err := decodeOutputs(text)
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
	if !strings.Contains(err.Error(), "not a number") || !strings.Contains(err.Error(), "integer") {
		t.Fatalf("error should name the value and target type: %v", err)
	}
}

func TestDecode_SelfClosedElement(t *testing.T) {
	decoded, err := decodeOutputs(`<outputs><output name="color" description="Red"/></outputs>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Output{{Name: "color", Description: "Red", Type: TypeString}}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("want %+v, got %+v", want, decoded)
	}
}

func TestDecode_MultilineContent(t *testing.T) {
	loremIpsum := "Lorem ipsum dolor sit amet,\nconsectetur adipiscing elit,\nsed do eiusmod tempor incididunt\nut labore et dolore magna aliqua."
	outputs := []Output{
		mustOutput(t, Output{Name: "text", Content: loremIpsum}),
		mustOutput(t, Output{Name: "sh", Content: "ls -lh\nchmod 755 test.txt"}),
	}
	encoded, err := encodeOutputs(outputs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeOutputs(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(outputs, decoded) {
		t.Fatalf("multiline round trip mismatch:\nwant %+v\ngot  %+v", outputs, decoded)
	}
}
