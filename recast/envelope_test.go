package recast

import (
	"errors"
	"testing"
)

func TestExtractEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"summary": "hello"}`,
			want:  `{"summary": "hello"}`,
		},
		{
			name:  "surrounding noise",
			input: `Sure, here you go: {"summary": "hello"} Hope that helps!`,
			want:  `{"summary": "hello"}`,
		},
		{
			name:  "nested braces stay inside one span",
			input: `{"summary": "a map looks like {x: 1}", "extra": {"n": 2}}`,
			want:  `{"summary": "a map looks like {x: 1}", "extra": {"n": 2}}`,
		},
		{
			name:  "stray close before the span",
			input: `} {"summary": "hello"}`,
			want:  `{"summary": "hello"}`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := extractEnvelope(tc.input)
			if err != nil {
				t.Fatalf("extractEnvelope() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("extractEnvelope() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractEnvelopeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "no object", input: "just prose, no json here"},
		{name: "unterminated object", input: `{"summary": "cut off mid-`},
		{name: "two objects", input: `{"a": 1} {"b": 2}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := extractEnvelope(tc.input)
			if !errors.Is(err, ErrEnvelopeExtraction) {
				t.Errorf("extractEnvelope() error = %v, want ErrEnvelopeExtraction", err)
			}
		})
	}
}

func TestParseEnvelope(t *testing.T) {
	t.Parallel()

	got, err := parseEnvelope(`{"summary": "a show about space"}`, "summary")
	if err != nil {
		t.Fatalf("parseEnvelope() error = %v", err)
	}
	if got != "a show about space" {
		t.Errorf("parseEnvelope() = %q", got)
	}
}

func TestParseEnvelopeRawNewline(t *testing.T) {
	t.Parallel()

	// Models emit literal line breaks inside the value, which is invalid
	// JSON; the parse step must keep the break as value content.
	got, err := parseEnvelope("{\"summary\": \"line one\nline two\"}", "summary")
	if err != nil {
		t.Fatalf("parseEnvelope() error = %v", err)
	}
	if got != "line one\nline two" {
		t.Errorf("parseEnvelope() = %q, want newline preserved", got)
	}
}

func TestParseEnvelopeCRLF(t *testing.T) {
	t.Parallel()

	got, err := parseEnvelope("{\"summary\": \"line one\r\nline two\"}", "summary")
	if err != nil {
		t.Fatalf("parseEnvelope() error = %v", err)
	}
	if got != "line one\nline two" {
		t.Errorf("parseEnvelope() = %q, want normalized newline", got)
	}
}

func TestParseEnvelopeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		span string
		key  string
	}{
		{name: "invalid json", span: `{"summary": }`, key: "summary"},
		{name: "key absent", span: `{"other": "x"}`, key: "summary"},
		{name: "value not a string", span: `{"summary": 42}`, key: "summary"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseEnvelope(tc.span, tc.key)
			if !errors.Is(err, ErrEnvelopeParse) {
				t.Errorf("parseEnvelope() error = %v, want ErrEnvelopeParse", err)
			}
		})
	}
}
