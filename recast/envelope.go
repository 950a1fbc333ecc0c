package recast

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Salvager repairs a malformed or truncated completion before a second
// extraction attempt. Implementations are keyed to the failure mode of a
// specific prompt; a salvager that recognizes the output as unrepairable
// returns an error wrapping ErrSalvageImpossible.
type Salvager interface {
	Salvage(candidate string) (string, error)
}

// SalvageFunc adapts a function to the Salvager interface.
type SalvageFunc func(candidate string) (string, error)

func (f SalvageFunc) Salvage(candidate string) (string, error) { return f(candidate) }

// extractEnvelope returns the single top-level {...} span in s, discarding
// any surrounding noise. Zero or multiple complete spans fail with
// ErrEnvelopeExtraction.
func extractEnvelope(s string) (string, error) {
	var spans []string
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				// Stray close outside any span.
				continue
			}
			depth--
			if depth == 0 {
				spans = append(spans, s[start:i+1])
				start = -1
			}
		}
	}
	if len(spans) != 1 {
		return "", fmt.Errorf("%w: found %d top-level object spans", ErrEnvelopeExtraction, len(spans))
	}
	return spans[0], nil
}

// escapeRawNewlines rewrites literal line breaks as JSON \n escapes. Models
// regularly emit raw newlines inside the envelope's string value, which is
// not valid JSON; after this rewrite the newline survives decoding as value
// content.
func escapeRawNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// parseEnvelope decodes span as a JSON object and returns the string value
// at key.
func parseEnvelope(span, key string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(escapeRawNewlines(span)), &obj); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEnvelopeParse, err)
	}
	v, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: key %q absent", ErrEnvelopeParse, key)
	}
	value, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q is not a string", ErrEnvelopeParse, key)
	}
	return value, nil
}
