package recast

import (
	"context"
	"errors"
	"log/slog"
)

// StructuredClient turns a free-text completion backend into an "ask for
// field X, get field X" primitive: it forces a one-key JSON envelope onto
// the model's output and parses the field back out, with an optional salvage
// step for near-miss output.
type StructuredClient struct {
	Completer Completer
	Model     string
	Logger    *slog.Logger
}

// StructuredRequest asks for a single named string field.
type StructuredRequest struct {
	Prompt    string
	Key       string
	MaxTokens int64

	// OutputPrefix, when set, is forced onto the start of the envelope's
	// value so the model's first sentence is fixed.
	OutputPrefix string

	// Salvage, when set, gets one shot at repairing output that failed
	// extraction before extraction is re-attempted once more.
	Salvage Salvager
}

// Complete issues the completion and extracts the requested field.
func (c *StructuredClient) Complete(ctx context.Context, req StructuredRequest) (string, error) {
	if c.Completer == nil {
		return "", errors.New("recast: StructuredClient.Completer is nil")
	}
	if req.Key == "" {
		return "", errors.New("recast: StructuredRequest.Key is empty")
	}
	if req.MaxTokens <= 0 {
		return "", errors.New("recast: StructuredRequest.MaxTokens must be > 0")
	}

	// e.g. `{"summary": "`; the model only ever generates the continuation.
	opening := `{"` + req.Key + `": "`
	if req.OutputPrefix != "" {
		opening += " " + req.OutputPrefix
	}

	out, err := c.Completer.Complete(ctx, CompletionRequest{
		Prompt:       req.Prompt,
		Model:        c.Model,
		MaxTokens:    req.MaxTokens,
		OutputPrefix: opening,
	})
	if err != nil {
		return "", err
	}

	span, err := extractEnvelope(out)
	if err != nil {
		if req.Salvage == nil {
			return "", err
		}
		c.logger().Warn("malformed envelope, attempting salvage", "key", req.Key, "error", err)
		repaired, serr := req.Salvage.Salvage(out)
		if serr != nil {
			return "", serr
		}
		if span, err = extractEnvelope(repaired); err != nil {
			return "", err
		}
	}

	return parseEnvelope(span, req.Key)
}

func (c *StructuredClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
