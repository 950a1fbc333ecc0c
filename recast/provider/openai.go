package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkoukk/tiktoken-go"

	"github.com/theimaginaryfoundation/recast-o-bot/recast"
)

// Sampling constants are fixed across every call the pipelines make.
const (
	temperature      = 0.7
	topP             = 1
	frequencyPenalty = 0
	presencePenalty  = 0
)

const fallbackEncoding = "cl100k_base"

// Backend implements recast.Completer over the OpenAI completions API. The
// forced output prefix is appended to the prompt so the model generates only
// the continuation; the prefix is re-attached to the returned text.
type Backend struct {
	client openai.Client

	// ContextWindow, when > 0, caps prompt tokens + MaxTokens per request;
	// a request that cannot fit fails before any network call is spent.
	ContextWindow int
}

// New builds a Backend that authenticates with apiKey.
func New(apiKey string) *Backend {
	return &Backend{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

// Complete issues one completion call and returns the forced prefix plus the
// trimmed continuation.
func (b *Backend) Complete(ctx context.Context, req recast.CompletionRequest) (string, error) {
	if req.Model == "" {
		return "", errors.New("provider: model is empty")
	}
	if req.MaxTokens <= 0 {
		return "", fmt.Errorf("provider: max tokens must be > 0, got %d", req.MaxTokens)
	}
	if err := b.checkBudget(req); err != nil {
		return "", err
	}

	resp, err := b.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:            openai.CompletionNewParamsModel(req.Model),
		Prompt:           openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt + req.OutputPrefix)},
		MaxTokens:        openai.Int(req.MaxTokens),
		Temperature:      openai.Float(temperature),
		TopP:             openai.Float(topP),
		FrequencyPenalty: openai.Float(frequencyPenalty),
		PresencePenalty:  openai.Float(presencePenalty),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", recast.ErrTransport, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", recast.ErrTransport)
	}
	return req.OutputPrefix + strings.TrimSpace(resp.Choices[0].Text), nil
}

// checkBudget rejects requests whose prompt plus generation budget cannot
// fit the configured context window. Models without a registered encoding
// are counted with cl100k_base.
func (b *Backend) checkBudget(req recast.CompletionRequest) error {
	if b.ContextWindow <= 0 {
		return nil
	}
	enc, err := tiktoken.EncodingForModel(req.Model)
	if err != nil {
		if enc, err = tiktoken.GetEncoding(fallbackEncoding); err != nil {
			return fmt.Errorf("provider: load token encoding: %w", err)
		}
	}
	promptTokens := len(enc.Encode(req.Prompt+req.OutputPrefix, nil, nil))
	if promptTokens+int(req.MaxTokens) > b.ContextWindow {
		return fmt.Errorf("provider: prompt (%d tokens) plus max tokens (%d) exceeds context window %d",
			promptTokens, req.MaxTokens, b.ContextWindow)
	}
	return nil
}
