package recast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	defaultPageSize       = 100
	defaultStageMaxTokens = 256

	// Plain completion calls carry no JSON-extraction step, so only the
	// backend call itself is retried, on a smaller budget than the dialog
	// path.
	plainRetryAttempts = 3
	plainRetryDelay    = 2 * time.Second
)

// Summarizer reduces an arbitrarily long transcript to a bounded-length
// talk-show script in four stages: per-chunk summaries (map), a metasummary
// over those (reduce), a sponsor-stripping pass (clean), and a final rewrite
// (style). Every stage's output is verbatim the next stage's input, and a
// stage that exhausts its retries aborts the whole run.
type Summarizer struct {
	Completer Completer
	Model     string

	// MaxTokens bounds each stage's generated continuation
	// (default 256).
	MaxTokens int64

	// PageSize is the number of sentences per chunk (default 100).
	PageSize int

	// Concurrency bounds the map-stage worker pool (default 1). The map
	// stage has no cross-chunk dependency; everything after it is strictly
	// sequential.
	Concurrency int

	// Retry overrides the per-stage retry budget. The zero value means
	// 3 attempts with a 2s fixed delay.
	Retry RetryPolicy

	Logger *slog.Logger
}

// Run turns the tokenized transcript into a new dialog transcript for the
// named podcast episode.
func (s *Summarizer) Run(ctx context.Context, sentences []string, podcast, episodeName string) (string, error) {
	if s.Completer == nil {
		return "", errors.New("recast: Summarizer.Completer is nil")
	}
	if len(sentences) == 0 {
		return "", errors.New("recast: transcript has no sentences")
	}
	log := s.logger()

	pageSize := s.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	chunks, err := Segment(sentences, pageSize)
	if err != nil {
		return "", err
	}
	log.Debug("transcript segmented", "sentences", len(sentences), "chunks", len(chunks))

	summaries, err := s.mapChunks(ctx, chunks)
	if err != nil {
		return "", err
	}
	log.Debug("chunk summaries ready", "summaries", len(summaries))

	prompt, err := renderTemplate("summarize_summaries", map[string]string{
		"summaries": bulleted(summaries),
	})
	if err != nil {
		return "", err
	}
	metasummary, err := s.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize summaries: %w", err)
	}
	log.Debug("metasummary ready", "metasummary", metasummary)

	prompt, err = renderTemplate("remove_sponsors_from_summary", map[string]string{
		"summary": metasummary,
	})
	if err != nil {
		return "", err
	}
	cleaned, err := s.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("remove sponsors: %w", err)
	}
	log.Debug("metasummary cleaned", "metasummary", cleaned)

	prompt, err = renderTemplate("rewrite_as_a_podcast_transcript", map[string]string{
		"podcast":      podcast,
		"summary":      cleaned,
		"episode_name": episodeName,
	})
	if err != nil {
		return "", err
	}
	dialog, err := s.complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("rewrite as transcript: %w", err)
	}
	log.Debug("new podcast dialog ready", "dialog", dialog)

	return dialog, nil
}

// mapChunks summarizes every chunk under a bounded worker pool, preserving
// chunk order in the result: earlier chunks are earlier transcript content,
// so the reduce stage depends on order even though the map stage does not.
func (s *Summarizer) mapChunks(ctx context.Context, chunks []string) ([]string, error) {
	concurrency := s.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	summaries := make([]string, len(chunks))
	sem := make(chan struct{}, concurrency)
	errCh := make(chan error, len(chunks))

	wg := sync.WaitGroup{}
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			default:
			}

			prompt, err := renderTemplate("summarize_snippet", map[string]string{"snippet": chunk})
			if err != nil {
				errCh <- err
				return
			}
			out, err := s.complete(ctx, prompt)
			if err != nil {
				errCh <- fmt.Errorf("summarize chunk %d: %w", i+1, err)
				return
			}
			summaries[i] = out
		}(i, chunk)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// complete is one plain (non-structured) completion wrapped in the plain
// retry budget.
func (s *Summarizer) complete(ctx context.Context, prompt string) (string, error) {
	maxTokens := s.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultStageMaxTokens
	}
	policy := s.Retry
	if policy.Attempts == 0 {
		policy.Attempts = plainRetryAttempts
		policy.Delay = plainRetryDelay
	}
	if policy.Logger == nil {
		policy.Logger = s.logger()
	}
	return Retry(ctx, policy, func() (string, error) {
		return s.Completer.Complete(ctx, CompletionRequest{
			Prompt:    prompt,
			Model:     s.Model,
			MaxTokens: maxTokens,
		})
	})
}

func (s *Summarizer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func bulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, " - "+item)
	}
	return strings.Join(lines, "\n")
}
