package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/neurosnap/sentences/english"

	"github.com/theimaginaryfoundation/recast-o-bot/recast"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/fileutils"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/provider"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := recast.NewLogger(os.Stderr).With("component", "transcript-rollup")

	raw, err := os.ReadFile(cfg.InPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("read transcript: %w", err).Error())
		os.Exit(1)
	}
	sents, err := tokenizeSentences(string(raw))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if len(sents) == 0 {
		fmt.Fprintln(os.Stderr, "transcript contains no sentences")
		os.Exit(1)
	}

	backend := provider.New(apiKey)
	backend.ContextWindow = cfg.ContextWindow

	summarizer := recast.Summarizer{
		Completer:   backend,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		PageSize:    cfg.PageSize,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
	transcript, err := summarizer.Run(ctx, sents, cfg.Podcast, cfg.EpisodeTitle)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.OutPath == "" {
		fmt.Fprintln(os.Stdout, transcript)
		return
	}
	if err := fileutils.WriteFileAtomic(cfg.OutPath, []byte(transcript+"\n"), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("write transcript: %w", err).Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "sentences=%d transcript_chars=%d out=%s\n", len(sents), len(transcript), cfg.OutPath)
}

// tokenizeSentences splits raw transcript text into trimmed sentences.
func tokenizeSentences(text string) ([]string, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	var out []string
	for _, s := range tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
