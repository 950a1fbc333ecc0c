package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	InPath       string
	OutPath      string
	Podcast      string
	EpisodeTitle string

	Model         string
	MaxTokens     int64
	PageSize      int
	Concurrency   int
	ContextWindow int

	APIKey string
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.Podcast == "" {
		return errors.New("missing -podcast")
	}
	if c.EpisodeTitle == "" {
		return errors.New("missing -episode-title")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.MaxTokens <= 0 {
		return errors.New("max-tokens must be > 0")
	}
	if c.PageSize < 1 {
		return errors.New("page must be >= 1")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must be >= 0")
	}
	if c.ContextWindow < 0 {
		return errors.New("context-window must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Model:         "gpt-3.5-turbo-instruct",
		MaxTokens:     256,
		PageSize:      100,
		Concurrency:   4,
		ContextWindow: 4096,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InPath, "in", "", "Path to a plain-text transcript file")
	fs.StringVar(&cfg.OutPath, "out", "", "Output path for the new transcript (default: stdout)")
	fs.StringVar(&cfg.Podcast, "podcast", "", "Podcast name")
	fs.StringVar(&cfg.EpisodeTitle, "episode-title", "", "Episode name")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI completion model")
	fs.Int64Var(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "Generation budget per pipeline stage")
	fs.IntVar(&cfg.PageSize, "page", cfg.PageSize, "Sentences per chunk for the map stage")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Max concurrent chunk summarizations")
	fs.IntVar(&cfg.ContextWindow, "context-window", cfg.ContextWindow, "Model context window in tokens (0 disables the prompt budget guard)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.InPath != "" {
		cfg.InPath = filepath.Clean(cfg.InPath)
	}
	return cfg, nil
}
