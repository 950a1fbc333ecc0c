package main

import (
	"errors"
	"flag"
	"os"
)

type Config struct {
	FeedURL      string
	EpisodeIndex int

	// Direct inputs, used instead of a feed lookup when all three are set.
	Podcast      string
	EpisodeTitle string
	Description  string

	Model         string
	ContextWindow int

	OutPath string
	APIKey  string
}

func (c Config) Validate() error {
	direct := c.Podcast != "" || c.EpisodeTitle != "" || c.Description != ""
	if c.FeedURL == "" && !direct {
		return errors.New("missing -feed (or -podcast/-episode-title/-description)")
	}
	if c.FeedURL == "" && (c.Podcast == "" || c.EpisodeTitle == "" || c.Description == "") {
		return errors.New("direct input needs all of -podcast, -episode-title, -description")
	}
	if c.EpisodeIndex < 0 {
		return errors.New("episode index must be >= 0")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.ContextWindow < 0 {
		return errors.New("context-window must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Model:         "gpt-3.5-turbo-instruct",
		ContextWindow: 4096,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.FeedURL, "feed", "", "Podcast RSS feed URL")
	fs.IntVar(&cfg.EpisodeIndex, "episode", 0, "Episode index within the feed (0 = first item)")
	fs.StringVar(&cfg.Podcast, "podcast", "", "Podcast title (direct input, bypasses -feed)")
	fs.StringVar(&cfg.EpisodeTitle, "episode-title", "", "Episode title (direct input)")
	fs.StringVar(&cfg.Description, "description", "", "Episode description (direct input)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI completion model")
	fs.IntVar(&cfg.ContextWindow, "context-window", cfg.ContextWindow, "Model context window in tokens (0 disables the prompt budget guard)")
	fs.StringVar(&cfg.OutPath, "out", "", "Output path for the transcript (default: stdout)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
