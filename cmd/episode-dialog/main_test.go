package main

import (
	"flag"
	"io"
	"testing"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("episode-dialog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{"-feed", "http://example.com/rss"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.FeedURL != "http://example.com/rss" {
		t.Errorf("FeedURL = %q", cfg.FeedURL)
	}
	if cfg.EpisodeIndex != 0 {
		t.Errorf("EpisodeIndex = %d, want 0", cfg.EpisodeIndex)
	}
	if cfg.Model != "gpt-3.5-turbo-instruct" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.ContextWindow != 4096 {
		t.Errorf("ContextWindow = %d, want 4096", cfg.ContextWindow)
	}
	if cfg.OutPath != "" {
		t.Errorf("OutPath = %q, want empty (stdout)", cfg.OutPath)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-feed", "http://example.com/rss",
		"-episode", "3",
		"-model", "gpt-4",
		"-context-window", "8192",
		"-out", "dialog.txt",
		"-api-key", "sk-test",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.EpisodeIndex != 3 {
		t.Errorf("EpisodeIndex = %d, want 3", cfg.EpisodeIndex)
	}
	if cfg.Model != "gpt-4" {
		t.Errorf("Model = %q, want gpt-4", cfg.Model)
	}
	if cfg.ContextWindow != 8192 {
		t.Errorf("ContextWindow = %d, want 8192", cfg.ContextWindow)
	}
	if cfg.OutPath != "dialog.txt" {
		t.Errorf("OutPath = %q", cfg.OutPath)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := defaultConfig()
	valid.FeedURL = "http://example.com/rss"

	direct := defaultConfig()
	direct.Podcast = "Space Hour"
	direct.EpisodeTitle = "Mars"
	direct.Description = "All about Mars."

	tests := []struct {
		name    string
		mutate  func(*Config)
		base    Config
		wantErr bool
	}{
		{name: "feed input", base: valid, mutate: func(*Config) {}},
		{name: "direct input", base: direct, mutate: func(*Config) {}},
		{name: "no input at all", base: defaultConfig(), mutate: func(*Config) {}, wantErr: true},
		{
			name: "partial direct input",
			base: direct,
			mutate: func(c *Config) {
				c.Description = ""
			},
			wantErr: true,
		},
		{
			name:    "negative episode index",
			base:    valid,
			mutate:  func(c *Config) { c.EpisodeIndex = -1 },
			wantErr: true,
		},
		{
			name:    "missing model",
			base:    valid,
			mutate:  func(c *Config) { c.Model = "" },
			wantErr: true,
		},
		{
			name:    "negative context window",
			base:    valid,
			mutate:  func(c *Config) { c.ContextWindow = -1 },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := tc.base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tc.wantErr)
			}
		})
	}
}
