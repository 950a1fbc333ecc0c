package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("show-pipeline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseFlagsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{"-feed", "http://example.com/rss"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.Output != "audio" {
		t.Errorf("Output = %q, want audio", cfg.Output)
	}
	if cfg.TTSMethod != "google" {
		t.Errorf("TTSMethod = %q, want google", cfg.TTSMethod)
	}
	if cfg.OutPath != "podcast.mp3" {
		t.Errorf("OutPath = %q, want podcast.mp3", cfg.OutPath)
	}
	if cfg.Model != "gpt-3.5-turbo-instruct" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.PageSize != 100 || cfg.Concurrency != 4 || cfg.MaxTokens != 256 {
		t.Errorf("pipeline defaults = page %d, concurrency %d, max-tokens %d",
			cfg.PageSize, cfg.Concurrency, cfg.MaxTokens)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-feed", "http://example.com/rss",
		"-episode", "2",
		"-transcript", "./x/../transcript.txt",
		"-output", "text",
		"-tts-method", "tortoise",
		"-tortoise-url", "http://gpu-box:5000",
		"-tortoise-preset", "fast",
		"-out", "show.txt",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.EpisodeIndex != 2 {
		t.Errorf("EpisodeIndex = %d, want 2", cfg.EpisodeIndex)
	}
	if cfg.TranscriptPath != "transcript.txt" {
		t.Errorf("TranscriptPath = %q, want cleaned path", cfg.TranscriptPath)
	}
	if cfg.Output != "text" {
		t.Errorf("Output = %q, want text", cfg.Output)
	}
	if cfg.TTSMethod != "tortoise" {
		t.Errorf("TTSMethod = %q", cfg.TTSMethod)
	}
	if cfg.TortoiseURL != "http://gpu-box:5000" {
		t.Errorf("TortoiseURL = %q", cfg.TortoiseURL)
	}
	if cfg.TortoisePreset != "fast" {
		t.Errorf("TortoisePreset = %q", cfg.TortoisePreset)
	}
	if cfg.OutPath != "show.txt" {
		t.Errorf("OutPath = %q", cfg.OutPath)
	}
}

const testConfigYAML = `model: gpt-4
pipeline:
  page_size: 40
  concurrency: 2
  max_tokens: 512
  context_window: 8192
tts:
  method: tortoise
  tortoise_url: http://gpu-box:5000
  tortoise_preset: standard
`

func TestParseFlagsConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-feed", "http://example.com/rss",
		"-config", path,
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.Model != "gpt-4" {
		t.Errorf("Model = %q, want file value", cfg.Model)
	}
	if cfg.PageSize != 40 || cfg.Concurrency != 2 || cfg.MaxTokens != 512 || cfg.ContextWindow != 8192 {
		t.Errorf("pipeline = page %d, concurrency %d, max-tokens %d, context-window %d, want file values",
			cfg.PageSize, cfg.Concurrency, cfg.MaxTokens, cfg.ContextWindow)
	}
	if cfg.TTSMethod != "tortoise" || cfg.TortoiseURL != "http://gpu-box:5000" || cfg.TortoisePreset != "standard" {
		t.Errorf("tts = %q %q %q, want file values", cfg.TTSMethod, cfg.TortoiseURL, cfg.TortoisePreset)
	}
}

func TestParseFlagsFlagsWinOverConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := parseFlags(newTestFlagSet(), []string{
		"-feed", "http://example.com/rss",
		"-config", path,
		"-model", "gpt-3.5-turbo-instruct",
		"-page", "10",
		"-tts-method", "google",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.Model != "gpt-3.5-turbo-instruct" {
		t.Errorf("Model = %q, want flag value", cfg.Model)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want flag value", cfg.PageSize)
	}
	if cfg.TTSMethod != "google" {
		t.Errorf("TTSMethod = %q, want flag value", cfg.TTSMethod)
	}
	// Untouched flags still take file values.
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want file value", cfg.Concurrency)
	}
}

func TestParseFlagsMissingConfigFile(t *testing.T) {
	t.Parallel()

	_, err := parseFlags(newTestFlagSet(), []string{
		"-feed", "http://example.com/rss",
		"-config", filepath.Join(t.TempDir(), "missing.yaml"),
	})
	if err == nil {
		t.Error("parseFlags() error = nil, want error for missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := defaultConfig()
	valid.FeedURL = "http://example.com/rss"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid audio run", mutate: func(*Config) {}},
		{name: "valid text run", mutate: func(c *Config) { c.Output = "text"; c.TTSMethod = "" }},
		{name: "missing feed", mutate: func(c *Config) { c.FeedURL = "" }, wantErr: true},
		{name: "bad output", mutate: func(c *Config) { c.Output = "video" }, wantErr: true},
		{name: "audio without tts method", mutate: func(c *Config) { c.TTSMethod = "" }, wantErr: true},
		{name: "zero page", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: true},
		{name: "negative episode", mutate: func(c *Config) { c.EpisodeIndex = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tc.wantErr)
			}
		})
	}
}
