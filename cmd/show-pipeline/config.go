package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	FeedURL      string
	EpisodeIndex int

	// TranscriptPath switches the run onto the map-reduce path: the episode
	// metadata still comes from the feed, but the dialog is built from the
	// full transcript instead of the description.
	TranscriptPath string

	Output string // text | audio

	Model         string
	MaxTokens     int64
	PageSize      int
	Concurrency   int
	ContextWindow int

	TTSMethod      string
	LanguageCode   string
	Voice          string
	TortoiseURL    string
	TortoisePreset string

	ConfigPath string
	OutPath    string
	APIKey     string
}

func (c Config) Validate() error {
	if c.FeedURL == "" {
		return errors.New("missing -feed")
	}
	if c.EpisodeIndex < 0 {
		return errors.New("episode index must be >= 0")
	}
	if c.Output != "text" && c.Output != "audio" {
		return fmt.Errorf("output must be text or audio, got %q", c.Output)
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
	if c.Output == "audio" && c.TTSMethod == "" {
		return errors.New("missing -tts-method for audio output")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Output:        "audio",
		Model:         "gpt-3.5-turbo-instruct",
		MaxTokens:     256,
		PageSize:      100,
		Concurrency:   4,
		ContextWindow: 4096,
		TTSMethod:     "google",
		OutPath:       "podcast.mp3",
	}
}

// fileConfig mirrors the optional YAML config file. Flags given on the
// command line win over file values.
type fileConfig struct {
	Model    string `yaml:"model"`
	Pipeline struct {
		PageSize      int   `yaml:"page_size"`
		Concurrency   int   `yaml:"concurrency"`
		MaxTokens     int64 `yaml:"max_tokens"`
		ContextWindow int   `yaml:"context_window"`
	} `yaml:"pipeline"`
	TTS struct {
		Method         string `yaml:"method"`
		LanguageCode   string `yaml:"language_code"`
		Voice          string `yaml:"voice"`
		TortoiseURL    string `yaml:"tortoise_url"`
		TortoisePreset string `yaml:"tortoise_preset"`
	} `yaml:"tts"`
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.FeedURL, "feed", "", "Podcast RSS feed URL")
	fs.IntVar(&cfg.EpisodeIndex, "episode", 0, "Episode index within the feed (0 = first item)")
	fs.StringVar(&cfg.TranscriptPath, "transcript", "", "Optional plain-text transcript; switches to the map-reduce summarization path")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Pipeline output: text | audio")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI completion model")
	fs.Int64Var(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "Generation budget per map-reduce stage")
	fs.IntVar(&cfg.PageSize, "page", cfg.PageSize, "Sentences per chunk for the map stage")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Max concurrent chunk summarizations")
	fs.IntVar(&cfg.ContextWindow, "context-window", cfg.ContextWindow, "Model context window in tokens (0 disables the prompt budget guard)")
	fs.StringVar(&cfg.TTSMethod, "tts-method", cfg.TTSMethod, "Text-to-speech method: google | tortoise")
	fs.StringVar(&cfg.LanguageCode, "tts-language", "", "Google TTS language code (default en-US)")
	fs.StringVar(&cfg.Voice, "tts-voice", "", "Google TTS voice name")
	fs.StringVar(&cfg.TortoiseURL, "tortoise-url", "", "Tortoise inference server URL")
	fs.StringVar(&cfg.TortoisePreset, "tortoise-preset", "", "Tortoise preset: ultra_fast | fast | standard | high_quality")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Optional YAML config file (flags win over file values)")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path (audio file, or transcript path for -output text; empty = stdout)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if cfg.ConfigPath != "" {
		fc, err := loadConfigFile(filepath.Clean(cfg.ConfigPath))
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fc, set)
	}
	if cfg.TranscriptPath != "" {
		cfg.TranscriptPath = filepath.Clean(cfg.TranscriptPath)
	}
	return cfg, nil
}

func loadConfigFile(path string) (fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read -config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse -config: %w", err)
	}
	return fc, nil
}

func applyFileConfig(cfg *Config, fc fileConfig, set map[string]bool) {
	if !set["model"] && fc.Model != "" {
		cfg.Model = fc.Model
	}
	if !set["page"] && fc.Pipeline.PageSize != 0 {
		cfg.PageSize = fc.Pipeline.PageSize
	}
	if !set["concurrency"] && fc.Pipeline.Concurrency != 0 {
		cfg.Concurrency = fc.Pipeline.Concurrency
	}
	if !set["max-tokens"] && fc.Pipeline.MaxTokens != 0 {
		cfg.MaxTokens = fc.Pipeline.MaxTokens
	}
	if !set["context-window"] && fc.Pipeline.ContextWindow != 0 {
		cfg.ContextWindow = fc.Pipeline.ContextWindow
	}
	if !set["tts-method"] && fc.TTS.Method != "" {
		cfg.TTSMethod = fc.TTS.Method
	}
	if !set["tts-language"] && fc.TTS.LanguageCode != "" {
		cfg.LanguageCode = fc.TTS.LanguageCode
	}
	if !set["tts-voice"] && fc.TTS.Voice != "" {
		cfg.Voice = fc.TTS.Voice
	}
	if !set["tortoise-url"] && fc.TTS.TortoiseURL != "" {
		cfg.TortoiseURL = fc.TTS.TortoiseURL
	}
	if !set["tortoise-preset"] && fc.TTS.TortoisePreset != "" {
		cfg.TortoisePreset = fc.TTS.TortoisePreset
	}
}
