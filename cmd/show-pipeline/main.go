package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/neurosnap/sentences/english"

	"github.com/theimaginaryfoundation/recast-o-bot/recast"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/feed"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/fileutils"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/provider"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/tts"
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

	logger := recast.NewLogger(os.Stderr).With("component", "show-pipeline")

	episode, err := feed.Lookup(ctx, cfg.FeedURL, cfg.EpisodeIndex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	logger.Info("episode found", "podcast", episode.Podcast, "episode", episode.Title)

	backend := provider.New(apiKey)
	backend.ContextWindow = cfg.ContextWindow

	transcript, err := buildTranscript(ctx, cfg, backend, episode, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if cfg.Output == "text" {
		// The default -out targets the audio path; text runs that kept it
		// print to stdout instead.
		if cfg.OutPath == "" || cfg.OutPath == "podcast.mp3" {
			fmt.Fprintln(os.Stdout, transcript)
			return
		}
		if err := fileutils.WriteFileAtomic(cfg.OutPath, []byte(transcript+"\n"), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("write transcript: %w", err).Error())
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "transcript_chars=%d out=%s\n", len(transcript), cfg.OutPath)
		return
	}

	synth, err := tts.New(ctx, cfg.TTSMethod, tts.Options{
		LanguageCode:   cfg.LanguageCode,
		VoiceName:      cfg.Voice,
		TortoiseURL:    cfg.TortoiseURL,
		TortoisePreset: cfg.TortoisePreset,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if closer, ok := synth.(io.Closer); ok {
		defer closer.Close()
	}

	audio, err := synth.Synthesize(ctx, tts.Sanitize(transcript))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := fileutils.WriteFileAtomic(cfg.OutPath, audio, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("write audio: %w", err).Error())
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "transcript_chars=%d audio_bytes=%d out=%s\n", len(transcript), len(audio), cfg.OutPath)
}

// buildTranscript runs whichever dialog pipeline fits the inputs: the
// map-reduce path when a full transcript is on disk, the single-shot
// description path otherwise. Both share the completion backend.
func buildTranscript(ctx context.Context, cfg Config, backend *provider.Backend, episode feed.Episode, log *slog.Logger) (string, error) {
	if cfg.TranscriptPath == "" {
		writer := recast.DialogWriter{
			Client: &recast.StructuredClient{Completer: backend, Model: cfg.Model, Logger: log},
			Logger: log,
		}
		return writer.NewDialog(ctx, episode.Podcast, episode.Title, episode.Description)
	}

	raw, err := os.ReadFile(cfg.TranscriptPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	sents, err := tokenizeSentences(string(raw))
	if err != nil {
		return "", err
	}
	summarizer := recast.Summarizer{
		Completer:   backend,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		PageSize:    cfg.PageSize,
		Concurrency: cfg.Concurrency,
		Logger:      log,
	}
	return summarizer.Run(ctx, sents, episode.Podcast, episode.Title)
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
