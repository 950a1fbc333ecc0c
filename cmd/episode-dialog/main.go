package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theimaginaryfoundation/recast-o-bot/recast"
	"github.com/theimaginaryfoundation/recast-o-bot/recast/feed"
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

	logger := recast.NewLogger(os.Stderr).With("component", "episode-dialog")

	podcast, episodeTitle, description := cfg.Podcast, cfg.EpisodeTitle, cfg.Description
	if cfg.FeedURL != "" {
		episode, err := feed.Lookup(ctx, cfg.FeedURL, cfg.EpisodeIndex)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		podcast, episodeTitle, description = episode.Podcast, episode.Title, episode.Description
	}

	backend := provider.New(apiKey)
	backend.ContextWindow = cfg.ContextWindow

	writer := recast.DialogWriter{
		Client: &recast.StructuredClient{Completer: backend, Model: cfg.Model, Logger: logger},
		Logger: logger,
	}
	transcript, err := writer.NewDialog(ctx, podcast, episodeTitle, description)
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
	fmt.Fprintf(os.Stdout, "transcript_chars=%d out=%s\n", len(transcript), cfg.OutPath)
}
