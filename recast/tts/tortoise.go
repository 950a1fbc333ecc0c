package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTortoiseURL    = "http://127.0.0.1:5000"
	defaultTortoisePreset = "high_quality"

	// Neural synthesis of a full transcript is slow even on a GPU.
	tortoiseTimeout = 30 * time.Minute
)

var tortoisePresets = map[string]bool{
	"ultra_fast":   true,
	"fast":         true,
	"standard":     true,
	"high_quality": true,
}

// tortoiseSynthesizer speaks through a local Tortoise TTS inference server.
// There is no Go SDK for it, so this is a plain HTTP client.
type tortoiseSynthesizer struct {
	url    string
	preset string
	client *http.Client
}

func newTortoise(_ context.Context, opts Options) (Synthesizer, error) {
	url := opts.TortoiseURL
	if url == "" {
		url = defaultTortoiseURL
	}
	preset := opts.TortoisePreset
	if preset == "" {
		preset = defaultTortoisePreset
	}
	if !tortoisePresets[preset] {
		return nil, fmt.Errorf("tts: unknown tortoise preset %q", preset)
	}
	return &tortoiseSynthesizer{
		url:    strings.TrimRight(url, "/"),
		preset: preset,
		client: &http.Client{Timeout: tortoiseTimeout},
	}, nil
}

type tortoiseRequest struct {
	Text   string `json:"text"`
	Preset string `json:"preset"`
	Voice  string `json:"voice"`
}

func (t *tortoiseSynthesizer) Synthesize(ctx context.Context, transcript string) ([]byte, error) {
	payload, err := json.Marshal(tortoiseRequest{
		Text:   transcript,
		Preset: t.preset,
		Voice:  "train_mouse",
	})
	if err != nil {
		return nil, fmt.Errorf("tts: encode tortoise request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url+"/api/tts", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tts: build tortoise request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: tortoise request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("tts: tortoise request failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
