// Package tts renders finished dialog transcripts to speech. Backends are
// selected by a short method name through an explicit dispatch table.
package tts

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Synthesizer renders a dialog transcript to MP3 audio. Implementations that
// hold connections also implement io.Closer.
type Synthesizer interface {
	Synthesize(ctx context.Context, transcript string) ([]byte, error)
}

// Options configures the concrete backends.
type Options struct {
	// Google Cloud voice selection.
	LanguageCode string // default "en-US"
	VoiceName    string // optional, e.g. "en-US-Neural2-J"

	// Tortoise inference server.
	TortoiseURL    string // default "http://127.0.0.1:5000"
	TortoisePreset string // ultra_fast|fast|standard|high_quality
}

var builders = map[string]func(context.Context, Options) (Synthesizer, error){
	"google":   newGoogle,
	"tortoise": newTortoise,
}

// New picks a synthesizer by method name.
func New(ctx context.Context, method string, opts Options) (Synthesizer, error) {
	build, ok := builders[strings.ToLower(strings.TrimSpace(method))]
	if !ok {
		return nil, fmt.Errorf("tts: unknown method %q (have: google, tortoise)", method)
	}
	return build(ctx, opts)
}

// Sanitize strips embedded control characters so backends receive plain
// UTF-8 text. Newlines and tabs survive.
func Sanitize(transcript string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, transcript)
}
