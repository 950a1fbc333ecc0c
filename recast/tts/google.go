package tts

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// googleSynthesizer speaks through Google Cloud Text-to-Speech. Credentials
// come from the ambient application-default environment.
type googleSynthesizer struct {
	client       *texttospeech.Client
	languageCode string
	voiceName    string
}

func newGoogle(ctx context.Context, opts Options) (Synthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("tts: google client: %w", err)
	}
	lang := opts.LanguageCode
	if lang == "" {
		lang = "en-US"
	}
	return &googleSynthesizer{client: client, languageCode: lang, voiceName: opts.VoiceName}, nil
}

func (g *googleSynthesizer) Synthesize(ctx context.Context, transcript string) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: transcript},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.languageCode,
			Name:         g.voiceName,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("tts: google synthesize: %w", err)
	}
	return resp.AudioContent, nil
}

func (g *googleSynthesizer) Close() error {
	return g.client.Close()
}
