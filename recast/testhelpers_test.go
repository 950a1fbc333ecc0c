package recast

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCompleter scripts the completion backend. Like the real backend it
// returns the forced prefix followed by the scripted continuation, and it
// records every request it sees.
type fakeCompleter struct {
	mu       sync.Mutex
	requests []CompletionRequest

	// respond maps a request (and its 1-based call number) to the
	// continuation text generated after the forced prefix.
	respond func(req CompletionRequest, call int) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	call := len(f.requests)
	f.mu.Unlock()

	continuation, err := f.respond(req, call)
	if err != nil {
		return "", err
	}
	return req.OutputPrefix + continuation, nil
}

func (f *fakeCompleter) calls() []CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CompletionRequest(nil), f.requests...)
}
