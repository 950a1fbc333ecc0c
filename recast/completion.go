package recast

import "context"

// CompletionRequest is a single call to the completion backend. MaxTokens
// bounds the generated continuation only; OutputPrefix is forced onto the
// start of the output and is never regenerated by the model.
type CompletionRequest struct {
	Prompt       string
	Model        string
	MaxTokens    int64
	OutputPrefix string
}

// Completer is the completion backend. Implementations own transport, auth
// and the fixed sampling constants; callers own prompt construction and
// output parsing. The returned string is OutputPrefix followed by the
// trimmed continuation. Calls block for the duration of model generation.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
