package recast

import "errors"

// Error taxonomy for completion calls. Transport errors come from the
// backend itself; the rest are structural: the model produced output the
// envelope parser could not turn into the requested field. All of them are
// terminal for a single call; an outer RetryPolicy may re-attempt the whole
// call with fresh output.
var (
	// ErrTransport wraps failures of the completion backend call itself
	// (network, auth, service error).
	ErrTransport = errors.New("completion backend call failed")

	// ErrEnvelopeExtraction means the output did not contain exactly one
	// top-level {...} span.
	ErrEnvelopeExtraction = errors.New("envelope extraction failed")

	// ErrEnvelopeParse means the extracted span was not a valid JSON object,
	// or the requested key was absent.
	ErrEnvelopeParse = errors.New("envelope parse failed")

	// ErrSalvageImpossible means the salvage heuristic recognized the output
	// as unrepairable.
	ErrSalvageImpossible = errors.New("output cannot be salvaged")
)
