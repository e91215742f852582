package ai

import "context"

// TextGenerator produces text from a prompt via a remote generative
// service. Implementations must be thread-safe for concurrent use.
type TextGenerator interface {
	// Generate returns the raw text produced for the prompt.
	// Returns an error if the service call fails.
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)

	// GenerateObject asks the service to constrain its output to a single
	// JSON object and returns the parsed result. A response that cannot be
	// parsed yields an EMPTY map and a nil error: callers treat "no
	// structure" and "service said nothing" identically and contribute
	// zero records. Only transport-level failures return an error.
	GenerateObject(ctx context.Context, prompt string, temperature float64) (map[string]any, error)
}

// Provider owns the text-generation connection lifecycle.
// A provider is acquired once, used for any number of calls, and released
// with Close; Close is safe to call more than once.
type Provider interface {
	// Generator returns the text generation service.
	// The returned TextGenerator is safe for concurrent use.
	Generator() TextGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
