package genai

import "context"

// Generator defines the interface for generative model calls.
type Generator interface {
	// Generate sends a prompt (optionally with an image part) and returns
	// the generated text.
	Generate(ctx context.Context, parts []Part, cfg GenerationConfig) (string, error)
}

// Ensure Client implements Generator interface.
var _ Generator = (*Client)(nil)
