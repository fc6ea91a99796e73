package genai

import (
	"context"
	"sync"
)

// MockGenerator is a scriptable Generator for tests.
type MockGenerator struct {
	mu sync.Mutex

	// Response is returned when GenerateFunc is nil.
	Response string
	// Err, when set, is returned instead of a response.
	Err error
	// GenerateFunc overrides the canned behavior entirely.
	GenerateFunc func(ctx context.Context, parts []Part, cfg GenerationConfig) (string, error)

	// Calls records every request received.
	Calls [][]Part
}

// Ensure MockGenerator implements Generator interface.
var _ Generator = (*MockGenerator)(nil)

// NewMockGenerator returns a mock that replies with a plausible assessment.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Response: "This appears to be normal infant skin irritation [82% match]. Please consult a pediatrician for any health concerns.",
	}
}

// Generate records the call and returns the scripted result.
func (m *MockGenerator) Generate(ctx context.Context, parts []Part, cfg GenerationConfig) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, parts)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, parts, cfg)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount reports how many requests the mock has seen.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
