package mock

import (
	"context"
)

// MockTextGenerator is a test double for ai.TextGenerator.
// It allows custom behavior injection via function fields.
type MockTextGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Generate returns an empty string.
	GenerateFunc func(ctx context.Context, prompt string, temperature float64) (string, error)

	// GenerateObjectFunc is called by GenerateObject if set.
	// If nil, GenerateObject returns an empty map.
	GenerateObjectFunc func(ctx context.Context, prompt string, temperature float64) (map[string]any, error)

	callCount int
	prompts   []string
}

// NewTextGenerator creates a mock text generator with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{}
}

// Generate returns whatever GenerateFunc produces, or an empty string.
func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, temperature)
	}
	return "", nil
}

// GenerateObject returns whatever GenerateObjectFunc produces, or an empty
// map, mirroring the production client's fail-soft behavior.
func (m *MockTextGenerator) GenerateObject(ctx context.Context, prompt string, temperature float64) (map[string]any, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.GenerateObjectFunc != nil {
		return m.GenerateObjectFunc(ctx, prompt, temperature)
	}
	return map[string]any{}, nil
}

// CallCount returns the total number of Generate/GenerateObject calls.
func (m *MockTextGenerator) CallCount() int {
	return m.callCount
}

// Prompts returns every prompt the mock has seen, in call order.
func (m *MockTextGenerator) Prompts() []string {
	return m.prompts
}

// Reset clears the call count, recorded prompts and custom functions.
func (m *MockTextGenerator) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.GenerateFunc = nil
	m.GenerateObjectFunc = nil
}
