// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/distill/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	generator *MockTextGenerator
	closed    bool
}

// NewProvider creates a new mock provider with a default mock generator.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockGenerator() to access the concrete type for test assertions.
func NewProvider() ai.Provider {
	return &MockProvider{
		generator: NewTextGenerator(),
	}
}

// NewProviderWithGenerator creates a mock provider around a custom mock
// generator. This allows full control over generation behavior.
func NewProviderWithGenerator(generator *MockTextGenerator) ai.Provider {
	return &MockProvider{
		generator: generator,
	}
}

// Generator returns the mock text generator.
func (p *MockProvider) Generator() ai.TextGenerator {
	return p.generator
}

// Close marks the provider closed. Always succeeds.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockGenerator returns the underlying mock generator for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockGenerator() *MockTextGenerator {
	return p.generator
}
