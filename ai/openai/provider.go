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


package openai

import (
	"log/slog"
	"sync"

	"github.com/poiesic/distill/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the text generator instance and its connection lifecycle.
type Provider struct {
	config    *ai.Config
	generator *TextGenerator
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewProvider creates a new provider backed by an OpenAI-compatible service.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	generator, err := newTextGenerator(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		generator: generator,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Generator returns the text generation service.
func (p *Provider) Generator() ai.TextGenerator {
	return p.generator
}

// Close releases resources held by the provider. Safe to call more than
// once; the underlying HTTP client needs no explicit teardown.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		p.logger.Debug("closing OpenAI provider")
	})
	return nil
}
