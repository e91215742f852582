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


package distill

import (
	"log/slog"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/ai/openai"
	"github.com/poiesic/distill/enhance"
	"github.com/poiesic/distill/extract"
	"github.com/poiesic/distill/storage"
	"github.com/poiesic/distill/storage/badger"
	"github.com/poiesic/distill/storage/sqlite"
)

// Pipeline bundles the record store, the optional extraction ledger and
// the text service behind one handle.
type Pipeline struct {
	store    storage.SemanticRepository
	ledger   storage.LedgerRepository
	provider ai.Provider
	config   *ai.Config
	logger   *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	aiConfig   *ai.Config
	ledgerPath string
}

// WithAIConfig overrides the text service configuration.
func WithAIConfig(config *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.aiConfig = config
	}
}

// WithLedgerPath enables the extraction ledger at the given directory,
// so repeated runs skip items that were already processed.
func WithLedgerPath(path string) PipelineOption {
	return func(o *pipelineOptions) {
		o.ledgerPath = path
	}
}

// NewPipeline opens the record database at dbPath and connects the text
// service.
func NewPipeline(dbPath string, opts ...PipelineOption) (*Pipeline, error) {
	options := &pipelineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := sqlite.NewRepository(dbPath)
	if err != nil {
		return nil, err
	}

	var ledger storage.LedgerRepository
	if options.ledgerPath != "" {
		ledger, err = badger.NewLedger(options.ledgerPath)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		if ledger != nil {
			ledger.Close()
		}
		store.Close()
		return nil, err
	}

	return &Pipeline{
		store:    store,
		ledger:   ledger,
		provider: provider,
		config:   options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

// Close shuts everything down. Safe to call more than once.
func (p *Pipeline) Close() error {
	if err := p.provider.Close(); err != nil {
		p.logger.Error("error closing AI provider", "err", err)
	}

	if p.ledger != nil {
		if err := p.ledger.Close(); err != nil {
			p.logger.Error("error closing ledger", "err", err)
			return err
		}
	}

	if err := p.store.Close(); err != nil {
		p.logger.Error("error closing record store", "err", err)
		return err
	}
	return nil
}

// Store returns the semantic record repository.
func (p *Pipeline) Store() storage.SemanticRepository {
	return p.store
}

// Ledger returns the extraction ledger, or nil when none is configured.
func (p *Pipeline) Ledger() storage.LedgerRepository {
	return p.ledger
}

// NewExtractor builds an extractor over the default strategy registry,
// wired to the ledger when one is configured.
func (p *Pipeline) NewExtractor(opts ...extract.ExtractorOption) *extract.Extractor {
	registry := extract.DefaultRegistry(p.provider.Generator(), p.config.Temperature)
	if p.ledger != nil {
		opts = append([]extract.ExtractorOption{extract.WithLedger(p.ledger)}, opts...)
	}
	return extract.NewExtractor(registry, opts...)
}

// NewEnhancer builds a glossary enhancer backed by the text service.
func (p *Pipeline) NewEnhancer(opts ...enhance.Option) *enhance.Enhancer {
	opts = append([]enhance.Option{enhance.WithTemperature(p.config.Temperature)}, opts...)
	return enhance.NewEnhancer(p.provider.Generator(), opts...)
}
