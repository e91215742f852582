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


package extract

import (
	"context"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
)

// Strategy is a unit of extraction logic bound to one semantic-record kind.
// Process must be side-effect free so a retry is always safe, and must
// return an empty slice (not an error) when the text service produces
// unusable structure.
type Strategy interface {
	// Kind returns the record kind this strategy produces.
	Kind() core.Kind

	// Process builds a prompt from the raw item, invokes the text service,
	// and parses the structured response into zero or more records.
	Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error)
}

// Registry maps a raw item origin to the ordered list of strategies that
// apply to it. Registration order is preserved; the orchestrator invokes
// strategies in that order.
type Registry struct {
	strategies map[core.Origin][]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[core.Origin][]Strategy),
	}
}

// Register appends a strategy to the given origin's list.
func (r *Registry) Register(origin core.Origin, strategy Strategy) {
	r.strategies[origin] = append(r.strategies[origin], strategy)
}

// StrategiesFor returns the strategies registered for an origin, in
// registration order. Returns nil for an origin with no strategies.
func (r *Registry) StrategiesFor(origin core.Origin) []Strategy {
	return r.strategies[origin]
}

// DefaultRegistry wires every built-in strategy against the given
// generator: QnA, insight and glossary extraction for threads; insight,
// instruction, reference and glossary extraction for document sections.
func DefaultRegistry(generator ai.TextGenerator, temperature float64) *Registry {
	r := NewRegistry()
	r.Register(core.OriginThread, NewThreadQnAStrategy(generator, temperature))
	r.Register(core.OriginThread, NewThreadInsightStrategy(generator, temperature))
	r.Register(core.OriginThread, NewThreadGlossaryStrategy(generator, temperature))
	r.Register(core.OriginDocumentSection, NewSectionInsightStrategy(generator, temperature))
	r.Register(core.OriginDocumentSection, NewSectionInstructionStrategy(generator, temperature))
	r.Register(core.OriginDocumentSection, NewSectionReferenceStrategy(generator, temperature))
	r.Register(core.OriginDocumentSection, NewSectionGlossaryStrategy(generator, temperature))
	return r
}
