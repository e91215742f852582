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


package enhance

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
)

// Enhancer re-derives glossary definitions that were extracted with low
// confidence, merging the results back without ever weakening a
// definition the batch already trusts.
type Enhancer struct {
	generator   ai.TextGenerator
	temperature float64
	threshold   core.Confidence
	logger      *slog.Logger
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithThreshold sets the confidence level a glossary record must exceed
// to be trusted as-is. Defaults to medium, so only high-confidence
// records skip review.
func WithThreshold(threshold core.Confidence) Option {
	return func(e *Enhancer) {
		e.threshold = threshold
	}
}

// WithTemperature sets the sampling temperature for the review pass.
func WithTemperature(temperature float64) Option {
	return func(e *Enhancer) {
		e.temperature = temperature
	}
}

// NewEnhancer creates an enhancer backed by the given generator.
func NewEnhancer(generator ai.TextGenerator, opts ...Option) *Enhancer {
	e := &Enhancer{
		generator:   generator,
		temperature: 0.3,
		threshold:   core.ConfidenceMedium,
		logger:      slog.Default().With("component", "enhancer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance reviews the glossary records in the batch and returns the
// batch with reviewed definitions merged in. Non-glossary records pass
// through untouched and input order is preserved; newly discovered terms
// are appended at the end.
//
// A batch with nothing to review is returned unchanged without calling
// the service. An unparseable review leaves every record under review
// flagged for manual attention.
//
// extraContext is caller-supplied background included in the review
// prompt; pass the empty string when there is none.
func (e *Enhancer) Enhance(ctx context.Context, records []core.SemanticRecord, extraContext string) ([]core.SemanticRecord, error) {
	var trusted, toReview []core.SemanticRecord
	for _, record := range records {
		if record.Kind != core.KindGlossary {
			continue
		}
		if record.Confidence > e.threshold && !record.NeedsReview {
			trusted = append(trusted, record)
		} else {
			toReview = append(toReview, record)
		}
	}

	if len(toReview) == 0 {
		return records, nil
	}

	result, err := e.generator.GenerateObject(ctx, enhancePrompt(trusted, toReview, extraContext), e.temperature)
	if err != nil {
		return nil, err
	}

	revised := reviewedTerms(result)

	reviewing := make(map[string]bool, len(toReview))
	for _, record := range toReview {
		reviewing[termKey(record.Term)] = true
	}
	trustedTerms := make(map[string]bool, len(trusted))
	for _, record := range trusted {
		trustedTerms[termKey(record.Term)] = true
	}

	merged := make([]core.SemanticRecord, 0, len(records))
	for _, record := range records {
		if record.Kind != core.KindGlossary || !reviewing[termKey(record.Term)] {
			merged = append(merged, record)
			continue
		}
		merged = append(merged, e.mergeReview(record, revised[termKey(record.Term)]))
	}

	// Terms the review discovered that neither list contained.
	var source core.Provenance
	if len(toReview) > 0 {
		source = toReview[0].Source
	}
	for _, entry := range revised {
		key := termKey(entry.Term)
		if reviewing[key] || trustedTerms[key] {
			continue
		}
		record := core.SemanticRecord{
			Kind:         core.KindGlossary,
			Term:         entry.Term,
			Definition:   entry.Definition,
			TermCategory: entry.TermCategory,
			Confidence:   entry.Confidence,
			NeedsReview:  entry.NeedsReview,
			DomainHints:  entry.DomainHints,
			Keywords:     entry.Keywords,
			Source:       source,
		}
		record.Normalize()
		if core.ValidateRecord(&record) == nil {
			merged = append(merged, record)
		}
	}

	return merged, nil
}

// mergeReview folds one re-derived definition into the original record.
// The original wins unless the review is strictly more confident; a
// losing review still contributes its definition as an alternative.
func (e *Enhancer) mergeReview(original core.SemanticRecord, entry *reviewedTerm) core.SemanticRecord {
	if entry == nil {
		original.NeedsReview = true
		return original
	}

	if entry.Confidence > original.Confidence {
		original.Definition = entry.Definition
		original.Confidence = entry.Confidence
		original.NeedsReview = entry.NeedsReview
		if entry.TermCategory != "" {
			original.TermCategory = entry.TermCategory
		}
		if len(entry.DomainHints) > 0 {
			original.DomainHints = entry.DomainHints
		}
		original.Normalize()
		return original
	}

	if entry.Definition != "" && !strings.EqualFold(entry.Definition, original.Definition) {
		original.AlternativeDefinitions = append(original.AlternativeDefinitions, entry.Definition)
	}
	original.NeedsReview = true
	return original
}

type reviewedTerm struct {
	Term         string
	Definition   string
	TermCategory string
	Confidence   core.Confidence
	NeedsReview  bool
	DomainHints  []string
	Keywords     []string
}

// reviewedTerms decodes the "terms" array of a review response, keyed by
// folded term. Entries without a term or definition are dropped.
func reviewedTerms(result map[string]any) map[string]*reviewedTerm {
	terms := make(map[string]*reviewedTerm)
	raw, _ := result["terms"].([]any)
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		term, _ := entry["term"].(string)
		definition, _ := entry["definition"].(string)
		if term == "" || definition == "" {
			continue
		}

		confidence, err := core.ParseConfidence(stringValue(entry, "confidence"))
		if err != nil {
			confidence = core.ConfidenceLow
		}
		needsReview, _ := entry["needs_review"].(bool)
		if confidence == core.ConfidenceLow {
			needsReview = true
		}

		terms[termKey(term)] = &reviewedTerm{
			Term:         term,
			Definition:   definition,
			TermCategory: stringValue(entry, "category"),
			Confidence:   confidence,
			NeedsReview:  needsReview,
			DomainHints:  stringValues(entry, "domain_hints"),
			Keywords:     stringValues(entry, "keywords"),
		}
	}
	return terms
}

func termKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func stringValue(entry map[string]any, key string) string {
	value, _ := entry[key].(string)
	return value
}

func stringValues(entry map[string]any, key string) []string {
	raw, _ := entry[key].([]any)
	var values []string
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}
