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
	"log/slog"

	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
)

func sectionProvenance(section *core.DocumentSection) core.Provenance {
	return core.Provenance{
		Origin:        core.OriginDocumentSection,
		DocumentID:    section.DocumentID,
		DocumentTitle: section.DocumentTitle,
		SectionTitle:  section.SectionTitle,
	}
}

// SectionInsightStrategy extracts insights and feedback from a document
// section. References found in sections are handled by
// SectionReferenceStrategy and are not emitted here.
type SectionInsightStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewSectionInsightStrategy creates an insight extraction strategy for
// document sections.
func NewSectionInsightStrategy(generator ai.TextGenerator, temperature float64) *SectionInsightStrategy {
	return &SectionInsightStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "section-insight"),
	}
}

// Kind implements Strategy.
func (s *SectionInsightStrategy) Kind() core.Kind { return core.KindInsight }

// Process implements Strategy.
func (s *SectionInsightStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	section, ok := item.(*core.DocumentSection)
	if !ok || len(section.Content) == 0 {
		return nil, nil
	}

	result, err := s.generator.GenerateObject(ctx, sectionInsightPrompt(section), s.temperature)
	if err != nil {
		return nil, err
	}

	source := sectionProvenance(section)

	var records []core.SemanticRecord
	for _, entry := range objectsField(result, "insights") {
		record := insightRecord(entry, source, false)
		if record.Content == "" {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// SectionInstructionStrategy extracts actionable instructions and
// procedures from a document section.
type SectionInstructionStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewSectionInstructionStrategy creates an instruction extraction strategy
// for document sections.
func NewSectionInstructionStrategy(generator ai.TextGenerator, temperature float64) *SectionInstructionStrategy {
	return &SectionInstructionStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "section-instruction"),
	}
}

// Kind implements Strategy.
func (s *SectionInstructionStrategy) Kind() core.Kind { return core.KindInstruction }

// Process implements Strategy.
func (s *SectionInstructionStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	section, ok := item.(*core.DocumentSection)
	if !ok || len(section.Content) == 0 {
		return nil, nil
	}

	result, err := s.generator.GenerateObject(ctx, instructionPrompt(section), s.temperature)
	if err != nil {
		return nil, err
	}

	source := sectionProvenance(section)

	var records []core.SemanticRecord
	for _, entry := range objectsField(result, "instructions") {
		content := stringField(entry, "content")
		if content == "" {
			continue
		}
		records = append(records, core.SemanticRecord{
			Kind:     core.KindInstruction,
			Content:  content,
			Keywords: stringsField(entry, "keywords"),
			Source:   source,
		})
	}

	return records, nil
}

// SectionReferenceStrategy extracts external references from a document
// section: links, API mentions, code pointers and document citations.
type SectionReferenceStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewSectionReferenceStrategy creates a reference extraction strategy for
// document sections.
func NewSectionReferenceStrategy(generator ai.TextGenerator, temperature float64) *SectionReferenceStrategy {
	return &SectionReferenceStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "section-reference"),
	}
}

// Kind implements Strategy.
func (s *SectionReferenceStrategy) Kind() core.Kind { return core.KindReference }

// Process implements Strategy.
func (s *SectionReferenceStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	section, ok := item.(*core.DocumentSection)
	if !ok || len(section.Content) == 0 {
		return nil, nil
	}

	result, err := s.generator.GenerateObject(ctx, referencePrompt(section), s.temperature)
	if err != nil {
		return nil, err
	}

	source := sectionProvenance(section)

	var records []core.SemanticRecord
	for _, entry := range objectsField(result, "references") {
		content := stringField(entry, "content")
		if content == "" {
			continue
		}
		referenceKind := stringField(entry, "reference_type")
		if referenceKind == "" {
			referenceKind = "link"
		}
		records = append(records, core.SemanticRecord{
			Kind:          core.KindReference,
			Content:       content,
			ReferenceKind: referenceKind,
			Keywords:      stringsField(entry, "keywords"),
			Source:        source,
		})
	}

	return records, nil
}

// SectionGlossaryStrategy extracts glossary term definitions from a
// document section.
type SectionGlossaryStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewSectionGlossaryStrategy creates a glossary extraction strategy for
// document sections.
func NewSectionGlossaryStrategy(generator ai.TextGenerator, temperature float64) *SectionGlossaryStrategy {
	return &SectionGlossaryStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "section-glossary"),
	}
}

// Kind implements Strategy.
func (s *SectionGlossaryStrategy) Kind() core.Kind { return core.KindGlossary }

// Process implements Strategy. The same length and marker gate as the
// thread variant applies.
func (s *SectionGlossaryStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	section, ok := item.(*core.DocumentSection)
	if !ok || len(section.Content) == 0 {
		return nil, nil
	}

	text := section.Text()
	if len(text) < minGlossaryInput && !looksDefinitional(text) {
		return nil, nil
	}

	result, err := s.generator.GenerateObject(ctx, glossaryPrompt(text), s.temperature)
	if err != nil {
		return nil, err
	}

	return glossaryRecords(result, sectionProvenance(section)), nil
}
