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

// ThreadQnAStrategy refines the first two messages of a conversation
// thread into a documented question/answer pair. The text service decides
// whether the exchange is worth documenting; a negative verdict yields no
// record.
type ThreadQnAStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewThreadQnAStrategy creates a QnA extraction strategy for threads.
func NewThreadQnAStrategy(generator ai.TextGenerator, temperature float64) *ThreadQnAStrategy {
	return &ThreadQnAStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "thread-qna"),
	}
}

// Kind implements Strategy.
func (s *ThreadQnAStrategy) Kind() core.Kind { return core.KindQnA }

// Process implements Strategy. Threads with fewer than two messages cannot
// hold a question and an answer and are skipped without a service call.
func (s *ThreadQnAStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	thread, ok := item.(*core.Thread)
	if !ok {
		return nil, nil
	}
	if len(thread.Messages) < 2 {
		return nil, nil
	}

	question := thread.Messages[0]
	answer := thread.Messages[1]

	result, err := s.generator.GenerateObject(ctx, qnaPrompt(question.Text, answer.Text), s.temperature)
	if err != nil {
		return nil, err
	}

	if !boolField(result, "is_valuable") {
		return nil, nil
	}

	record := core.SemanticRecord{
		Kind:     core.KindQnA,
		Question: stringField(result, "question"),
		Answer:   stringField(result, "answer"),
		Keywords: stringsField(result, "keywords"),
		Source: core.Provenance{
			Origin:     core.OriginThread,
			Channel:    thread.Channel,
			ThreadID:   thread.ThreadID,
			Questioner: question.Author,
			Answerer:   answer.Author,
			Permalink:  question.Permalink,
		},
	}

	// An empty refined question or answer fails the QnA invariant; the
	// exchange is dropped, not partially emitted.
	if err := core.ValidateRecord(&record); err != nil {
		s.logger.Debug("dropping invalid qna", "err", err)
		return nil, nil
	}

	return []core.SemanticRecord{record}, nil
}

// ThreadInsightStrategy extracts insights, feedback and inline references
// from the full body of a conversation thread.
type ThreadInsightStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewThreadInsightStrategy creates an insight extraction strategy for threads.
func NewThreadInsightStrategy(generator ai.TextGenerator, temperature float64) *ThreadInsightStrategy {
	return &ThreadInsightStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "thread-insight"),
	}
}

// Kind implements Strategy.
func (s *ThreadInsightStrategy) Kind() core.Kind { return core.KindInsight }

// Process implements Strategy.
func (s *ThreadInsightStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	thread, ok := item.(*core.Thread)
	if !ok || len(thread.Messages) == 0 {
		return nil, nil
	}

	result, err := s.generator.GenerateObject(ctx, threadInsightPrompt(thread), s.temperature)
	if err != nil {
		return nil, err
	}

	source := core.Provenance{
		Origin:   core.OriginThread,
		Channel:  thread.Channel,
		ThreadID: thread.ThreadID,
	}

	var records []core.SemanticRecord
	for _, entry := range objectsField(result, "insights") {
		record := insightRecord(entry, source, true)
		if record.Content == "" {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// insightRecord converts one entry of an "insights" response into a
// record. Unknown type labels default to insight; reference entries are
// only produced when allowReferences is set (document sections route
// references through their own strategy).
func insightRecord(entry map[string]any, source core.Provenance, allowReferences bool) core.SemanticRecord {
	record := core.SemanticRecord{
		Kind:     core.KindInsight,
		Content:  stringField(entry, "content"),
		Keywords: stringsField(entry, "keywords"),
		Source:   source,
	}

	switch stringField(entry, "type") {
	case "feedback":
		record.Kind = core.KindFeedback
	case "reference":
		if allowReferences {
			record.Kind = core.KindReference
			record.ReferenceKind = stringField(entry, "reference_type")
			if record.ReferenceKind == "" {
				record.ReferenceKind = "link"
			}
		}
	}

	return record
}

// ThreadGlossaryStrategy extracts glossary term definitions from a
// conversation thread.
type ThreadGlossaryStrategy struct {
	generator   ai.TextGenerator
	temperature float64
	logger      *slog.Logger
}

// NewThreadGlossaryStrategy creates a glossary extraction strategy for threads.
func NewThreadGlossaryStrategy(generator ai.TextGenerator, temperature float64) *ThreadGlossaryStrategy {
	return &ThreadGlossaryStrategy{
		generator:   generator,
		temperature: temperature,
		logger:      slog.Default().With("component", "thread-glossary"),
	}
}

// Kind implements Strategy.
func (s *ThreadGlossaryStrategy) Kind() core.Kind { return core.KindGlossary }

// Process implements Strategy. Short threads that carry no definitional
// language are skipped without a service call; the check is a cost
// optimization, not a correctness gate.
func (s *ThreadGlossaryStrategy) Process(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, error) {
	thread, ok := item.(*core.Thread)
	if !ok || len(thread.Messages) == 0 {
		return nil, nil
	}

	text := thread.Text()
	if len(text) < minGlossaryInput && !looksDefinitional(text) {
		return nil, nil
	}

	result, err := s.generator.GenerateObject(ctx, glossaryPrompt(text), s.temperature)
	if err != nil {
		return nil, err
	}

	source := core.Provenance{
		Origin:   core.OriginThread,
		Channel:  thread.Channel,
		ThreadID: thread.ThreadID,
	}

	return glossaryRecords(result, source), nil
}

// minGlossaryInput is the minimum text length, in bytes, below which a
// non-definitional item is assumed to contain no glossary terms.
const minGlossaryInput = 40

// glossaryRecords converts a "terms" response into glossary records.
// Entries without a term are dropped; unparseable confidence defaults to
// low, which forces the review flag.
func glossaryRecords(result map[string]any, source core.Provenance) []core.SemanticRecord {
	var records []core.SemanticRecord
	for _, entry := range objectsField(result, "terms") {
		term := stringField(entry, "term")
		if term == "" {
			continue
		}

		confidence, err := core.ParseConfidence(stringField(entry, "confidence"))
		if err != nil {
			confidence = core.ConfidenceLow
		}

		record := core.SemanticRecord{
			Kind:         core.KindGlossary,
			Term:         term,
			Definition:   stringField(entry, "definition"),
			TermCategory: stringField(entry, "category"),
			Confidence:   confidence,
			NeedsReview:  boolField(entry, "needs_review"),
			DomainHints:  stringsField(entry, "domain_hints"),
			Keywords:     stringsField(entry, "keywords"),
			Source:       source,
		}
		record.Normalize()
		records = append(records, record)
	}
	return records
}
