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


package core

import "fmt"

// ValidateRecord validates a SemanticRecord according to domain rules.
// Records failing validation are dropped before persistence; a strategy
// must never emit an invalid record.
//
// Validation rules:
//   - Kind must be one of the closed enumeration
//   - QnA requires a non-empty question and answer
//   - Insight/Feedback/Instruction/Reference require non-empty content
//   - Glossary requires a non-empty term, a valid confidence, and
//     needs_review set whenever confidence is low
//
// NOT validated (populated by the store):
//   - Id (0 until the store assigns a surrogate)
//   - CreatedAt (zero until persistence)
func ValidateRecord(record *SemanticRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	switch record.Kind {
	case KindQnA:
		if record.Question == "" {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyQuestion)
		}
		if record.Answer == "" {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyAnswer)
		}
	case KindInsight, KindFeedback, KindInstruction, KindReference:
		if record.Content == "" {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyContent)
		}
	case KindGlossary:
		if record.Term == "" {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTerm)
		}
		if record.Confidence < ConfidenceLow || record.Confidence > ConfidenceHigh {
			return fmt.Errorf("%w: %w: %d", ErrInvalidRecord, ErrInvalidConfidence, record.Confidence)
		}
		if record.Confidence == ConfidenceLow && !record.NeedsReview {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrReviewNotFlagged)
		}
	default:
		return fmt.Errorf("%w: %w: %d", ErrInvalidRecord, ErrInvalidKind, record.Kind)
	}

	return nil
}

// FilterValid normalizes each record and drops the ones failing
// validation, returning the survivors. A dropped record never reaches the
// store.
func FilterValid(records []SemanticRecord) []SemanticRecord {
	valid := records[:0]
	for _, r := range records {
		r.Normalize()
		if err := ValidateRecord(&r); err == nil {
			valid = append(valid, r)
		}
	}
	return valid
}
