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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a SemanticRecord failed validation.
	ErrInvalidRecord = errors.New("invalid semantic record")

	// ErrInvalidKind indicates an unknown record kind value or name.
	ErrInvalidKind = errors.New("invalid record kind")

	// ErrInvalidConfidence indicates an unknown confidence value or name.
	ErrInvalidConfidence = errors.New("invalid confidence")

	// ErrInvalidOrigin indicates an unknown origin value or name.
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrEmptyQuestion indicates a QnA record with an empty question.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyAnswer indicates a QnA record with an empty answer.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrEmptyContent indicates an empty content field.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyTerm indicates a glossary record with an empty term.
	ErrEmptyTerm = errors.New("term cannot be empty")

	// ErrReviewNotFlagged indicates a low-confidence glossary record
	// without the needs-review flag set.
	ErrReviewNotFlagged = errors.New("low confidence requires needs_review")
)
