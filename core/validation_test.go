package core

import (
	"errors"
	"testing"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *SemanticRecord
		wantErr error
	}{
		{
			name: "valid qna",
			record: &SemanticRecord{
				Kind:     KindQnA,
				Question: "How do we deploy to staging?",
				Answer:   "Run the deploy workflow with the staging target.",
			},
		},
		{
			name:    "qna missing question",
			record:  &SemanticRecord{Kind: KindQnA, Answer: "yes"},
			wantErr: ErrEmptyQuestion,
		},
		{
			name:    "qna missing answer",
			record:  &SemanticRecord{Kind: KindQnA, Question: "why?"},
			wantErr: ErrEmptyAnswer,
		},
		{
			name:   "valid insight",
			record: &SemanticRecord{Kind: KindInsight, Content: "retries mask the real failure"},
		},
		{
			name:    "insight missing content",
			record:  &SemanticRecord{Kind: KindInsight},
			wantErr: ErrEmptyContent,
		},
		{
			name: "valid glossary",
			record: &SemanticRecord{
				Kind:       KindGlossary,
				Term:       "ROAS",
				Definition: "return on ad spend",
				Confidence: ConfidenceHigh,
			},
		},
		{
			name: "glossary missing term",
			record: &SemanticRecord{
				Kind:       KindGlossary,
				Definition: "something",
				Confidence: ConfidenceHigh,
			},
			wantErr: ErrEmptyTerm,
		},
		{
			name: "glossary low confidence without review flag",
			record: &SemanticRecord{
				Kind:       KindGlossary,
				Term:       "AM meeting",
				Confidence: ConfidenceLow,
			},
			wantErr: ErrReviewNotFlagged,
		},
		{
			name: "glossary low confidence with review flag",
			record: &SemanticRecord{
				Kind:        KindGlossary,
				Term:        "AM meeting",
				Confidence:  ConfidenceLow,
				NeedsReview: true,
			},
		},
		{
			name:    "unknown kind",
			record:  &SemanticRecord{Kind: Kind(42), Content: "x"},
			wantErr: ErrInvalidKind,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilterValid(t *testing.T) {
	records := []SemanticRecord{
		{Kind: KindQnA, Question: "q", Answer: "a"},
		{Kind: KindQnA, Question: "", Answer: "a"}, // dropped
		{Kind: KindGlossary, Term: "", Confidence: ConfidenceHigh},          // dropped
		{Kind: KindGlossary, Term: "TDD", Confidence: ConfidenceLow},        // kept, normalized
		{Kind: KindInsight, Content: "insight"},
	}

	valid := FilterValid(records)
	if len(valid) != 3 {
		t.Fatalf("FilterValid() kept %d records, want 3", len(valid))
	}

	for _, r := range valid {
		if r.Kind == KindGlossary && r.Confidence == ConfidenceLow && !r.NeedsReview {
			t.Errorf("FilterValid() did not normalize low-confidence glossary record")
		}
	}
}
