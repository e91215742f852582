package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is either a content-based hash (raw item fingerprints) or a
// database-assigned surrogate (persisted semantic records).
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Kind identifies the type of a semantic record.
// The set is closed; extraction strategies are registered per Kind so
// adding a new kind is a compile-time change, not a string lookup.
type Kind int

const (
	// KindQnA is a refined question/answer pair.
	KindQnA Kind = iota + 1
	// KindInsight is a noteworthy observation extracted from a discussion.
	KindInsight
	// KindFeedback is feedback given by a participant.
	KindFeedback
	// KindReference is a pointer to external material (link, code, doc).
	KindReference
	// KindInstruction is a step-by-step work instruction.
	KindInstruction
	// KindGlossary is a term definition.
	KindGlossary
)

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindQnA:
		return "qna"
	case KindInsight:
		return "insight"
	case KindFeedback:
		return "feedback"
	case KindReference:
		return "reference"
	case KindInstruction:
		return "instruction"
	case KindGlossary:
		return "glossary"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "qna":
		return KindQnA, nil
	case "insight":
		return KindInsight, nil
	case "feedback":
		return KindFeedback, nil
	case "reference":
		return KindReference, nil
	case "instruction":
		return KindInstruction, nil
	case "glossary":
		return KindGlossary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Confidence is an ordinal estimate of how trustworthy an extracted
// definition is. Comparison uses the integer order Low < Medium < High,
// never the lexical order of the names.
type Confidence int

const (
	ConfidenceLow Confidence = iota + 1
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the canonical lowercase name of the confidence level.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	}
	return fmt.Sprintf("confidence(%d)", int(c))
}

// ParseConfidence converts a confidence name into a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	switch s {
	case "low":
		return ConfidenceLow, nil
	case "medium":
		return ConfidenceMedium, nil
	case "high":
		return ConfidenceHigh, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidConfidence, s)
}

// Origin identifies where a raw item came from.
type Origin int

const (
	// OriginThread is a conversation thread from a chat service.
	OriginThread Origin = iota + 1
	// OriginDocumentSection is a titled section of a wiki-style document.
	OriginDocumentSection
)

// String returns the canonical name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginThread:
		return "thread"
	case OriginDocumentSection:
		return "document_section"
	}
	return fmt.Sprintf("origin(%d)", int(o))
}

// ParseOrigin converts an origin name into an Origin.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "thread":
		return OriginThread, nil
	case "document_section":
		return OriginDocumentSection, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOrigin, s)
}

// Provenance is the traceable origin metadata attached to a semantic record.
// It is used for traceability and filtering only, never for ownership.
type Provenance struct {
	Origin        Origin
	Channel       string
	ThreadID      string
	DocumentID    string
	DocumentTitle string
	SectionTitle  string
	Questioner    string
	Answerer      string
	Permalink     string
}

// SemanticRecord is a typed, structured fact extracted from raw
// conversational or document data. Kind selects which payload fields are
// meaningful; the remaining fields stay zero-valued.
type SemanticRecord struct {
	Id   ID
	Kind Kind

	// QnA payload
	Question string
	Answer   string

	// Insight / Feedback / Instruction / Reference payload
	Content       string
	ReferenceKind string // reference only: link, code, api, doc

	// Glossary payload
	Term                   string
	Definition             string
	TermCategory           string // service, development, design, marketing, etc
	Confidence             Confidence
	NeedsReview            bool
	AlternativeDefinitions []string
	DomainHints            []string

	Keywords []string
	Source   Provenance

	// CreatedAt is assigned at persistence time, monotonically
	// non-decreasing per store instance.
	CreatedAt time.Time
}

// Normalize enforces derived-field invariants on the record.
// A low-confidence glossary entry always needs review.
func (r *SemanticRecord) Normalize() {
	if r.Kind == KindGlossary && r.Confidence == ConfidenceLow {
		r.NeedsReview = true
	}
}

// LedgerEntry records that a raw item has been through extraction.
// Re-runs over the same source data consult the ledger to skip items.
type LedgerEntry struct {
	Fingerprint ID
	Origin      Origin
	RecordCount int
	ProcessedAt time.Time
}
