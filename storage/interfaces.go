package storage

import (
	"context"
	"time"

	"github.com/poiesic/distill/core"
)

// Query narrows a retrieval over stored semantic records. Zero-valued
// fields are ignored. Keywords match any, case-insensitively.
type Query struct {
	Kind        core.Kind
	Keywords    []string
	Origin      core.Origin
	CreatedFrom time.Time
	CreatedTo   time.Time
}

// SemanticRepository persists semantic records and serves filtered
// retrieval over them.
type SemanticRepository interface {
	// StoreRecords persists the given records atomically and returns them
	// with identifiers and creation timestamps assigned.
	StoreRecords(ctx context.Context, records ...core.SemanticRecord) ([]core.SemanticRecord, error)

	// Retrieve returns records matching the query, newest first.
	Retrieve(ctx context.Context, query Query) ([]core.SemanticRecord, error)

	// Close releases the underlying store. Safe to call more than once.
	Close() error
}

// LedgerRepository records which raw items have already been extracted,
// keyed by content fingerprint.
type LedgerRepository interface {
	// MarkProcessed records that the item with the given fingerprint has
	// been extracted, producing recordCount records.
	MarkProcessed(ctx context.Context, entry core.LedgerEntry) error

	// LookupProcessed returns the ledger entry for a fingerprint, or
	// (nil, nil) when the item has not been processed.
	LookupProcessed(ctx context.Context, fingerprint core.ID) (*core.LedgerEntry, error)

	// Close releases the underlying store. Safe to call more than once.
	Close() error
}
