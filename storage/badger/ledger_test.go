package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

func newTestLedger(t *testing.T) storage.LedgerRepository {
	t.Helper()
	ledger, err := NewMemoryLedger()
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestLedger_MarkAndLookup(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	fingerprint := core.IDFromContent("thread-1 contents")
	entry := core.LedgerEntry{
		Fingerprint: fingerprint,
		Origin:      core.OriginThread,
		RecordCount: 3,
		ProcessedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	require.NoError(t, ledger.MarkProcessed(ctx, entry))

	got, err := ledger.LookupProcessed(ctx, fingerprint)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Fingerprint, got.Fingerprint)
	assert.Equal(t, entry.Origin, got.Origin)
	assert.Equal(t, entry.RecordCount, got.RecordCount)
	assert.Equal(t, entry.ProcessedAt, got.ProcessedAt)
}

func TestLedger_LookupMissing(t *testing.T) {
	ledger := newTestLedger(t)

	got, err := ledger.LookupProcessed(context.Background(), core.IDFromContent("never processed"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLedger_MarkOverwrites(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	fingerprint := core.IDFromContent("section-7")
	first := core.LedgerEntry{Fingerprint: fingerprint, Origin: core.OriginDocumentSection, RecordCount: 1}
	second := core.LedgerEntry{Fingerprint: fingerprint, Origin: core.OriginDocumentSection, RecordCount: 5}

	require.NoError(t, ledger.MarkProcessed(ctx, first))
	require.NoError(t, ledger.MarkProcessed(ctx, second))

	got, err := ledger.LookupProcessed(ctx, fingerprint)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.RecordCount)
	assert.False(t, got.ProcessedAt.IsZero(), "missing timestamp is filled in on mark")
}

func TestLedger_DistinctFingerprintsDoNotCollide(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	first := core.IDFromContent("thread-1 contents")
	second := core.IDFromContent("thread-2 contents")

	require.NoError(t, ledger.MarkProcessed(ctx, core.LedgerEntry{Fingerprint: first, Origin: core.OriginThread, RecordCount: 1}))
	require.NoError(t, ledger.MarkProcessed(ctx, core.LedgerEntry{Fingerprint: second, Origin: core.OriginThread, RecordCount: 2}))

	got, err := ledger.LookupProcessed(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.RecordCount)

	got, err = ledger.LookupProcessed(ctx, second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.RecordCount)
}

func TestLedger_CloseTwice(t *testing.T) {
	ledger, err := NewMemoryLedger()
	require.NoError(t, err)

	require.NoError(t, ledger.Close())
	require.NoError(t, ledger.Close())
}

func TestLedger_FileBacked(t *testing.T) {
	path := t.TempDir()

	ledger, err := NewLedger(path)
	require.NoError(t, err)

	fingerprint := core.IDFromContent("durable item")
	require.NoError(t, ledger.MarkProcessed(context.Background(), core.LedgerEntry{
		Fingerprint: fingerprint,
		Origin:      core.OriginThread,
		RecordCount: 2,
	}))
	require.NoError(t, ledger.Close())

	ledger, err = NewLedger(path)
	require.NoError(t, err)
	defer ledger.Close()

	got, err := ledger.LookupProcessed(context.Background(), fingerprint)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.RecordCount)
}
