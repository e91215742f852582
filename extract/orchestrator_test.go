package extract

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/distill/ai/mock"
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

// memoryLedger is a map-backed LedgerRepository for orchestrator tests.
type memoryLedger struct {
	mu      sync.Mutex
	entries map[core.ID]core.LedgerEntry
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{entries: make(map[core.ID]core.LedgerEntry)}
}

func (l *memoryLedger) MarkProcessed(ctx context.Context, entry core.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[entry.Fingerprint] = entry
	return nil
}

func (l *memoryLedger) LookupProcessed(ctx context.Context, fingerprint core.ID) (*core.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[fingerprint]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (l *memoryLedger) Close() error { return nil }

var _ storage.LedgerRepository = (*memoryLedger)(nil)

func qnaOnlyRegistry(generator *mock.MockTextGenerator) *Registry {
	registry := NewRegistry()
	registry.Register(core.OriginThread, NewThreadQnAStrategy(generator, 0.3))
	return registry
}

func valuableQnA(ctx context.Context, prompt string, temperature float64) (map[string]any, error) {
	return map[string]any{
		"is_valuable": true,
		"question":    "What is the question?",
		"answer":      "This is the answer.",
	}, nil
}

func threadBatch(n int) []core.RawItem {
	items := make([]core.RawItem, 0, n)
	for i := range n {
		items = append(items, &core.Thread{
			Channel:  "general",
			ThreadID: "174000000" + string(rune('0'+i)),
			Messages: []core.Message{
				{Text: "question " + string(rune('a'+i)), Author: "U1"},
				{Text: "answer " + string(rune('a'+i)), Author: "U2"},
			},
		})
	}
	return items
}

func TestExtractor_ProgressSequence(t *testing.T) {
	generator := mock.NewTextGenerator()
	generator.GenerateObjectFunc = valuableQnA

	items := threadBatch(3)
	// Make the middle thread too short to produce anything.
	items[1] = &core.Thread{
		Channel:  "general",
		ThreadID: "1740000009",
		Messages: []core.Message{{Text: "solo", Author: "U1"}},
	}

	var calls [][2]int
	extractor := NewExtractor(qnaOnlyRegistry(generator))
	records, err := extractor.Extract(context.Background(), items, func(current, total int) {
		calls = append(calls, [2]int{current, total})
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}}, calls)
	assert.Len(t, records, 2)
}

func TestExtractor_EmptyBatch(t *testing.T) {
	generator := mock.NewTextGenerator()

	var calls [][2]int
	extractor := NewExtractor(qnaOnlyRegistry(generator))
	records, err := extractor.Extract(context.Background(), nil, func(current, total int) {
		calls = append(calls, [2]int{current, total})
	})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, [][2]int{{0, 0}}, calls)
	assert.Equal(t, 0, generator.CallCount())
}

func TestExtractor_NilProgress(t *testing.T) {
	generator := mock.NewTextGenerator()
	generator.GenerateObjectFunc = valuableQnA

	extractor := NewExtractor(qnaOnlyRegistry(generator))
	records, err := extractor.Extract(context.Background(), threadBatch(2), nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtractor_StrategyErrorDoesNotAbortBatch(t *testing.T) {
	generator := mock.NewTextGenerator()
	call := 0
	generator.GenerateObjectFunc = func(ctx context.Context, prompt string, temperature float64) (map[string]any, error) {
		call++
		if call == 2 {
			return nil, context.DeadlineExceeded
		}
		return valuableQnA(ctx, prompt, temperature)
	}

	extractor := NewExtractor(qnaOnlyRegistry(generator))
	records, err := extractor.Extract(context.Background(), threadBatch(3), nil)
	require.NoError(t, err)
	assert.Len(t, records, 2, "failure on one item must not drop the others")
}

func TestExtractor_Cancellation(t *testing.T) {
	generator := mock.NewTextGenerator()
	ctx, cancel := context.WithCancel(context.Background())
	call := 0
	generator.GenerateObjectFunc = func(ctx context.Context, prompt string, temperature float64) (map[string]any, error) {
		call++
		if call == 1 {
			// First item completes, then the batch is cancelled.
			defer cancel()
		}
		return valuableQnA(ctx, prompt, temperature)
	}

	extractor := NewExtractor(qnaOnlyRegistry(generator))
	records, err := extractor.Extract(ctx, threadBatch(3), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, records, 1, "only fully processed items contribute records")
	assert.Equal(t, 1, generator.CallCount())
}

func TestExtractor_ProgressPanicRecovered(t *testing.T) {
	generator := mock.NewTextGenerator()
	generator.GenerateObjectFunc = valuableQnA

	extractor := NewExtractor(qnaOnlyRegistry(generator))
	records, err := extractor.Extract(context.Background(), threadBatch(2), func(current, total int) {
		panic("observer bug")
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtractor_LedgerSkipsProcessedItems(t *testing.T) {
	generator := mock.NewTextGenerator()
	generator.GenerateObjectFunc = valuableQnA

	ledger := newMemoryLedger()
	extractor := NewExtractor(qnaOnlyRegistry(generator), WithLedger(ledger))

	items := threadBatch(3)
	records, err := extractor.Extract(context.Background(), items, nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, generator.CallCount())

	entry, err := ledger.LookupProcessed(context.Background(), items[0].Fingerprint())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.RecordCount)
	assert.Equal(t, core.OriginThread, entry.Origin)
	assert.WithinDuration(t, time.Now().UTC(), entry.ProcessedAt, time.Minute)

	// Second run over the same batch does no work but still reports
	// full progress.
	var calls [][2]int
	records, err = extractor.Extract(context.Background(), items, func(current, total int) {
		calls = append(calls, [2]int{current, total})
	})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 3, generator.CallCount(), "processed items must be skipped")
	assert.Equal(t, [][2]int{{0, 3}, {1, 3}, {2, 3}, {3, 3}}, calls)
}

func TestExtractor_FailedItemNotMarkedProcessed(t *testing.T) {
	generator := mock.NewTextGenerator()
	generator.GenerateObjectFunc = func(ctx context.Context, prompt string, temperature float64) (map[string]any, error) {
		return nil, errors.New("service unavailable")
	}

	ledger := newMemoryLedger()
	extractor := NewExtractor(qnaOnlyRegistry(generator), WithLedger(ledger))

	items := threadBatch(1)
	records, err := extractor.Extract(context.Background(), items, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	entry, err := ledger.LookupProcessed(context.Background(), items[0].Fingerprint())
	require.NoError(t, err)
	assert.Nil(t, entry, "failed items stay eligible for reprocessing")
}
