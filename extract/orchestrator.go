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
	"time"

	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/storage"
)

// Extractor runs every registered strategy over a batch of raw items and
// collects the resulting semantic records.
//
// Items are processed sequentially. A strategy failure on one item is
// logged and does not stop the batch; cancellation of the context does.
// When a ledger is configured, items whose fingerprint is already
// recorded are skipped, and successfully processed items are marked
// afterwards.
type Extractor struct {
	registry *Registry
	ledger   storage.LedgerRepository
	logger   *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLedger makes the extractor skip items already recorded in the
// ledger and record each item it completes.
func WithLedger(ledger storage.LedgerRepository) ExtractorOption {
	return func(e *Extractor) {
		e.ledger = ledger
	}
}

// WithLogger overrides the extractor's logger.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an extractor over the given strategy registry.
func NewExtractor(registry *Registry, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		registry: registry,
		logger:   slog.Default().With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes the batch and returns every valid record produced.
//
// progress, when non-nil, is called with (i, len(items)) before item i is
// processed and once more with (len(items), len(items)) after the last
// item, so an empty batch still yields a single (0, 0) call. A panicking
// callback is recovered and logged; it never aborts the batch.
//
// If the context is cancelled, records from fully processed items are
// returned along with the context error; the item in flight contributes
// nothing.
func (e *Extractor) Extract(ctx context.Context, items []core.RawItem, progress ProgressFunc) ([]core.SemanticRecord, error) {
	total := len(items)
	var collected []core.SemanticRecord

	for i, item := range items {
		e.notify(progress, i, total)

		if err := ctx.Err(); err != nil {
			return collected, err
		}

		if e.skipProcessed(ctx, item) {
			continue
		}

		records, complete := e.processItem(ctx, item)
		if err := ctx.Err(); err != nil {
			// A fully processed item keeps its records; one interrupted
			// mid-flight contributes nothing.
			if complete {
				collected = append(collected, records...)
			}
			return collected, err
		}
		collected = append(collected, records...)

		if complete {
			e.markProcessed(ctx, item, len(records))
		}
	}

	e.notify(progress, total, total)
	return collected, nil
}

// processItem runs every strategy registered for the item's origin. The
// boolean result reports whether all strategies completed, which gates
// the ledger mark.
func (e *Extractor) processItem(ctx context.Context, item core.RawItem) ([]core.SemanticRecord, bool) {
	var records []core.SemanticRecord
	complete := true

	for _, strategy := range e.registry.StrategiesFor(item.Origin()) {
		produced, err := strategy.Process(ctx, item)
		if err != nil {
			e.logger.Warn("strategy failed",
				"kind", strategy.Kind().String(),
				"origin", item.Origin().String(),
				"err", err)
			complete = false
			continue
		}
		records = append(records, produced...)
	}

	return core.FilterValid(records), complete
}

func (e *Extractor) skipProcessed(ctx context.Context, item core.RawItem) bool {
	if e.ledger == nil {
		return false
	}
	entry, err := e.ledger.LookupProcessed(ctx, item.Fingerprint())
	if err != nil {
		e.logger.Warn("ledger lookup failed", "err", err)
		return false
	}
	return entry != nil
}

func (e *Extractor) markProcessed(ctx context.Context, item core.RawItem, recordCount int) {
	if e.ledger == nil {
		return
	}
	entry := core.LedgerEntry{
		Fingerprint: item.Fingerprint(),
		Origin:      item.Origin(),
		RecordCount: recordCount,
		ProcessedAt: time.Now().UTC(),
	}
	if err := e.ledger.MarkProcessed(ctx, entry); err != nil {
		e.logger.Warn("ledger mark failed", "err", err)
	}
}

func (e *Extractor) notify(progress ProgressFunc, current, total int) {
	if progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("progress callback panicked", "panic", r)
		}
	}()
	progress(current, total)
}
