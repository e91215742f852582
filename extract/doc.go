// Package extract converts raw conversation threads and document sections
// into typed semantic records using a text generation service.
//
// Each record kind is produced by a Strategy; strategies are grouped by
// input origin in a Registry, and the Extractor runs a whole batch
// through the registered strategies with progress reporting and optional
// ledger-based deduplication. Strategy failures on individual items are
// logged but do not fail the batch.
package extract
