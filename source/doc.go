// Package source bridges upstream raw data providers into the extraction
// pipeline.
//
// Providers expose blocking fetch calls of unknown latency; the Bridge
// runs them on a bounded worker pool with a per-call timeout so a stuck
// provider surfaces as ErrFetchTimeout instead of hanging a batch.
// RetryWithBackoff is available for callers that want a retry policy
// around fetches.
package source
