// Package enhance improves low-confidence glossary records with a second
// pass through the text generation service.
//
// The Enhancer partitions a batch's glossary records into trusted and
// under-review sets, asks the service to re-derive the weak definitions
// in one aggregated call, and merges the results. A definition is only
// replaced when the review is strictly more confident; everything else is
// preserved and flagged.
package enhance
