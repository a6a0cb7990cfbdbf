// Package ingestion provides pipeline orchestration for indexing procurement
// notices.
//
// The Pipeline type manages the indexing workflow for notices, including:
//   - Adding notices to storage
//   - Splitting notices into section chunks
//   - Generating chunk embeddings asynchronously
//
// Processing is performed concurrently using a worker pool to maximize
// throughput. Errors during async processing are logged but do not fail the
// indexing operation. IndexSync performs the same work inline for callers
// that need completion to be observable.
package ingestion
