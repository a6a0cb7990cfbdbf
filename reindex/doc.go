// Package reindex provides functionality for rebuilding the chunks and
// embeddings of stored procurement notices, typically after switching to a
// new embedding model or changing the chunking configuration.
//
// This package supports batch processing of notices, progress tracking,
// retry logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search.
package reindex
