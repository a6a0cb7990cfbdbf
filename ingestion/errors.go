package ingestion

import "errors"

var (
	// ErrNoticeRepositoryRequired is returned when a notice repository is not provided.
	ErrNoticeRepositoryRequired = errors.New("notice repository required")

	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrChunkerRequired is returned when a nil chunker is supplied.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
