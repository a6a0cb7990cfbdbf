package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

// BatchProcessor rebuilds the chunk sets for batches of notices.
type BatchProcessor struct {
	notices        storage.NoticeRepository
	chunks         storage.ChunkRepository
	chunker        *chunk.Chunker
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(
	notices storage.NoticeRepository,
	chunks storage.ChunkRepository,
	chunker *chunk.Chunker,
	embedder ai.Embedder,
	maxRetries int,
	retryBaseDelay time.Duration,
) *BatchProcessor {
	return &BatchProcessor{
		notices:        notices,
		chunks:         chunks,
		chunker:        chunker,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process rebuilds and stores the chunk set for each notice in the batch.
// Vectors are normalized after embedding to ensure compatibility with cosine
// similarity.
func (bp *BatchProcessor) Process(ctx context.Context, ids []core.ID) error {
	for _, id := range ids {
		notice, err := bp.notices.GetNotice(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load notice %d: %w", id, err)
		}

		chunks := bp.chunker.ChunkNotice(notice)
		if len(chunks) == 0 {
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		// Generate embeddings with retry
		var embeddings [][]float32
		err = RetryWithBackoff(ctx, func() error {
			var err error
			embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
			return err
		}, bp.maxRetries, bp.retryBaseDelay)

		if err != nil {
			return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
		}

		if len(embeddings) != len(chunks) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
		}

		for i := range chunks {
			chunks[i].Vector = NormalizeVector(embeddings[i])
		}

		if err := bp.chunks.ReplaceChunks(ctx, id, chunks); err != nil {
			return fmt.Errorf("failed to replace chunks for notice %d: %w", id, err)
		}
	}

	return nil
}
