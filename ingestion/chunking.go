package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

// chunkingProcessor splits notices into section chunks and embeds them.
type chunkingProcessor struct {
	noticeRepository storage.NoticeRepository
	chunkRepository  storage.ChunkRepository
	chunker          *chunk.Chunker
	embedder         ai.Embedder
	logger           *slog.Logger
}

var _ processor = (*chunkingProcessor)(nil)

// newChunkingProcessor creates a new chunking processor.
func newChunkingProcessor(
	noticeRepository storage.NoticeRepository,
	chunkRepository storage.ChunkRepository,
	chunker *chunk.Chunker,
	embedder ai.Embedder,
	logger *slog.Logger,
) (processor, error) {
	if noticeRepository == nil {
		return nil, fmt.Errorf("notice repository required")
	}
	if chunkRepository == nil {
		return nil, fmt.Errorf("chunk repository required")
	}
	if chunker == nil {
		return nil, fmt.Errorf("chunker required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &chunkingProcessor{
		noticeRepository: noticeRepository,
		chunkRepository:  chunkRepository,
		chunker:          chunker,
		embedder:         embedder,
		logger:           logger.With("processor", "chunking"),
	}, nil
}

// process chunks and embeds the specified notices. Each notice's chunk set
// is replaced atomically, so reprocessing never leaves stale chunks behind.
func (cp *chunkingProcessor) process(ctx context.Context, ids ...core.ID) error {
	cp.logger.Info("processing notices for chunking", "notices", len(ids))

	slices.Sort(ids)

	for _, id := range ids {
		notice, err := cp.noticeRepository.GetNotice(ctx, id)
		if err != nil {
			cp.logger.Error("error retrieving notice", "notice", id, "err", err)
			return err
		}

		chunks := cp.chunker.ChunkNotice(notice)
		if len(chunks) == 0 {
			cp.logger.Warn("notice produced no chunks", "notice", id)
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		cp.logger.Debug("generating embeddings for notice chunks",
			"notice", id,
			"chunks", len(texts))
		embeddings, err := cp.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			cp.logger.Error("error generating embeddings", "notice", id, "err", err)
			return err
		}

		if len(embeddings) != len(chunks) {
			return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(embeddings))
		}

		for i := range embeddings {
			chunks[i].Vector = embeddings[i]
		}

		if err := cp.chunkRepository.ReplaceChunks(ctx, id, chunks); err != nil {
			cp.logger.Error("error storing chunks", "notice", id, "err", err)
			return err
		}
	}

	return nil
}
