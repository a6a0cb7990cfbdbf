package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

// Pipeline orchestrates the ingestion and processing of procurement notices.
// It manages concurrent chunking and embedding of stored notices.
type Pipeline struct {
	noticeRepository storage.NoticeRepository
	chunkRepository  storage.ChunkRepository
	chunker          *chunk.Chunker
	pool             *ants.Pool
	chunkingProc     processor
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithChunker sets a custom chunker.
// Default is a chunker with default sizing.
func WithChunker(chunker *chunk.Chunker) Option {
	return func(p *Pipeline) error {
		if chunker == nil {
			return ErrChunkerRequired
		}
		p.chunker = chunker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	noticeRepository storage.NoticeRepository,
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if noticeRepository == nil {
		return nil, ErrNoticeRepositoryRequired
	}
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	logger := slog.Default()

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	chunker, err := chunk.NewChunker()
	if err != nil {
		pool.Release()
		return nil, err
	}

	p := &Pipeline{
		noticeRepository: noticeRepository,
		chunkRepository:  chunkRepository,
		chunker:          chunker,
		pool:             pool,
		logger:           logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied (so it gets final config)
	chunkingProc, err := newChunkingProcessor(noticeRepository, chunkRepository,
		p.chunker, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.chunkingProc = chunkingProc

	return p, nil
}

// Index stores the notices and processes them asynchronously. Processing
// chunks each notice by section and embeds the chunks. Errors during async
// processing are logged but do not fail the indexing.
//
// Notices sharing a record identifier with a stored notice overwrite it and
// their chunk sets are rebuilt.
func (p *Pipeline) Index(ctx context.Context, notices ...*core.Notice) ([]*core.Notice, error) {
	added, err := p.noticeRepository.AddNotices(ctx, notices...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, notice := range added {
		ids[i] = notice.Id
	}

	p.pool.Submit(func() {
		if err := p.chunkingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing notices", "err", err)
		}
	})

	return added, nil
}

// IndexSync stores the notices and processes them before returning. Useful
// for batch imports and tests where completion must be observable.
func (p *Pipeline) IndexSync(ctx context.Context, notices ...*core.Notice) ([]*core.Notice, error) {
	added, err := p.noticeRepository.AddNotices(ctx, notices...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, notice := range added {
		ids[i] = notice.Id
	}

	if err := p.chunkingProc.process(ctx, ids...); err != nil {
		return nil, err
	}

	return added, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
