package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/tenderit/ai/mock"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
	"github.com/poiesic/tenderit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.NoticeRepository, storage.ChunkRepository) {
	t.Helper()
	noticeRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		noticeRepo.Close()
		chunkRepo.Close()
		backend.Close()
	})

	pipeline, err := NewPipeline(noticeRepo, chunkRepo, mock.NewMockProvider(), opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, noticeRepo, chunkRepo
}

func sampleNotice(recordID string) *core.Notice {
	return &core.Notice{
		RecordID:    recordID,
		Title:       "Supply of network routers",
		Description: "Core and edge routers for municipal data centers, including installation and three years of support.",
		Buyer:       "City of Rotterdam",
		CPVCodes:    []string{"32420000"},
		NUTSRegions: []string{"NL33C"},
		Budget:      900000,
		Currency:    "EUR",
		Deadline:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewPipeline_Validation(t *testing.T) {
	noticeRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	provider := mock.NewMockProvider()

	_, err = NewPipeline(nil, chunkRepo, provider)
	assert.ErrorIs(t, err, ErrNoticeRepositoryRequired)

	_, err = NewPipeline(noticeRepo, nil, provider)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewPipeline(noticeRepo, chunkRepo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)

	_, err = NewPipeline(noticeRepo, chunkRepo, provider, WithChunker(nil))
	assert.ErrorIs(t, err, ErrChunkerRequired)
}

func TestIndexSync_ChunksAndEmbeds(t *testing.T) {
	pipeline, _, chunkRepo := setupPipeline(t)
	ctx := context.Background()

	added, err := pipeline.IndexSync(ctx, sampleNotice("TED-2025-000100"))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.NotZero(t, added[0].Id)

	chunks, err := chunkRepo.GetChunksByNotice(ctx, added[0].Id)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.Equal(t, added[0].Id, c.NoticeID)
		assert.Equal(t, "TED-2025-000100", c.RecordID)
		assert.NotEmpty(t, c.Text)
		assert.NotEmpty(t, c.Vector)
	}
}

func TestIndexSync_OverwriteRebuildsChunks(t *testing.T) {
	pipeline, noticeRepo, chunkRepo := setupPipeline(t)
	ctx := context.Background()

	added, err := pipeline.IndexSync(ctx, sampleNotice("TED-2025-000100"))
	require.NoError(t, err)

	before, err := chunkRepo.CountChunks(ctx)
	require.NoError(t, err)
	require.Positive(t, before)

	// Same record with a shorter body produces a fresh, smaller chunk set.
	updated := sampleNotice("TED-2025-000100")
	updated.Description = "Edge routers only."
	_, err = pipeline.IndexSync(ctx, updated)
	require.NoError(t, err)

	count, err := noticeRepo.CountNotices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	chunks, err := chunkRepo.GetChunksByNotice(ctx, added[0].Id)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.NotContains(t, c.Text, "data centers")
	}
}

func TestIndexSync_InvalidNotice(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	_, err := pipeline.IndexSync(context.Background(), &core.Notice{Title: "no record id"})
	assert.ErrorIs(t, err, core.ErrEmptyRecordID)
}

func TestIndexSync_EmbedderFailure(t *testing.T) {
	noticeRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, assert.AnError
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockChatModel())

	pipeline, err := NewPipeline(noticeRepo, chunkRepo, provider)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	_, err = pipeline.IndexSync(context.Background(), sampleNotice("TED-2025-000100"))
	assert.Error(t, err)
}

func TestIndex_Async(t *testing.T) {
	pipeline, _, chunkRepo := setupPipeline(t, WithPoolSize(2))
	ctx := context.Background()

	added, err := pipeline.Index(ctx, sampleNotice("TED-2025-000100"), sampleNotice("TED-2025-000101"))
	require.NoError(t, err)
	require.Len(t, added, 2)

	assert.Eventually(t, func() bool {
		count, err := chunkRepo.CountChunks(ctx)
		return err == nil && count > 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestIndex_NoNotices(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	added, err := pipeline.Index(context.Background(), []*core.Notice{}...)
	require.NoError(t, err)
	assert.Empty(t, added)
}
