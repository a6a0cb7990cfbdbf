package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupChunkRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	noticeRepo, chunkRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		noticeRepo.Close()
		chunkRepo.Close()
		backend.Close()
	})
	return chunkRepo
}

func sampleChunks(recordID string, noticeID core.ID, count int, vector []float32) []*core.Chunk {
	chunks := make([]*core.Chunk, 0, count)
	for i := 0; i < count; i++ {
		chunkID := core.MakeChunkID(recordID, core.SectionDescription, i)
		chunks = append(chunks, &core.Chunk{
			ChunkID:    chunkID,
			NoticeID:   noticeID,
			RecordID:   recordID,
			Section:    core.SectionDescription,
			ChunkIndex: i,
			Text:       fmt.Sprintf("part %d of the notice description", i),
			Vector:     vector,
		})
	}
	return chunks
}

func TestChunkRepository_ReplaceAndGet(t *testing.T) {
	repo := setupChunkRepo(t)
	ctx := context.Background()
	noticeID := core.IDFromContent("TED-2025-000010")

	chunks := sampleChunks("TED-2025-000010", noticeID, 3, nil)
	require.NoError(t, repo.ReplaceChunks(ctx, noticeID, chunks))

	got, err := repo.GetChunksByNotice(ctx, noticeID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.ChunkIndex, "chunking order preserved")
		assert.Equal(t, noticeID, chunk.NoticeID)
		assert.False(t, chunk.InsertedAt.IsZero())
	}

	single, err := repo.GetChunk(ctx, got[0].Id)
	require.NoError(t, err)
	assert.Equal(t, got[0].ChunkID, single.ChunkID)
}

func TestChunkRepository_ReplaceSupersedes(t *testing.T) {
	repo := setupChunkRepo(t)
	ctx := context.Background()
	noticeID := core.IDFromContent("TED-2025-000011")

	first := sampleChunks("TED-2025-000011", noticeID, 5, nil)
	require.NoError(t, repo.ReplaceChunks(ctx, noticeID, first))

	// Second generation is smaller; all five originals must be gone
	second := sampleChunks("TED-2025-000011", noticeID, 2, nil)
	second[0].Text = "rewritten part 0"
	second[1].Text = "rewritten part 1"
	require.NoError(t, repo.ReplaceChunks(ctx, noticeID, second))

	got, err := repo.GetChunksByNotice(ctx, noticeID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rewritten part 0", got[0].Text)

	count, err := repo.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestChunkRepository_ReplaceWithEmptyRemovesAll(t *testing.T) {
	repo := setupChunkRepo(t)
	ctx := context.Background()
	noticeID := core.IDFromContent("TED-2025-000012")

	require.NoError(t, repo.ReplaceChunks(ctx, noticeID, sampleChunks("TED-2025-000012", noticeID, 4, nil)))
	require.NoError(t, repo.ReplaceChunks(ctx, noticeID, nil))

	got, err := repo.GetChunksByNotice(ctx, noticeID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChunkRepository_ReplaceRejectsInvalid(t *testing.T) {
	repo := setupChunkRepo(t)
	ctx := context.Background()
	noticeID := core.IDFromContent("TED-2025-000013")

	err := repo.ReplaceChunks(ctx, noticeID, []*core.Chunk{{
		ChunkID: "TED-2025-000013_title_0",
		Section: core.SectionTitle,
	}})
	assert.ErrorIs(t, err, core.ErrEmptyChunkText)
}

func TestChunkRepository_GetChunk_NotFound(t *testing.T) {
	repo := setupChunkRepo(t)

	_, err := repo.GetChunk(context.Background(), core.ID(99999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestChunkRepository_FindSimilar(t *testing.T) {
	repo := setupChunkRepo(t)
	ctx := context.Background()

	// Normalized 2d vectors with known cosine similarities
	vectors := map[string][]float32{
		"TED-2025-000020": {1, 0},       // similarity 1.0
		"TED-2025-000021": {0.6, 0.8},   // similarity 0.6
		"TED-2025-000022": {0, 1},       // similarity 0.0
		"TED-2025-000023": {-1, 0},      // similarity -1.0
	}
	for recordID, vec := range vectors {
		noticeID := core.IDFromContent(recordID)
		require.NoError(t, repo.ReplaceChunks(ctx, noticeID, sampleChunks(recordID, noticeID, 1, vec)))
	}

	// Chunk without an embedding is skipped
	noVec := core.IDFromContent("TED-2025-000024")
	require.NoError(t, repo.ReplaceChunks(ctx, noVec, sampleChunks("TED-2025-000024", noVec, 1, nil)))

	t.Run("ordered by similarity descending", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0}, -1.0, 10)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, "TED-2025-000020", results[0].Chunk.RecordID)
		assert.Equal(t, "TED-2025-000021", results[1].Chunk.RecordID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.InDelta(t, 0.6, results[1].Score, 1e-6)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.6, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "TED-2025-000021", results[1].Chunk.RecordID)
	})

	t.Run("limit truncates", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0}, -1.0, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "TED-2025-000020", results[0].Chunk.RecordID)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.FindSimilar(ctx, []float32{1, 0}, 0, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}
