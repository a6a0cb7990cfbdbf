package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/ai/mock"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
	"github.com/poiesic/tenderit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryVector is what the test embedder returns for every query. Chunk
// vectors are built so their dot product with it equals a chosen score.
var queryVector = []float32{1, 0}

func scoreVector(score float32) []float32 {
	other := float32(math.Sqrt(float64(1 - score*score)))
	return []float32{score, other}
}

func testProvider() ai.AIProvider {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return queryVector, nil
	}
	return mock.NewMockProviderWithServices(embedder, mock.NewMockChatModel())
}

func setupRetriever(t *testing.T, opts ...Option) (*Retriever, storage.ChunkRepository) {
	t.Helper()
	noticeRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		noticeRepo.Close()
		chunkRepo.Close()
		backend.Close()
	})

	retriever, err := NewRetriever(chunkRepo, testProvider(), opts...)
	require.NoError(t, err)
	return retriever, chunkRepo
}

// seedRecord stores count chunks for the record, one per score, with the
// given metadata on every chunk.
func seedRecord(t *testing.T, repo storage.ChunkRepository, recordID string, scores []float32, meta core.ChunkMetadata) {
	t.Helper()
	noticeID := core.IDFromContent(recordID)
	chunks := make([]*core.Chunk, 0, len(scores))
	for i, score := range scores {
		chunks = append(chunks, &core.Chunk{
			ChunkID:    core.MakeChunkID(recordID, core.SectionDescription, i),
			NoticeID:   noticeID,
			RecordID:   recordID,
			Section:    core.SectionDescription,
			ChunkIndex: i,
			Text:       fmt.Sprintf("%s part %d", recordID, i),
			Metadata:   meta,
			Vector:     scoreVector(score),
		})
	}
	require.NoError(t, repo.ReplaceChunks(context.Background(), noticeID, chunks))
}

func TestNewRetriever_Validation(t *testing.T) {
	_, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewRetriever(nil, testProvider())
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)

	_, err = NewRetriever(chunkRepo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestRetriever_Retrieve_RankedAndTruncated(t *testing.T) {
	retriever, repo := setupRetriever(t)
	ctx := context.Background()

	seedRecord(t, repo, "TED-A", []float32{0.9, 0.7, 0.5}, core.ChunkMetadata{})
	seedRecord(t, repo, "TED-B", []float32{0.8, 0.6}, core.ChunkMetadata{})

	chunks := retriever.Retrieve(ctx, "network equipment", nil, 3)
	require.Len(t, chunks, 3)
	assert.Equal(t, "TED-A", chunks[0].RecordID)
	assert.Equal(t, "TED-B", chunks[1].RecordID)
	assert.Equal(t, "TED-A", chunks[2].RecordID)
}

func TestRetriever_Retrieve_FilterBackfillsFromOverfetch(t *testing.T) {
	retriever, repo := setupRetriever(t)
	ctx := context.Background()

	// The best-scoring record fails the filter; lower-ranked chunks from the
	// overfetched window fill the result instead.
	seedRecord(t, repo, "TED-DE", []float32{0.9, 0.85}, core.ChunkMetadata{NUTSRegions: []string{"DE21"}})
	seedRecord(t, repo, "TED-NL", []float32{0.6, 0.5}, core.ChunkMetadata{NUTSRegions: []string{"NL33C"}})

	chunks := retriever.Retrieve(ctx, "anything", &Filters{Country: "NL"}, 2)
	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.Equal(t, "TED-NL", chunk.RecordID)
	}
}

func TestRetriever_RetrieveWithScores_MinScore(t *testing.T) {
	retriever, repo := setupRetriever(t)
	ctx := context.Background()

	seedRecord(t, repo, "TED-A", []float32{0.9, 0.4}, core.ChunkMetadata{})

	results := retriever.RetrieveWithScores(ctx, "anything", nil, 5, 0.5)
	require.Len(t, results, 1)
	assert.Equal(t, "TED-A", results[0].Chunk.RecordID)
	assert.InDelta(t, 0.9, results[0].Score, 1e-3)
}

func TestRetriever_RetrieveWithScores_PairingSurvivesFiltering(t *testing.T) {
	retriever, repo := setupRetriever(t)
	ctx := context.Background()

	seedRecord(t, repo, "TED-DE", []float32{0.9}, core.ChunkMetadata{NUTSRegions: []string{"DE21"}})
	seedRecord(t, repo, "TED-NL", []float32{0.7}, core.ChunkMetadata{NUTSRegions: []string{"NL33C"}})

	results := retriever.RetrieveWithScores(ctx, "anything", &Filters{Country: "NL"}, 5, -1)
	require.Len(t, results, 1)
	assert.Equal(t, "TED-NL", results[0].Chunk.RecordID)
	assert.InDelta(t, 0.7, results[0].Score, 1e-3)
}

func TestRetriever_EmbedderFailureReturnsEmpty(t *testing.T) {
	_, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockChatModel())

	retriever, err := NewRetriever(chunkRepo, provider)
	require.NoError(t, err)

	chunks := retriever.Retrieve(context.Background(), "anything", nil, 3)
	assert.Empty(t, chunks)
}

func TestRetriever_ZeroKReturnsEmpty(t *testing.T) {
	retriever, repo := setupRetriever(t)
	seedRecord(t, repo, "TED-A", []float32{0.9}, core.ChunkMetadata{})

	assert.Empty(t, retriever.Retrieve(context.Background(), "anything", nil, 0))
}

type recordingMonitor struct {
	started    bool
	candidates int
	filtered   int
	results    int
}

func (m *recordingMonitor) Start(_ string, _ int)                       { m.started = true }
func (m *recordingMonitor) AfterSimilaritySearch(c []*core.ScoredChunk) { m.candidates = len(c) }
func (m *recordingMonitor) FilteredOut(_ *core.ScoredChunk)             { m.filtered++ }
func (m *recordingMonitor) Finish(r []*core.ScoredChunk)                { m.results = len(r) }

func TestRetriever_MonitorObservesStages(t *testing.T) {
	monitor := &recordingMonitor{}
	retriever, repo := setupRetriever(t, WithMonitor(monitor))

	seedRecord(t, repo, "TED-DE", []float32{0.9}, core.ChunkMetadata{NUTSRegions: []string{"DE21"}})
	seedRecord(t, repo, "TED-NL", []float32{0.7}, core.ChunkMetadata{NUTSRegions: []string{"NL33C"}})

	retriever.Retrieve(context.Background(), "anything", &Filters{Country: "NL"}, 5)

	assert.True(t, monitor.started)
	assert.Equal(t, 2, monitor.candidates)
	assert.Equal(t, 1, monitor.filtered)
	assert.Equal(t, 1, monitor.results)
}
