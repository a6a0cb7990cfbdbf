package search

import (
	"context"
	"testing"

	"github.com/poiesic/tenderit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredChunk(recordID string, score float32) *core.ScoredChunk {
	return &core.ScoredChunk{
		Chunk: &core.Chunk{
			RecordID: recordID,
			NoticeID: core.IDFromContent(recordID),
			Section:  core.SectionDescription,
			Text:     "chunk of " + recordID,
		},
		Score: score,
	}
}

func TestConcentrationWinner_CountBeatsScore(t *testing.T) {
	// B's chunks all score higher, but A has 4 of the 7 chunks.
	window := []*core.ScoredChunk{
		scoredChunk("TED-B", 0.95),
		scoredChunk("TED-B", 0.94),
		scoredChunk("TED-B", 0.93),
		scoredChunk("TED-A", 0.70),
		scoredChunk("TED-A", 0.69),
		scoredChunk("TED-A", 0.68),
		scoredChunk("TED-A", 0.67),
	}

	winner := concentrationWinner(window)
	require.NotNil(t, winner)
	assert.Equal(t, "TED-A", winner.RecordID)
	assert.Equal(t, 4, winner.Concentration)
	assert.InDelta(t, 0.70, winner.BestScore, 1e-6)
}

func TestConcentrationWinner_ScoreBreaksCountTie(t *testing.T) {
	window := []*core.ScoredChunk{
		scoredChunk("TED-A", 0.80),
		scoredChunk("TED-B", 0.90),
		scoredChunk("TED-A", 0.60),
		scoredChunk("TED-B", 0.50),
	}

	winner := concentrationWinner(window)
	assert.Equal(t, "TED-B", winner.RecordID)
	assert.Equal(t, 2, winner.Concentration)
}

func TestConcentrationWinner_EarliestBreaksFullTie(t *testing.T) {
	// Equal counts, equal best scores: the record appearing first in the
	// ranked list wins.
	window := []*core.ScoredChunk{
		scoredChunk("TED-A", 0.80),
		scoredChunk("TED-B", 0.80),
		scoredChunk("TED-A", 0.60),
		scoredChunk("TED-B", 0.60),
	}

	winner := concentrationWinner(window)
	assert.Equal(t, "TED-A", winner.RecordID)
	assert.Equal(t, 0, winner.FirstIndex)
}

func TestConcentrationWinner_CollectsRecordChunks(t *testing.T) {
	window := []*core.ScoredChunk{
		scoredChunk("TED-A", 0.90),
		scoredChunk("TED-B", 0.85),
		scoredChunk("TED-A", 0.80),
	}

	winner := concentrationWinner(window)
	assert.Equal(t, "TED-A", winner.RecordID)
	require.Len(t, winner.Chunks, 2)
	assert.InDelta(t, 0.90, winner.Chunks[0].Score, 1e-6)
}

func TestFinder_FindBest(t *testing.T) {
	retriever, repo := setupRetriever(t)
	finder, err := NewFinder(retriever)
	require.NoError(t, err)
	ctx := context.Background()

	// A spreads 4 chunks across the window, B has 3 better-scoring ones
	seedRecord(t, repo, "TED-A", []float32{0.70, 0.69, 0.68, 0.67}, core.ChunkMetadata{})
	seedRecord(t, repo, "TED-B", []float32{0.95, 0.94, 0.93}, core.ChunkMetadata{})

	winner := finder.FindBest(ctx, "anything", nil)
	require.NotNil(t, winner)
	assert.Equal(t, "TED-A", winner.RecordID)
	assert.Equal(t, 4, winner.Concentration)
}

func TestFinder_FindBest_EmptyStore(t *testing.T) {
	retriever, _ := setupRetriever(t)
	finder, err := NewFinder(retriever)
	require.NoError(t, err)

	assert.Nil(t, finder.FindBest(context.Background(), "anything", nil))
}

func TestFinder_FindTop(t *testing.T) {
	retriever, repo := setupRetriever(t)
	finder, err := NewFinder(retriever)
	require.NoError(t, err)
	ctx := context.Background()

	// 21 chunks across exactly 3 records
	seedRecord(t, repo, "TED-A", []float32{0.90, 0.89, 0.88, 0.87, 0.86, 0.85, 0.84}, core.ChunkMetadata{})
	seedRecord(t, repo, "TED-B", []float32{0.80, 0.79, 0.78, 0.77, 0.76, 0.75, 0.74}, core.ChunkMetadata{})
	seedRecord(t, repo, "TED-C", []float32{0.70, 0.69, 0.68, 0.67, 0.66, 0.65, 0.64}, core.ChunkMetadata{})

	results := finder.FindTop(ctx, "anything", nil, 3)
	require.Len(t, results, 3)

	seen := make(map[string]bool)
	for _, cand := range results {
		assert.False(t, seen[cand.RecordID], "no duplicate record ids")
		seen[cand.RecordID] = true
	}
	assert.Equal(t, "TED-A", results[0].RecordID)
	assert.Equal(t, "TED-B", results[1].RecordID)
	assert.Equal(t, "TED-C", results[2].RecordID)
}

func TestFinder_FindTop_PartialWhenPoolRunsOut(t *testing.T) {
	retriever, repo := setupRetriever(t)
	finder, err := NewFinder(retriever)
	require.NoError(t, err)
	ctx := context.Background()

	// Only one record with enough chunks for a full window; after removing
	// it the pool is too small to form another.
	seedRecord(t, repo, "TED-A", []float32{0.90, 0.89, 0.88, 0.87, 0.86, 0.85, 0.84}, core.ChunkMetadata{})
	seedRecord(t, repo, "TED-B", []float32{0.60, 0.59}, core.ChunkMetadata{})

	results := finder.FindTop(ctx, "anything", nil, 3)
	require.Len(t, results, 1)
	assert.Equal(t, "TED-A", results[0].RecordID)
}

func TestFinder_FindTop_ZeroLimit(t *testing.T) {
	retriever, _ := setupRetriever(t)
	finder, err := NewFinder(retriever)
	require.NoError(t, err)

	assert.Empty(t, finder.FindTop(context.Background(), "anything", nil, 0))
}
