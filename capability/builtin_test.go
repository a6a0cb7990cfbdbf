package capability

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/tenderit/ai/mock"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/search"
	"github.com/poiesic/tenderit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRegistry builds a registry over in-memory repositories with two
// indexed notices and a deterministic mock embedder.
func setupRegistry(t *testing.T) *Registry {
	t.Helper()
	noticeRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		noticeRepo.Close()
		chunkRepo.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider()
	ctx := context.Background()
	chunker, err := chunk.NewChunker()
	require.NoError(t, err)

	notices := []*core.Notice{
		{
			RecordID:     "TED-2025-000100",
			Title:        "Supply of network routers",
			Description:  "Core and edge routers for municipal data centers.",
			Buyer:        "City of Rotterdam",
			CPVCodes:     []string{"32420000"},
			NUTSRegions:  []string{"NL33C"},
			Budget:       900000,
			Currency:     "EUR",
			Deadline:     time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			ContractType: "supplies",
		},
		{
			RecordID:    "TED-2025-000101",
			Title:       "Road resurfacing works",
			Description: "Asphalt resurfacing of regional roads.",
			Buyer:       "Province of Utrecht",
			CPVCodes:    []string{"45233220"},
			NUTSRegions: []string{"NL31"},
			Budget:      2500000,
			Currency:    "EUR",
		},
	}

	for _, notice := range notices {
		added, err := noticeRepo.AddNotices(ctx, notice)
		require.NoError(t, err)

		chunks := chunker.ChunkNotice(added[0])
		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		vectors, err := provider.Embedder().EmbedTexts(ctx, texts)
		require.NoError(t, err)
		for i := range chunks {
			chunks[i].Vector = vectors[i]
		}
		require.NoError(t, chunkRepo.ReplaceChunks(ctx, added[0].Id, chunks))
	}

	retriever, err := search.NewRetriever(chunkRepo, provider)
	require.NoError(t, err)
	finder, err := search.NewFinder(retriever)
	require.NoError(t, err)

	deps := &Deps{
		Retriever: retriever,
		Finder:    finder,
		Notices:   noticeRepo,
		Model:     provider.ChatModel(),
	}
	registry, err := NewRegistry(deps, BuiltinDefinitions())
	require.NoError(t, err)
	return registry
}

func TestSearchTenders(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapSearchTenders, 1, map[string]any{
		"query": "network routers for data centers",
		"limit": 5,
	})
	require.True(t, result.OK, result.Error)

	results, ok := result.Data["results"].([]map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, results)
	assert.Equal(t, len(results), result.Data["count"])
}

func TestSearchTenders_MissingQuery(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapSearchTenders, 1, nil)
	require.False(t, result.OK)
	assert.Contains(t, result.Error, "query")
}

func TestSearchTenders_FilterExcludes(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapSearchTenders, 1, map[string]any{
		"query":     "anything",
		"cpv_codes": "45",
	})
	require.True(t, result.OK)

	results := result.Data["results"].([]map[string]any)
	for _, entry := range results {
		assert.Equal(t, "TED-2025-000101", entry["tender_id"])
	}
}

func TestGetTenderDetail(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapGetTenderDetail, 1, map[string]any{
		"tender_id": "TED-2025-000100",
	})
	require.True(t, result.OK, result.Error)
	assert.Equal(t, "Supply of network routers", result.Data["title"])
	assert.Equal(t, "City of Rotterdam", result.Data["buyer"])
	assert.Equal(t, "2025-09-01", result.Data["deadline"])
}

func TestGetTenderDetail_UnknownID(t *testing.T) {
	registry := setupRegistry(t)

	// Unknown ids are a structured failure, not an error or panic
	result := registry.Execute(context.Background(), CapGetTenderDetail, 1, map[string]any{
		"tender_id": "TED-9999-999999",
	})
	require.False(t, result.OK)
	assert.Contains(t, result.Error, "not found")
}

func TestFindBestTender(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapFindBestTender, 1, map[string]any{
		"query": "routers",
	})
	require.True(t, result.OK, result.Error)
	assert.NotEmpty(t, result.Data["tender_id"])
	assert.Greater(t, result.Data["concentration"], 0)
}

func TestFindTopTenders(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapFindTopTenders, 1, map[string]any{
		"query": "procurement",
		"limit": 2,
	})
	require.True(t, result.OK, result.Error)

	tenders := result.Data["tenders"].([]map[string]any)
	assert.Equal(t, len(tenders), result.Data["count"])
	assert.Equal(t, 2, result.Data["requested"])

	seen := make(map[any]bool)
	for _, entry := range tenders {
		assert.False(t, seen[entry["tender_id"]])
		seen[entry["tender_id"]] = true
	}
}

func TestFindTopTenders_InvalidLimit(t *testing.T) {
	registry := setupRegistry(t)

	result := registry.Execute(context.Background(), CapFindTopTenders, 1, map[string]any{
		"query": "anything",
	})
	require.False(t, result.OK)
	assert.Contains(t, result.Error, "limit")
}
