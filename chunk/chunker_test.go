package chunk

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/tenderit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotice() *core.Notice {
	return &core.Notice{
		Id:              core.IDFromContent("TED-2025-104233"),
		RecordID:        "TED-2025-104233",
		Title:           "Supply of network equipment",
		Description:     "Delivery and installation of switches and routers.",
		Buyer:           "City of Rotterdam",
		CPVCodes:        []string{"32420000", "32420000", "72000000"},
		NUTSRegions:     []string{"NL33"},
		PublicationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Budget:          1200000,
		Currency:        "EUR",
		Deadline:        time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		Eligibility:     "Open to EU suppliers with ISO 27001 certification.",
		ContractType:    "supplies",
		ProcedureType:   "open",
		SourcePath:      "notices/2025/104233.xml",
	}
}

func TestChunkNotice_TitleAlwaysChunked(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	chunks := chunker.ChunkNotice(testNotice())
	require.NotEmpty(t, chunks)

	assert.Equal(t, core.SectionTitle, chunks[0].Section)
	assert.Equal(t, "Supply of network equipment", chunks[0].Text)
	assert.Equal(t, "TED-2025-104233_title_0", chunks[0].ChunkID)
	assert.Equal(t, "notice.title", chunks[0].Metadata.ProvenancePath)
}

func TestChunkNotice_MetadataDenormalized(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	chunks := chunker.ChunkNotice(testNotice())
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.Equal(t, "City of Rotterdam", c.Metadata.Buyer)
		// Duplicated CPV code collapsed
		assert.Equal(t, []string{"32420000", "72000000"}, c.Metadata.CPVCodes)
		assert.Equal(t, []string{"NL33"}, c.Metadata.NUTSRegions)
		assert.Equal(t, "notices/2025/104233.xml", c.Metadata.SourcePath)
		assert.Equal(t, "TED-2025-104233", c.RecordID)
	}
}

func TestChunkNotice_Idempotent(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	notice := testNotice()
	first := chunker.ChunkNotice(notice)
	second := chunker.ChunkNotice(notice)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ChunkID, second[i].ChunkID)
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].Id, second[i].Id)
	}
}

func TestChunkNotice_OptionalSectionsAbsent(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	notice := &core.Notice{
		RecordID: "TED-1",
		Title:    "Road maintenance",
	}
	chunks := chunker.ChunkNotice(notice)

	require.Len(t, chunks, 1)
	assert.Equal(t, core.SectionTitle, chunks[0].Section)
}

func TestChunkNotice_Lots(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	notice := testNotice()
	notice.Lots = []core.Lot{
		{Number: 1, Title: "Switches", Budget: 500000},
		{Number: 2, Title: "Routers"}, // inherits notice budget
		{Title: "no lot"},             // sentinel, skipped
		{Number: 3, Title: "Cabling", Budget: -5}, // malformed, skipped
	}

	chunks := chunker.ChunkNotice(notice)

	var lotChunks []*core.Chunk
	for _, c := range chunks {
		if strings.HasPrefix(c.Section, "lot_") {
			lotChunks = append(lotChunks, c)
		}
	}
	require.Len(t, lotChunks, 2)

	assert.Equal(t, "lot_1", lotChunks[0].Section)
	assert.Contains(t, lotChunks[0].Text, "500000.00 EUR")
	assert.Equal(t, "notice.lots[1]", lotChunks[0].Metadata.ProvenancePath)

	// Lot without its own budget falls back to the notice budget
	assert.Equal(t, "lot_2", lotChunks[1].Section)
	assert.Contains(t, lotChunks[1].Text, "1200000.00 EUR")
}

func TestChunkNotice_AwardCriteria(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	notice := testNotice()
	notice.AwardCriteria = []core.AwardCriterion{
		{Name: "Price", Weight: 60, Kind: "price"},
		{Name: "Quality", Weight: 40, Kind: "quality"},
	}

	chunks := chunker.ChunkNotice(notice)

	var found *core.Chunk
	for _, c := range chunks {
		if c.Section == core.SectionAwardCriteria {
			found = c
			break
		}
	}
	require.NotNil(t, found)
	assert.Contains(t, found.Text, "1. Price (weight 60, price)")
	assert.Contains(t, found.Text, "2. Quality (weight 40, quality)")
}

func TestChunkNotice_BudgetDeadlineEligibility(t *testing.T) {
	chunker, err := NewChunker()
	require.NoError(t, err)

	chunks := chunker.ChunkNotice(testNotice())

	sections := make(map[string]string)
	for _, c := range chunks {
		sections[c.Section] = c.Text
	}

	assert.Equal(t, "Estimated budget: 1200000.00 EUR", sections[core.SectionBudget])
	assert.Equal(t, "Submission deadline: 2025-10-01", sections[core.SectionDeadline])
	assert.Contains(t, sections[core.SectionEligibility], "ISO 27001")
}

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	chunker, err := NewChunker(WithMaxChunkSize(100), WithOverlap(10))
	require.NoError(t, err)

	parts := chunker.splitText("short description")
	require.Len(t, parts, 1)
	assert.Equal(t, "short description", parts[0])
}

func TestSplitText_WindowAndOverlap(t *testing.T) {
	chunker, err := NewChunker(WithMaxChunkSize(100), WithOverlap(10))
	require.NoError(t, err)

	words := make([]string, 120)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	parts := chunker.splitText(text)
	require.Greater(t, len(parts), 1)

	for i, part := range parts {
		if i < len(parts)-1 {
			assert.LessOrEqual(t, len([]rune(part)), 100, "chunk %d exceeds window", i)
		}
	}

	// Consecutive chunks overlap by exactly the configured amount
	for i := 0; i < len(parts)-1; i++ {
		prev := []rune(parts[i])
		next := []rune(parts[i+1])
		require.GreaterOrEqual(t, len(prev), 10)
		require.GreaterOrEqual(t, len(next), 10)
		assert.Equal(t, string(prev[len(prev)-10:]), string(next[:10]),
			"chunks %d and %d do not overlap", i, i+1)
	}

	// Union of chunks (overlaps deduplicated) reconstructs the original
	var b strings.Builder
	b.WriteString(parts[0])
	for i := 1; i < len(parts); i++ {
		b.WriteString(string([]rune(parts[i])[10:]))
	}
	assert.Equal(t, text, b.String())
}

func TestSplitText_NoWhitespaceInWindow(t *testing.T) {
	chunker, err := NewChunker(WithMaxChunkSize(10), WithOverlap(2))
	require.NoError(t, err)

	// Degenerate input: one long token, mid-word break is unavoidable
	parts := chunker.splitText(strings.Repeat("x", 35))
	require.NotEmpty(t, parts)
	for i, part := range parts {
		if i < len(parts)-1 {
			assert.Len(t, part, 10)
		}
	}
}

func TestSplitText_DegenerateOverlapTerminates(t *testing.T) {
	// Overlap equal to the window size would stall a naive loop
	chunker, err := NewChunker(WithMaxChunkSize(5), WithOverlap(5))
	require.NoError(t, err)

	parts := chunker.splitText("abcdefghij klm nop qrs tuv")
	assert.NotEmpty(t, parts)
}

func TestNewChunker_InvalidOptions(t *testing.T) {
	_, err := NewChunker(WithMaxChunkSize(0))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = NewChunker(WithOverlap(-1))
	assert.ErrorIs(t, err, ErrInvalidOverlap)
}
