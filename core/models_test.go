package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("TED-2025-104233")
		id2 := IDFromContent("TED-2025-104233")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content produces different ids", func(t *testing.T) {
		id1 := IDFromContent("TED-2025-104233")
		id2 := IDFromContent("TED-2025-104234")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestMakeChunkID(t *testing.T) {
	assert.Equal(t, "TED-1_title_0", MakeChunkID("TED-1", SectionTitle, 0))
	assert.Equal(t, "TED-1_description_3", MakeChunkID("TED-1", SectionDescription, 3))
	assert.Equal(t, "TED-1_lot_2_0", MakeChunkID("TED-1", LotSection(2), 0))
}

func TestLotSection(t *testing.T) {
	assert.Equal(t, "lot_1", LotSection(1))
	assert.Equal(t, "lot_12", LotSection(12))
}
