package reindex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
	"github.com/poiesic/tenderit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotices(t *testing.T, count int) storage.NoticeRepository {
	t.Helper()
	noticeRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		noticeRepo.Close()
		chunkRepo.Close()
		backend.Close()
	})

	ctx := context.Background()
	for i := 0; i < count; i++ {
		_, err := noticeRepo.AddNotices(ctx, &core.Notice{
			RecordID: fmt.Sprintf("TED-2025-%06d", i),
			Title:    fmt.Sprintf("Notice %d", i),
		})
		require.NoError(t, err)
	}
	return noticeRepo
}

func TestNoticeIterator_Batches(t *testing.T) {
	repo := setupNotices(t, 25)
	iterator := NewNoticeIterator(repo, 10)

	var batches [][]core.ID
	err := iterator.ForEach(context.Background(), func(ids []core.ID) error {
		batch := make([]core.ID, len(ids))
		copy(batch, ids)
		batches = append(batches, batch)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[1], 10)
	assert.Len(t, batches[2], 5)

	seen := make(map[core.ID]bool)
	for _, batch := range batches {
		for _, id := range batch {
			assert.False(t, seen[id], "id %d visited twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestNoticeIterator_Empty(t *testing.T) {
	repo := setupNotices(t, 0)
	iterator := NewNoticeIterator(repo, 10)

	calls := 0
	err := iterator.ForEach(context.Background(), func(ids []core.ID) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestNoticeIterator_StopsOnError(t *testing.T) {
	repo := setupNotices(t, 25)
	iterator := NewNoticeIterator(repo, 10)

	calls := 0
	wantErr := errors.New("batch failed")
	err := iterator.ForEach(context.Background(), func(ids []core.ID) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestNoticeIterator_ContextCanceled(t *testing.T) {
	repo := setupNotices(t, 25)
	iterator := NewNoticeIterator(repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := iterator.ForEach(ctx, func(ids []core.ID) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNoticeIterator_DefaultBatchSize(t *testing.T) {
	repo := setupNotices(t, 1)
	iterator := NewNoticeIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}
