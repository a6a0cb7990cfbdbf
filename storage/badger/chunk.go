package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ChunkRepository has no resources to release.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindSimilar delegates to the backend.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ScoredChunk, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// ReplaceChunks atomically replaces every chunk belonging to a notice with
// the given set. All existing chunks and their index entries are removed
// first, then the new set is written in order. The per-notice index key
// encodes the position, so GetChunksByNotice returns chunks in the order
// they were written here.
func (r *ChunkRepository) ReplaceChunks(ctx context.Context, noticeID core.ID, chunks []*core.Chunk) error {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Remove the previous generation
		old, err := readNoticeChunkIDs(tx, noticeID)
		if err != nil {
			return err
		}
		for _, entry := range old {
			if err := tx.Delete(makeChunkKey(entry.chunkID)); err != nil {
				return err
			}
			if err := tx.Delete(entry.indexKey); err != nil {
				return err
			}
		}

		// Write the new generation
		now := time.Now().UTC()
		for i, chunk := range chunks {
			if chunk.Id == 0 {
				chunk.Id = core.IDFromContent(chunk.ChunkID)
			}
			chunk.NoticeID = noticeID
			chunk.InsertedAt = now

			key := makeChunkKey(chunk.Id)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}

			indexKey := makeChunkNoticeKey(noticeID, uint64(i))
			if err := tx.Set(indexKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunksByNotice retrieves all chunks belonging to a notice,
// in their original chunking order.
func (r *ChunkRepository) GetChunksByNotice(ctx context.Context, noticeID core.ID) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		entries, err := readNoticeChunkIDs(tx, noticeID)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			chunk, err := readChunk(tx, makeChunkKey(entry.chunkID))
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	return results, err
}

// CountChunks returns the number of stored chunks.
func (r *ChunkRepository) CountChunks(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

type noticeChunkEntry struct {
	chunkID  core.ID
	indexKey []byte
}

// readNoticeChunkIDs scans the per-notice index. The composite key sorts by
// position, so entries come back in write order.
func readNoticeChunkIDs(tx *badger.Txn, noticeID core.ID) ([]noticeChunkEntry, error) {
	var entries []noticeChunkEntry

	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialChunkNoticeKey(noticeID)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		indexKey := item.KeyCopy(nil)

		var chunkID core.ID
		err := item.Value(func(val []byte) error {
			var err error
			chunkID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return nil, err
		}

		entries = append(entries, noticeChunkEntry{chunkID: chunkID, indexKey: indexKey})
	}
	return entries, nil
}

// readChunk reads a chunk from the transaction.
func readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	return chunk, err
}
