// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"

	"github.com/poiesic/tenderit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// NoticeRepository provides operations for managing procurement notices.
type NoticeRepository interface {
	Repository

	// AddNotices adds one or more notices to storage. The Id is derived from
	// RecordID (IDFromContent) and InsertedAt is populated. A notice whose
	// RecordID already exists is overwritten in place.
	// Returns the notices with ids and timestamps populated.
	AddNotices(ctx context.Context, notices ...*core.Notice) ([]*core.Notice, error)

	// GetNotice retrieves a single notice by ID.
	// Returns ErrNotFound if the notice doesn't exist.
	GetNotice(ctx context.Context, id core.ID) (*core.Notice, error)

	// GetNoticeByRecordID retrieves a notice by its external record identifier.
	// Returns ErrNotFound if the notice doesn't exist.
	GetNoticeByRecordID(ctx context.Context, recordID string) (*core.Notice, error)

	// DeleteNotices removes notices by their IDs.
	// Returns ErrNotFound if any notice doesn't exist.
	DeleteNotices(ctx context.Context, ids ...core.ID) error

	// ListNotices returns all notice IDs, ordered by key.
	ListNotices(ctx context.Context) ([]core.ID, error)

	// CountNotices returns the number of stored notices.
	CountNotices(ctx context.Context) (int, error)
}

// ChunkRepository provides operations for managing retrieval chunks.
type ChunkRepository interface {
	Repository

	// ReplaceChunks atomically replaces every chunk belonging to a notice
	// with the given set. Old chunks are fully removed first, never partially
	// patched, so a re-indexing pass supersedes rather than mutates.
	// Passing an empty set removes all chunks for the notice.
	ReplaceChunks(ctx context.Context, noticeID core.ID, chunks []*core.Chunk) error

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunksByNotice retrieves all chunks belonging to a notice,
	// in their original chunking order.
	GetChunksByNotice(ctx context.Context, noticeID core.ID) ([]*core.Chunk, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// FindSimilar finds chunks similar to the given vector.
	//
	// Score convention: cosine similarity over normalized vectors, higher is
	// better. Chunks with similarity >= minSimilarity pass; results are
	// ordered by similarity descending, truncated to limit. Chunks without
	// an embedding are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ScoredChunk, error)
}
