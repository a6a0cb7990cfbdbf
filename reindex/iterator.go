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


package reindex

import (
	"context"

	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

const (
	// DefaultBatchSize is the default number of notices to process in each batch
	DefaultBatchSize = 100
)

// NoticeIterator iterates over all stored notice IDs in batches.
type NoticeIterator struct {
	repo      storage.NoticeRepository
	batchSize int
}

// NewNoticeIterator creates a new notice iterator.
// batchSize: number of notices to process in each batch (must be > 0)
func NewNoticeIterator(repo storage.NoticeRepository, batchSize int) *NoticeIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &NoticeIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all notice IDs, calling fn for each batch.
// Iteration stops on first error from fn or when all notices are processed.
// Context cancellation is checked between batches.
func (it *NoticeIterator) ForEach(ctx context.Context, fn func([]core.ID) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	ids, err := it.repo.ListNotices(ctx)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		// No notices to process
		return nil
	}

	for i := 0; i < len(ids); i += it.batchSize {
		end := i + it.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		if err := fn(ids[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
