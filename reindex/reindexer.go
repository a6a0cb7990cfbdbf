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
	"fmt"
	"io"
	"time"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of notices to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of notices)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer orchestrates the rebuild of all notice chunks in an archive.
type Reindexer struct {
	notices   storage.NoticeRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *NoticeIterator
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(
	notices storage.NoticeRepository,
	chunks storage.ChunkRepository,
	chunker *chunk.Chunker,
	embedder ai.Embedder,
	config *Config,
	progress io.Writer,
) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(notices, chunks, chunker, embedder, config.MaxRetries, config.RetryDelay)
	iterator := NewNoticeIterator(notices, config.BatchSize)

	return &Reindexer{
		notices:   notices,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the reindexing operation.
// Every stored notice is re-chunked and re-embedded with the configured
// chunker and embedder. Progress is reported to the configured writer.
func (r *Reindexer) Run(ctx context.Context) error {
	totalNotices, err := r.notices.CountNotices(ctx)
	if err != nil {
		return fmt.Errorf("failed to count notices: %w", err)
	}

	if totalNotices == 0 {
		fmt.Fprintf(r.progress, "No notices found in archive (0 notices)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d notices (batch size: %d)\n",
		totalNotices, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalNotices, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.iterator.ForEach(ctx, func(ids []core.ID) error {
		if err := r.processor.Process(ctx, ids); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(ids)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d notices in %v (%.1f notices/sec)\n",
		totalNotices, elapsed.Round(time.Second), float64(totalNotices)/elapsed.Seconds())

	return nil
}
