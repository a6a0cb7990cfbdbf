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


package core

import "fmt"

// ValidateNotice validates a Notice according to domain rules.
//
// Validation rules:
//   - RecordID must not be empty
//   - Title must not be empty
//   - Budget (notice and lots) must not be negative
//
// NOT validated (optional structured fields):
//   - Description, Eligibility, Deadline, CPVCodes etc. may all be absent;
//     the chunker simply produces no chunks for missing sections
//   - Id (0 is valid; it is derived from RecordID at storage time)
func ValidateNotice(notice *Notice) error {
	if notice == nil {
		return fmt.Errorf("%w: notice is nil", ErrInvalidNotice)
	}

	if notice.RecordID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNotice, ErrEmptyRecordID)
	}

	if notice.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNotice, ErrEmptyTitle)
	}

	if notice.Budget < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidNotice, ErrNegativeBudget)
	}

	for _, lot := range notice.Lots {
		if lot.Budget < 0 {
			return fmt.Errorf("%w: lot %d: %w", ErrInvalidNotice, lot.Number, ErrNegativeBudget)
		}
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Section must not be empty
//   - ChunkIndex must not be negative
//
// NOT validated (populated during ingestion):
//   - Vector (can be empty until the embedding step runs)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	if chunk.Section == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySection)
	}

	if chunk.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNegativeChunkIndex)
	}

	return nil
}
