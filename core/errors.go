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

import "errors"

// Domain validation errors
var (
	// ErrInvalidNotice indicates a Notice failed validation.
	ErrInvalidNotice = errors.New("invalid notice")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyRecordID indicates the RecordID field is empty.
	ErrEmptyRecordID = errors.New("record id cannot be empty")

	// ErrEmptyTitle indicates the notice Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyChunkText indicates the chunk Text field is empty.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrEmptySection indicates the chunk Section field is empty.
	ErrEmptySection = errors.New("chunk section cannot be empty")

	// ErrNegativeBudget indicates a negative budget amount.
	ErrNegativeBudget = errors.New("budget cannot be negative")

	// ErrNegativeChunkIndex indicates a negative chunk index.
	ErrNegativeChunkIndex = errors.New("chunk index cannot be negative")
)
