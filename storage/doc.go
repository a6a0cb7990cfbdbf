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


// Package storage defines the repository abstractions for notices and chunks.
//
// Two repositories cover the persistence surface:
//
//   - NoticeRepository: the structured procurement notices as ingested
//   - ChunkRepository: the derived retrieval chunks, including vector
//     similarity search over their embeddings
//
// Chunks follow a supersede lifecycle: re-indexing a notice replaces all of
// its chunks atomically via ReplaceChunks; chunks are never patched in place.
//
// The badger subpackage provides the BadgerDB implementation.
package storage
