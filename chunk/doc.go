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


// Package chunk decomposes procurement notices into retrievable chunks.
//
// The Chunker walks the sections of a notice in a fixed order (title,
// description, lots, award criteria, budget, deadline, eligibility) and
// produces one or more chunks per section, each carrying denormalized
// notice metadata for post-retrieval filtering. Chunking is deterministic:
// the same notice always yields byte-identical chunks in the same order.
//
// Long descriptions are split with a sliding window that prefers to break
// at word boundaries and overlaps consecutive windows by a configurable
// number of characters.
package chunk
