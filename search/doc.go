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


// Package search provides hybrid retrieval over procurement notice chunks.
//
// The Retriever type combines vector similarity search with structured
// metadata filtering: it overfetches candidates from the chunk store, applies
// the Filters as an AND of independent predicates, and truncates to the
// requested size.
//
// The Finder type selects whole notices from chunk-level results using
// concentration analysis: the notice contributing the most chunks to the
// top-ranked window is the most likely match for the query.
package search
