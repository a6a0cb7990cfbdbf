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


// Package agent runs iterative search sessions over the tender archive.
//
// A session takes a free-form request and spends a bounded number of rounds
// converging on the notices that answer it. Each round turns the transcript
// so far into a refined query, retrieves the concentration candidate for that
// query, fetches the candidate's full detail through the capability registry,
// and has the language model judge whether the notice corresponds to the
// request. After the last round a final selection ranks the distinct
// candidates and, when more than one was seen, lets the model pick among
// them.
//
// Sessions degrade rather than fail. A round without a candidate is recorded
// and the session continues; an unparsable judge reply counts as
// non-correspondence; a searcher constructed without a model answers every
// request with one direct retrieval and marks the outcome as a fallback. When
// no round confirmed a notice, the outcome carries a clarification assembled
// from what the judges reported missing.
//
// Usage:
//
//	searcher, err := agent.NewIterativeSearcher(finder, registry, model)
//	if err != nil {
//		return err
//	}
//	outcome := searcher.FindOne(ctx, "road resurfacing works in Utrecht under 2M EUR")
//	if !outcome.Reliable {
//		fmt.Println(outcome.Clarification)
//	}
package agent
