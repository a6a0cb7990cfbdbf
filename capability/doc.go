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


// Package capability provides a directory of named operations with shared
// collaborator injection and bounded retry.
//
// A Registry holds capability Definitions and a Deps struct of shared
// collaborators (retriever, finder, notice repository, chat model, user,
// credentials). Handlers receive Deps explicitly and read only the fields
// they need; there is no reflection-based wiring.
//
// Execute retries a failed handler up to an attempt budget and always
// returns a structured Result, never a panic or error: the caller inspects
// Result.OK and Result.RetriesExhausted. ExecuteBatch runs an ordered list
// of invocations independently, producing one result per input.
//
// BuiltinDefinitions supplies the standard tender capabilities: searching
// chunks, fetching notice detail, and concentration-based notice selection.
package capability
