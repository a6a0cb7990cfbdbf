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


package agent

import "errors"

var (
	// ErrFinderRequired is returned when a searcher is created without a
	// finder.
	ErrFinderRequired = errors.New("finder is required")

	// ErrRegistryRequired is returned when a searcher is created without a
	// capability registry.
	ErrRegistryRequired = errors.New("capability registry is required")

	// ErrInvalidRounds is returned when the round budget is not positive.
	ErrInvalidRounds = errors.New("rounds must be positive")
)
