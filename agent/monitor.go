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

import "github.com/poiesic/tenderit/core"

// SessionMonitor observes the stages of an iterative search session.
// Implementations must be fast; they run inline with the session.
type SessionMonitor interface {
	// StartSession is called once, before the first round.
	StartSession(request string, rounds int)

	// StartRound is called at the beginning of each round with the query
	// the round will run.
	StartRound(number int, query string)

	// RoundNoResult is called when a round's retrieval produced no
	// candidate.
	RoundNoResult(number int)

	// RoundResult is called after a round's verdict is recorded.
	RoundResult(iteration *core.SearchIteration)

	// FinishSession is called once with the final outcome.
	FinishSession(outcome *Outcome)
}

type noopSessionMonitor struct{}

func (m *noopSessionMonitor) StartSession(request string, rounds int)       {}
func (m *noopSessionMonitor) StartRound(number int, query string)           {}
func (m *noopSessionMonitor) RoundNoResult(number int)                      {}
func (m *noopSessionMonitor) RoundResult(iteration *core.SearchIteration)   {}
func (m *noopSessionMonitor) FinishSession(outcome *Outcome)                {}
