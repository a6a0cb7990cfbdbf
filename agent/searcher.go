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

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/capability"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/search"
)

// DefaultRounds is the round budget of an iterative search session.
const DefaultRounds = 5

// Selected is one notice chosen by a search session, with the aggregates
// that ranked it.
type Selected struct {
	// RecordID identifies the notice.
	RecordID string

	// JudgeScore is the best judge score the notice received across rounds.
	JudgeScore int

	// Concentration is the highest chunk concentration the notice reached.
	Concentration int

	// Rounds lists the round numbers in which the notice was the candidate.
	Rounds []int
}

// Outcome is the result of a search session. Its shape is identical in
// iterative and fallback mode, so callers never special-case.
type Outcome struct {
	// Selected holds the chosen notices, best first. Empty when no round
	// produced a candidate.
	Selected []*Selected

	// Iterations is the session transcript, one entry per round.
	// Empty in fallback mode.
	Iterations []*core.SearchIteration

	// Reliable is true when at least one round's judge confirmed
	// correspondence.
	Reliable bool

	// Clarification suggests what to add to an underspecified request.
	// Set only when the session was not reliable.
	Clarification string

	// Fallback is true when the session skipped the iterative loop.
	Fallback bool
}

// IterativeSearcher runs bounded search-refine-verify sessions: each round
// generates a query from the transcript so far, retrieves a concentration
// candidate, fetches its detail through the capability registry, and has the
// model judge the correspondence. After the round budget a final selection is
// made over all distinct candidates.
//
// Rounds are strictly sequential; round i+1's query generation consumes the
// transcript of rounds 1..i.
type IterativeSearcher struct {
	finder   *search.Finder
	registry *capability.Registry
	model    ai.ChatModel
	rounds   int
	monitor  SessionMonitor
	logger   *slog.Logger
}

// Option configures an IterativeSearcher.
type Option func(*IterativeSearcher) error

// WithRounds sets the round budget.
// Default is DefaultRounds.
func WithRounds(rounds int) Option {
	return func(s *IterativeSearcher) error {
		if rounds < 1 {
			return ErrInvalidRounds
		}
		s.rounds = rounds
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *IterativeSearcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMonitor sets a monitor that observes the session.
// Default is a no-op monitor.
func WithMonitor(monitor SessionMonitor) Option {
	return func(s *IterativeSearcher) error {
		if monitor == nil {
			monitor = &noopSessionMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// NewIterativeSearcher creates a searcher. A nil model enables fallback
// mode: sessions skip the iterative loop and perform one direct
// concentration-based retrieval.
func NewIterativeSearcher(
	finder *search.Finder,
	registry *capability.Registry,
	model ai.ChatModel,
	opts ...Option,
) (*IterativeSearcher, error) {
	if finder == nil {
		return nil, ErrFinderRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	s := &IterativeSearcher{
		finder:   finder,
		registry: registry,
		model:    model,
		rounds:   DefaultRounds,
		monitor:  &noopSessionMonitor{},
		logger:   slog.Default().With("component", "iterative-searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindOne runs a session converging on a single notice.
func (s *IterativeSearcher) FindOne(ctx context.Context, request string) *Outcome {
	return s.run(ctx, request, 1)
}

// FindTop runs a session converging on up to limit notices.
func (s *IterativeSearcher) FindTop(ctx context.Context, request string, limit int) *Outcome {
	if limit < 1 {
		limit = 1
	}
	return s.run(ctx, request, limit)
}

func (s *IterativeSearcher) run(ctx context.Context, request string, limit int) *Outcome {
	s.monitor.StartSession(request, s.rounds)

	if s.model == nil {
		outcome := s.fallback(ctx, request, limit)
		s.monitor.FinishSession(outcome)
		return outcome
	}

	iterations := make([]*core.SearchIteration, 0, s.rounds)
	for round := 1; round <= s.rounds; round++ {
		query := request
		if round > 1 {
			query = s.generateQuery(ctx, request, iterations)
		}
		s.monitor.StartRound(round, query)

		iteration := s.runRound(ctx, round, request, query)
		iterations = append(iterations, iteration)
		if iteration.NoResult {
			s.monitor.RoundNoResult(round)
			continue
		}
		s.monitor.RoundResult(iteration)
	}

	aggregates := aggregateCandidates(iterations)
	selected := s.selectFinal(ctx, request, aggregates, limit)

	reliable := false
	for _, iteration := range iterations {
		if iteration.Corresponds {
			reliable = true
			break
		}
	}

	outcome := &Outcome{
		Selected:   selected,
		Iterations: iterations,
		Reliable:   reliable,
	}
	if !reliable {
		outcome.Clarification = buildClarification(iterations)
	}

	s.monitor.FinishSession(outcome)
	return outcome
}

// runRound executes one search-verify round and records it.
func (s *IterativeSearcher) runRound(ctx context.Context, round int, request, query string) *core.SearchIteration {
	iteration := &core.SearchIteration{
		Number: round,
		Query:  query,
	}

	candidate := s.finder.FindBest(ctx, query, nil)
	if candidate == nil {
		s.logger.Info("round produced no candidate", "round", round, "query", query)
		iteration.NoResult = true
		return iteration
	}

	iteration.CandidateID = candidate.NoticeID
	iteration.CandidateRecordID = candidate.RecordID
	iteration.Concentration = candidate.Concentration
	iteration.Similarity = candidate.BestScore

	detail := s.registry.Execute(ctx, capability.CapGetTenderDetail, 0, map[string]any{
		"tender_id": candidate.RecordID,
	})

	var verdict *Verdict
	if !detail.OK {
		s.logger.Warn("detail lookup failed, treating as non-correspondence",
			"round", round,
			"tender", candidate.RecordID,
			"error", detail.Error)
		verdict = &Verdict{Corresponds: false, Score: 0, Reasoning: detail.Error}
	} else {
		verdict = judgeCorrespondence(ctx, s.model, request, detail.Data, s.logger)
	}

	iteration.Corresponds = verdict.Corresponds
	iteration.Score = verdict.IntScore()
	iteration.Reasoning = verdict.Reasoning
	iteration.MissingInfo = verdict.MissingInfo
	return iteration
}

// generateQuery asks the model for the next round's query, given the full
// transcript. Falls back to the original request when the model fails or
// returns nothing useful.
func (s *IterativeSearcher) generateQuery(ctx context.Context, request string, iterations []*core.SearchIteration) string {
	var transcript strings.Builder
	fmt.Fprintf(&transcript, "Request: %s\n\nEarlier rounds:\n", request)
	for _, iteration := range iterations {
		if iteration.NoResult {
			fmt.Fprintf(&transcript, "- round %d: query=%q, no result\n", iteration.Number, iteration.Query)
			continue
		}
		fmt.Fprintf(&transcript, "- round %d: query=%q, candidate=%s, concentration=%d, corresponds=%t, score=%d, reasoning=%s\n",
			iteration.Number,
			iteration.Query,
			iteration.CandidateRecordID,
			iteration.Concentration,
			iteration.Corresponds,
			iteration.Score,
			iteration.Reasoning)
	}

	reply, err := s.model.Invoke(ctx, []ai.Message{
		ai.SystemMessage(querySystemPrompt),
		ai.UserMessage(transcript.String()),
	})
	if err != nil {
		s.logger.Warn("query generation failed, reusing request", "err", err)
		return request
	}

	query := strings.TrimSpace(reply)
	if idx := strings.IndexByte(query, '\n'); idx >= 0 {
		query = strings.TrimSpace(query[:idx])
	}
	query = strings.Trim(query, `"'`)
	if query == "" {
		return request
	}
	return query
}

// selectFinal chooses up to limit notices from the distinct candidates seen
// across rounds. The model picks from a deterministically ranked list; a
// malformed reply falls back to the ranking itself.
func (s *IterativeSearcher) selectFinal(ctx context.Context, request string, aggregates []*Selected, limit int) []*Selected {
	if len(aggregates) == 0 {
		return []*Selected{}
	}
	if limit > len(aggregates) {
		limit = len(aggregates)
	}

	// Single distinct candidate needs no model choice
	if len(aggregates) == 1 {
		return aggregates[:1]
	}

	byID := make(map[string]*Selected, len(aggregates))
	var lines strings.Builder
	for _, cand := range aggregates {
		byID[cand.RecordID] = cand
		fmt.Fprintf(&lines, "- id=%s score=%d concentration=%d rounds=%v\n",
			cand.RecordID, cand.JudgeScore, cand.Concentration, cand.Rounds)
	}

	reply, err := s.model.Invoke(ctx, []ai.Message{
		ai.SystemMessage(selectionSystemPrompt),
		ai.UserMessage(fmt.Sprintf("Request: %s\n\nPick up to %d.\n\nCandidates:\n%s", request, limit, lines.String())),
	})
	if err != nil {
		s.logger.Warn("final selection failed, using deterministic ranking", "err", err)
		return aggregates[:limit]
	}

	var choice struct {
		TenderIDs []string `json:"tender_ids"`
	}
	if err := json.Unmarshal([]byte(repairJSON(stripFences(reply))), &choice); err != nil {
		s.logger.Warn("unparsable selection reply, using deterministic ranking", "err", err)
		return aggregates[:limit]
	}

	selected := make([]*Selected, 0, limit)
	seen := make(map[string]bool)
	for _, id := range choice.TenderIDs {
		cand, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		selected = append(selected, cand)
		seen[id] = true
		if len(selected) == limit {
			break
		}
	}
	if len(selected) == 0 {
		return aggregates[:limit]
	}
	return selected
}

// fallback performs one direct concentration-based retrieval with the same
// outcome shape as the iterative loop.
func (s *IterativeSearcher) fallback(ctx context.Context, request string, limit int) *Outcome {
	s.logger.Info("model unavailable, using direct retrieval", "request", request)

	var candidates []*search.Candidate
	if limit == 1 {
		if best := s.finder.FindBest(ctx, request, nil); best != nil {
			candidates = []*search.Candidate{best}
		}
	} else {
		candidates = s.finder.FindTop(ctx, request, nil, limit)
	}

	selected := make([]*Selected, 0, len(candidates))
	for _, cand := range candidates {
		selected = append(selected, &Selected{
			RecordID:      cand.RecordID,
			Concentration: cand.Concentration,
		})
	}

	return &Outcome{
		Selected:   selected,
		Iterations: []*core.SearchIteration{},
		Reliable:   len(selected) > 0,
		Fallback:   true,
	}
}

// aggregateCandidates folds the transcript into one entry per distinct
// candidate and ranks them: best judge score, then concentration, then the
// number of distinct rounds the candidate appeared in, then earliest round.
func aggregateCandidates(iterations []*core.SearchIteration) []*Selected {
	byID := make(map[string]*Selected)
	firstRound := make(map[string]int)
	order := make([]string, 0, len(iterations))

	for _, iteration := range iterations {
		if iteration.NoResult {
			continue
		}
		cand, ok := byID[iteration.CandidateRecordID]
		if !ok {
			cand = &Selected{RecordID: iteration.CandidateRecordID}
			byID[iteration.CandidateRecordID] = cand
			firstRound[iteration.CandidateRecordID] = iteration.Number
			order = append(order, iteration.CandidateRecordID)
		}
		if iteration.Score > cand.JudgeScore {
			cand.JudgeScore = iteration.Score
		}
		if iteration.Concentration > cand.Concentration {
			cand.Concentration = iteration.Concentration
		}
		cand.Rounds = append(cand.Rounds, iteration.Number)
	}

	aggregates := make([]*Selected, 0, len(order))
	for _, id := range order {
		aggregates = append(aggregates, byID[id])
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		a, b := aggregates[i], aggregates[j]
		if a.JudgeScore != b.JudgeScore {
			return a.JudgeScore > b.JudgeScore
		}
		if a.Concentration != b.Concentration {
			return a.Concentration > b.Concentration
		}
		if len(a.Rounds) != len(b.Rounds) {
			return len(a.Rounds) > len(b.Rounds)
		}
		return firstRound[a.RecordID] < firstRound[b.RecordID]
	})

	return aggregates
}

// buildClarification assembles a clarification request from the judges'
// missing-information notes.
func buildClarification(iterations []*core.SearchIteration) string {
	seen := make(map[string]bool)
	var notes []string
	for _, iteration := range iterations {
		info := strings.TrimSpace(iteration.MissingInfo)
		if info == "" || seen[info] {
			continue
		}
		seen[info] = true
		notes = append(notes, info)
	}

	if len(notes) == 0 {
		return "No notice could be confirmed for this request. Please add detail such as the subject matter, region, budget range, or timeframe."
	}
	return "No notice could be confirmed for this request. It would help to clarify: " + strings.Join(notes, "; ")
}
