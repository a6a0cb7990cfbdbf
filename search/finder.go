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


package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/tenderit/core"
)

// ConcentrationWindow is the number of top chunks analyzed when picking a
// winning notice by chunk concentration.
const ConcentrationWindow = 7

// Candidate is a notice selected by concentration analysis.
type Candidate struct {
	// RecordID identifies the winning notice.
	RecordID string

	// NoticeID is the storage identifier of the winning notice.
	NoticeID core.ID

	// Concentration is the number of the notice's chunks inside the
	// analyzed window.
	Concentration int

	// BestScore is the best similarity score among the notice's chunks
	// in the window.
	BestScore float32

	// FirstIndex is the position of the notice's earliest chunk in the
	// ranked window.
	FirstIndex int

	// Chunks holds the notice's chunks from the window, in ranked order.
	Chunks []*core.ScoredChunk
}

// Finder selects whole notices from chunk-level retrieval results using
// concentration analysis: the notice with the most chunks in the top-ranked
// window wins.
type Finder struct {
	retriever *Retriever
	logger    *slog.Logger
}

// NewFinder creates a new finder on top of the given retriever.
func NewFinder(retriever *Retriever, opts ...FinderOption) (*Finder, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	f := &Finder{
		retriever: retriever,
		logger:    slog.Default().With("component", "finder"),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// FinderOption configures a Finder.
type FinderOption func(*Finder) error

// WithFinderLogger sets a custom logger.
// Default is slog.Default().
func WithFinderLogger(logger *slog.Logger) FinderOption {
	return func(f *Finder) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// FindBest retrieves the top chunks for the query and returns the notice
// with the highest chunk concentration. Ties go to the better similarity
// score, then to the earliest appearance in the ranked list.
//
// Returns nil when retrieval produced no chunks.
func (f *Finder) FindBest(ctx context.Context, query string, filters *Filters) *Candidate {
	scored := f.retriever.RetrieveWithScores(ctx, query, filters, ConcentrationWindow, unboundedSimilarity)
	if len(scored) == 0 {
		f.logger.Debug("no chunks retrieved", "query", query)
		return nil
	}

	winner := concentrationWinner(scored)
	f.logger.Debug("concentration winner",
		"query", query,
		"record", winner.RecordID,
		"concentration", winner.Concentration,
		"bestScore", winner.BestScore)
	return winner
}

// FindTop retrieves limit * ConcentrationWindow chunks once and repeatedly
// applies concentration analysis: take the top window of the remaining pool,
// pick its winner, remove all of that notice's chunks from the pool, repeat.
// Stops when limit notices are selected or the pool has fewer chunks than
// one window. The returned list may be shorter than limit; it never contains
// the same notice twice.
func (f *Finder) FindTop(ctx context.Context, query string, filters *Filters, limit int) []*Candidate {
	if limit <= 0 {
		return []*Candidate{}
	}

	pool := f.retriever.RetrieveWithScores(ctx, query, filters, limit*ConcentrationWindow, unboundedSimilarity)

	results := make([]*Candidate, 0, limit)
	for len(results) < limit && len(pool) >= ConcentrationWindow {
		window := pool[:ConcentrationWindow]
		winner := concentrationWinner(window)
		results = append(results, winner)

		// Drop every chunk of the selected notice, not just the window's
		remaining := pool[:0]
		for _, sc := range pool {
			if sc.Chunk.RecordID != winner.RecordID {
				remaining = append(remaining, sc)
			}
		}
		pool = remaining
	}

	if len(results) < limit {
		f.logger.Info("fewer notices than requested",
			"query", query,
			"requested", limit,
			"found", len(results))
	}
	return results
}

// concentrationWinner groups the ranked chunks by originating notice and
// picks the winner: highest chunk count, then better similarity score, then
// earliest appearance in the ranked list.
func concentrationWinner(scored []*core.ScoredChunk) *Candidate {
	byRecord := make(map[string]*Candidate)
	order := make([]string, 0, len(scored))

	for i, sc := range scored {
		cand, ok := byRecord[sc.Chunk.RecordID]
		if !ok {
			cand = &Candidate{
				RecordID:   sc.Chunk.RecordID,
				NoticeID:   sc.Chunk.NoticeID,
				BestScore:  sc.Score,
				FirstIndex: i,
			}
			byRecord[sc.Chunk.RecordID] = cand
			order = append(order, sc.Chunk.RecordID)
		}
		cand.Concentration++
		if sc.Score > cand.BestScore {
			cand.BestScore = sc.Score
		}
		cand.Chunks = append(cand.Chunks, sc)
	}

	var winner *Candidate
	for _, recordID := range order {
		cand := byRecord[recordID]
		if winner == nil || betterCandidate(cand, winner) {
			winner = cand
		}
	}
	return winner
}

// betterCandidate reports whether a should be preferred over b.
// Iteration follows first-appearance order, so the FirstIndex tie-break is
// implicit: a strictly later candidate only wins on count or score.
func betterCandidate(a, b *Candidate) bool {
	if a.Concentration != b.Concentration {
		return a.Concentration > b.Concentration
	}
	return a.BestScore > b.BestScore
}
