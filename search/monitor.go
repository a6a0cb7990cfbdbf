package search

import (
	"github.com/poiesic/tenderit/core"
)

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during retrieval.
type RetrievalMonitor interface {
	Start(query string, k int)
	AfterSimilaritySearch(candidates []*core.ScoredChunk)
	FilteredOut(candidate *core.ScoredChunk)
	Finish(results []*core.ScoredChunk)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)                       {}
func (n *noopMonitor) AfterSimilaritySearch(_ []*core.ScoredChunk) {}
func (n *noopMonitor) FilteredOut(_ *core.ScoredChunk)             {}
func (n *noopMonitor) Finish(_ []*core.ScoredChunk)                {}
