package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

const (
	// overfetchFactor is how many candidates are pulled from the vector
	// store per requested result, so post-hoc filtering still has enough
	// material to fill k slots.
	overfetchFactor = 3

	// unboundedSimilarity passes every chunk through the vector scan.
	// Cosine similarity never goes below -1.
	unboundedSimilarity = float32(-1.0)
)

// Retriever provides hybrid retrieval over notice chunks: vector similarity
// search combined with structured metadata filtering.
type Retriever struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	monitor         RetrievalMonitor
	logger          *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMonitor sets a monitor that observes each retrieval.
// Default is a no-op monitor.
func WithMonitor(monitor RetrievalMonitor) Option {
	return func(r *Retriever) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Retriever, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		monitor:         &noopMonitor{},
		logger:          slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to k chunks for the query, ranked by similarity and
// constrained by the filters. A nil filters value applies no constraints.
//
// Collaborator failures are logged and produce an empty result; an empty
// result is a valid outcome, not a failure signal.
func (r *Retriever) Retrieve(ctx context.Context, query string, filters *Filters, k int) []*core.Chunk {
	scored := r.RetrieveWithScores(ctx, query, filters, k, unboundedSimilarity)
	chunks := make([]*core.Chunk, 0, len(scored))
	for _, sc := range scored {
		chunks = append(chunks, sc.Chunk)
	}
	return chunks
}

// RetrieveWithScores returns up to k scored chunks for the query. Candidates
// scoring below minScore are dropped before filtering. The score travels with
// its chunk through the filter step, so the pairing is never lost.
func (r *Retriever) RetrieveWithScores(ctx context.Context, query string, filters *Filters, k int, minScore float32) []*core.ScoredChunk {
	if k <= 0 {
		return []*core.ScoredChunk{}
	}

	r.monitor.Start(query, k)

	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return []*core.ScoredChunk{}
	}

	candidates, err := r.chunkRepository.FindSimilar(ctx, embedding, minScore, overfetchFactor*k)
	if err != nil {
		r.logger.Error("error querying for similar chunks", "err", err)
		return []*core.ScoredChunk{}
	}
	r.monitor.AfterSimilaritySearch(candidates)

	results := make([]*core.ScoredChunk, 0, k)
	for _, candidate := range candidates {
		if !filters.Matches(&candidate.Chunk.Metadata) {
			r.monitor.FilteredOut(candidate)
			continue
		}
		results = append(results, candidate)
		if len(results) == k {
			break
		}
	}

	r.logger.Debug("retrieval complete",
		"query", query,
		"candidates", len(candidates),
		"results", len(results))
	r.monitor.Finish(results)

	return results
}
