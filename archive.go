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


package tenderit

import (
	"io"
	"log/slog"

	"github.com/poiesic/tenderit/agent"
	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/ai/openai"
	"github.com/poiesic/tenderit/capability"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/ingestion"
	"github.com/poiesic/tenderit/reindex"
	"github.com/poiesic/tenderit/search"
	"github.com/poiesic/tenderit/storage"
	"github.com/poiesic/tenderit/storage/badger"
)

// Archive is the top-level handle on a tender store. It owns the storage
// backend and the AI provider, and acts as a factory for the pipelines,
// retrievers, and searchers that operate on the store.
type Archive struct {
	backend    *badger.Backend
	noticeRepo storage.NoticeRepository
	chunkRepo  storage.ChunkRepository
	provider   ai.AIProvider
	logger     *slog.Logger
}

// ArchiveOption configures an Archive.
type ArchiveOption func(*archiveOptions)

type archiveOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) ArchiveOption {
	return func(o *archiveOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// NewArchive opens (or creates) a tender archive at the given path.
func NewArchive(filePath string, opts ...ArchiveOption) (*Archive, error) {
	// Apply options
	options := &archiveOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create notice repository
	noticeRepo, err := badger.NewNoticeRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create chunk repository
	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		noticeRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		chunkRepo.Close()
		noticeRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Archive{
		backend:    backend,
		noticeRepo: noticeRepo,
		chunkRepo:  chunkRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

func (a *Archive) Close() error {
	// Close AI provider first
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := a.chunkRepo.Close(); err != nil {
		a.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := a.noticeRepo.Close(); err != nil {
		a.logger.Error("error closing notice repository", "err", err)
		return err
	}

	// Close backend
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *Archive) NoticeRepository() storage.NoticeRepository {
	return a.noticeRepo
}

func (a *Archive) ChunkRepository() storage.ChunkRepository {
	return a.chunkRepo
}

func (a *Archive) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(a.noticeRepo, a.chunkRepo, a.provider, opts...)
}

func (a *Archive) NewRetriever(opts ...search.Option) (*search.Retriever, error) {
	return search.NewRetriever(a.chunkRepo, a.provider, opts...)
}

func (a *Archive) NewFinder(opts ...search.FinderOption) (*search.Finder, error) {
	retriever, err := a.NewRetriever()
	if err != nil {
		return nil, err
	}
	return search.NewFinder(retriever, opts...)
}

// NewSearcher wires a full iterative searcher: retriever, finder, the
// builtin capability registry, and the archive's chat model.
func (a *Archive) NewSearcher(opts ...agent.Option) (*agent.IterativeSearcher, error) {
	retriever, err := a.NewRetriever()
	if err != nil {
		return nil, err
	}
	finder, err := search.NewFinder(retriever)
	if err != nil {
		return nil, err
	}

	registry, err := capability.NewRegistry(&capability.Deps{
		Retriever: retriever,
		Finder:    finder,
		Notices:   a.noticeRepo,
		Model:     a.provider.ChatModel(),
	}, capability.BuiltinDefinitions())
	if err != nil {
		return nil, err
	}

	return agent.NewIterativeSearcher(finder, registry, a.provider.ChatModel(), opts...)
}

// NewReindexer builds a reindexer that rebuilds every notice's chunks with
// the archive's embedder.
func (a *Archive) NewReindexer(config *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	chunker, err := chunk.NewChunker()
	if err != nil {
		return nil, err
	}
	return reindex.NewReindexer(a.noticeRepo, a.chunkRepo, chunker, a.provider.Embedder(), config, progress), nil
}
