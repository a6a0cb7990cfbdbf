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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/tenderit"
	"github.com/poiesic/tenderit/agent"
	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/ai/openai"
	"github.com/poiesic/tenderit/chunk"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/reindex"
	"github.com/poiesic/tenderit/search"
	"github.com/poiesic/tenderit/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	aiFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for embeddings and chat",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name for query refinement and judging",
			Value: "qwen2.5:3b",
		},
	}
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the archive directory",
		Required: true,
	}
	filterFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "cpv",
			Usage: "Comma-separated CPV code prefixes to require",
		},
		&cli.StringFlag{
			Name:  "nuts",
			Usage: "Comma-separated NUTS region prefixes to require",
		},
		&cli.StringFlag{
			Name:  "country",
			Usage: "Required country prefix of the notice's NUTS regions",
		},
		&cli.StringFlag{
			Name:  "buyer",
			Usage: "Required buyer name substring (case-insensitive)",
		},
		&cli.Float64Flag{
			Name:  "budget-min",
			Usage: "Minimum notice budget",
		},
		&cli.Float64Flag{
			Name:  "budget-max",
			Usage: "Maximum notice budget",
		},
		&cli.StringFlag{
			Name:  "contract-type",
			Usage: "Required contract type (exact match)",
		},
		&cli.StringFlag{
			Name:  "procedure-type",
			Usage: "Required procedure type (exact match)",
		},
	}

	app := &cli.App{
		Name:  "tenderit",
		Usage: "Semantic retrieval system for public procurement notices",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Index procurement notices from a JSON file",
				Action: indexCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON file holding an array of notices",
						Required: true,
					},
				}, aiFlags...),
			},
			{
				Name:   "search",
				Usage:  "Search indexed notice chunks by semantic similarity",
				Action: searchCommand,
				Flags: append(append([]cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Maximum number of chunks to return",
						Value:   10,
					},
				}, filterFlags...), aiFlags...),
			},
			{
				Name:   "find",
				Usage:  "Find the notices a query concentrates on",
				Action: findCommand,
				Flags: append(append([]cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of notices to return",
						Value: 1,
					},
				}, filterFlags...), aiFlags...),
			},
			{
				Name:   "ask",
				Usage:  "Run an iterative search session for a free-form request",
				Action: askCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "rounds",
						Usage: "Number of search-verify rounds",
						Value: agent.DefaultRounds,
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of notices to converge on",
						Value: 1,
					},
				}, aiFlags...),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild chunks and embeddings for all stored notices",
				Action: reindexCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of notices to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N notices",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// noticeInput is the JSON shape accepted by the index command. Dates accept
// either "2006-01-02" or RFC 3339.
type noticeInput struct {
	RecordID        string   `json:"record_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Buyer           string   `json:"buyer"`
	CPVCodes        []string `json:"cpv_codes"`
	NUTSRegions     []string `json:"nuts_regions"`
	PublicationDate string   `json:"publication_date"`
	Budget          float64  `json:"budget"`
	Currency        string   `json:"currency"`
	Deadline        string   `json:"deadline"`
	Eligibility     string   `json:"eligibility"`
	ContractType    string   `json:"contract_type"`
	ProcedureType   string   `json:"procedure_type"`
	SourcePath      string   `json:"source_path"`
	Lots            []struct {
		Number      int     `json:"number"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Budget      float64 `json:"budget"`
	} `json:"lots"`
	AwardCriteria []struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
		Kind   string  `json:"kind"`
	} `json:"award_criteria"`
}

func (in *noticeInput) toNotice() (*core.Notice, error) {
	publication, err := parseDate(in.PublicationDate)
	if err != nil {
		return nil, fmt.Errorf("notice %s: invalid publication_date: %w", in.RecordID, err)
	}
	deadline, err := parseDate(in.Deadline)
	if err != nil {
		return nil, fmt.Errorf("notice %s: invalid deadline: %w", in.RecordID, err)
	}

	notice := &core.Notice{
		RecordID:        in.RecordID,
		Title:           in.Title,
		Description:     in.Description,
		Buyer:           in.Buyer,
		CPVCodes:        in.CPVCodes,
		NUTSRegions:     in.NUTSRegions,
		PublicationDate: publication,
		Budget:          in.Budget,
		Currency:        in.Currency,
		Deadline:        deadline,
		Eligibility:     in.Eligibility,
		ContractType:    in.ContractType,
		ProcedureType:   in.ProcedureType,
		SourcePath:      in.SourcePath,
	}
	for _, lot := range in.Lots {
		notice.Lots = append(notice.Lots, core.Lot{
			Number:      lot.Number,
			Title:       lot.Title,
			Description: lot.Description,
			Budget:      lot.Budget,
		})
	}
	for _, criterion := range in.AwardCriteria {
		notice.AwardCriteria = append(notice.AwardCriteria, core.AwardCriterion{
			Name:   criterion.Name,
			Weight: criterion.Weight,
			Kind:   criterion.Kind,
		})
	}
	return notice, nil
}

// parseDate accepts an empty string (zero time), "2006-01-02", or RFC 3339.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// splitCSV splits a comma-separated flag value, trimming blanks.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// buildFilters assembles metadata filters from command flags. Returns nil
// when no filter flag was set.
func buildFilters(c *cli.Context) *search.Filters {
	filters := &search.Filters{
		CPVCodes:      splitCSV(c.String("cpv")),
		NUTSRegions:   splitCSV(c.String("nuts")),
		Country:       c.String("country"),
		Buyer:         c.String("buyer"),
		ContractType:  c.String("contract-type"),
		ProcedureType: c.String("procedure-type"),
	}
	if c.IsSet("budget-min") {
		min := c.Float64("budget-min")
		filters.BudgetMin = &min
	}
	if c.IsSet("budget-max") {
		max := c.Float64("budget-max")
		filters.BudgetMax = &max
	}
	if filters.IsZero() {
		return nil
	}
	return filters
}

func openArchive(c *cli.Context) (*tenderit.Archive, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return tenderit.NewArchive(c.String("db"), tenderit.WithAIConfig(config))
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var inputs []noticeInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("input file holds no notices")
	}

	notices := make([]*core.Notice, 0, len(inputs))
	for i := range inputs {
		notice, err := inputs[i].toNotice()
		if err != nil {
			return err
		}
		notices = append(notices, notice)
	}

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	pipeline, err := archive.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	added, err := pipeline.IndexSync(ctx, notices...)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("Indexed %d notices.\n", len(added))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	retriever, err := archive.NewRetriever()
	if err != nil {
		return err
	}

	results := retriever.Retrieve(context.Background(), query, buildFilters(c), c.Int("limit"))
	if len(results) == 0 {
		fmt.Println("No matching chunks found.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%2d. [%s] %s\n    %s\n", i+1, result.RecordID, result.Section, result.Text)
	}
	return nil
}

func findCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	finder, err := archive.NewFinder()
	if err != nil {
		return err
	}

	candidates := finder.FindTop(context.Background(), query, buildFilters(c), c.Int("top"))
	if len(candidates) == 0 {
		fmt.Println("No matching notices found.")
		return nil
	}

	for i, candidate := range candidates {
		fmt.Printf("%2d. %s (concentration %d, best similarity %.3f)\n",
			i+1, candidate.RecordID, candidate.Concentration, candidate.BestScore)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("a request is required")
	}
	request := strings.Join(c.Args().Slice(), " ")

	archive, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	searcher, err := archive.NewSearcher(agent.WithRounds(c.Int("rounds")))
	if err != nil {
		return err
	}

	outcome := searcher.FindTop(context.Background(), request, c.Int("top"))

	for _, iteration := range outcome.Iterations {
		if iteration.NoResult {
			fmt.Printf("round %d: %q -> no result\n", iteration.Number, iteration.Query)
			continue
		}
		fmt.Printf("round %d: %q -> %s (corresponds=%t, score=%d)\n",
			iteration.Number, iteration.Query, iteration.CandidateRecordID,
			iteration.Corresponds, iteration.Score)
	}

	if len(outcome.Selected) == 0 {
		fmt.Println("\nNo notice selected.")
	} else {
		fmt.Println("\nSelected:")
		for i, selected := range outcome.Selected {
			fmt.Printf("%2d. %s (judge score %d, concentration %d)\n",
				i+1, selected.RecordID, selected.JudgeScore, selected.Concentration)
		}
	}

	if !outcome.Reliable {
		fmt.Printf("\nLow confidence. %s\n", outcome.Clarification)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("archive path is required")
	}

	// Open archive storage
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer backend.Close()

	noticeRepo, err := badger.NewNoticeRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create notice repository: %w", err)
	}
	defer noticeRepo.Close()

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create chunk repository: %w", err)
	}
	defer chunkRepo.Close()

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Create embedder
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	chunker, err := chunk.NewChunker()
	if err != nil {
		return fmt.Errorf("failed to create chunker: %w", err)
	}

	// Create reindexing config
	reindexConfig := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if reindexConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reindexConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reindexConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	// Create reindexer
	reindexer := reindex.NewReindexer(noticeRepo, chunkRepo, chunker, embedder, reindexConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Archive: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
