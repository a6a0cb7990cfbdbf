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


package chunk

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/tenderit/core"
)

const (
	// DefaultMaxChunkSize is the default sliding-window size in characters.
	DefaultMaxChunkSize = 1000

	// DefaultOverlap is the default overlap between consecutive description
	// chunks, in characters.
	DefaultOverlap = 100
)

// Chunker splits a notice into retrievable chunks.
type Chunker struct {
	maxChunkSize int
	overlap      int
	logger       *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithMaxChunkSize sets the sliding-window size for description splitting.
// Values below 1 are rejected.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) error {
		if size < 1 {
			return ErrInvalidChunkSize
		}
		c.maxChunkSize = size
		return nil
	}
}

// WithOverlap sets the overlap between consecutive description chunks.
// Negative values are rejected. An overlap at or above the chunk size is
// tolerated: the window start still strictly advances.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) error {
		if overlap < 0 {
			return ErrInvalidOverlap
		}
		c.overlap = overlap
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewChunker creates a chunker with the default window configuration.
func NewChunker(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		maxChunkSize: DefaultMaxChunkSize,
		overlap:      DefaultOverlap,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ChunkNotice decomposes a notice into an ordered list of chunks.
//
// Section order is fixed: title, description, lots, award criteria, budget,
// deadline, eligibility. A missing optional section produces zero chunks and
// is not an error. A malformed value inside one section (e.g. a negative lot
// budget) drops only that chunk; the rest of the pass continues.
func (c *Chunker) ChunkNotice(notice *core.Notice) []*core.Chunk {
	if notice == nil {
		return nil
	}

	meta := buildMetadata(notice)
	var chunks []*core.Chunk

	add := func(section, provenance, text string, index int) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		m := meta
		m.ProvenancePath = provenance
		chunkID := core.MakeChunkID(notice.RecordID, section, index)
		chunks = append(chunks, &core.Chunk{
			Id:         core.IDFromContent(chunkID),
			ChunkID:    chunkID,
			NoticeID:   notice.Id,
			RecordID:   notice.RecordID,
			Section:    section,
			ChunkIndex: index,
			Text:       text,
			Metadata:   m,
		})
	}

	// Title
	add(core.SectionTitle, "notice.title", notice.Title, 0)

	// Description: single chunk when short, sliding window otherwise
	if desc := strings.TrimSpace(notice.Description); desc != "" {
		for i, part := range c.splitText(desc) {
			add(core.SectionDescription, "notice.description", part, i)
		}
	}

	// Lots: one chunk each, skipping the placeholder "no lot" sentinel
	for _, lot := range notice.Lots {
		if isNoLotSentinel(lot) {
			continue
		}
		if lot.Budget < 0 {
			c.logger.Warn("skipping lot with malformed budget",
				"record", notice.RecordID, "lot", lot.Number)
			continue
		}
		budget := lot.Budget
		if budget == 0 {
			budget = notice.Budget
		}
		text := lotText(lot, budget, notice.Currency)
		add(core.LotSection(lot.Number),
			fmt.Sprintf("notice.lots[%d]", lot.Number), text, 0)
	}

	// Award criteria: one synthesized chunk listing every criterion
	if len(notice.AwardCriteria) > 0 {
		add(core.SectionAwardCriteria, "notice.award_criteria",
			awardCriteriaText(notice.AwardCriteria), 0)
	}

	// Budget
	if notice.Budget > 0 {
		add(core.SectionBudget, "notice.budget",
			budgetText(notice.Budget, notice.Currency), 0)
	}

	// Deadline
	if !notice.Deadline.IsZero() {
		add(core.SectionDeadline, "notice.deadline",
			"Submission deadline: "+notice.Deadline.Format("2006-01-02"), 0)
	}

	// Eligibility
	add(core.SectionEligibility, "notice.eligibility", notice.Eligibility, 0)

	return chunks
}

// splitText splits text into windows of at most maxChunkSize characters,
// preferring to break at the last whitespace inside the window. The next
// window restarts at end-overlap so consecutive windows overlap. The start
// position strictly advances every iteration, which guarantees termination
// even with a degenerate overlap configuration.
func (c *Chunker) splitText(text string) []string {
	runes := []rune(text)
	if len(runes) <= c.maxChunkSize {
		return []string{text}
	}

	var parts []string
	start := 0
	for start < len(runes) {
		end := start + c.maxChunkSize
		if end >= len(runes) {
			parts = append(parts, string(runes[start:]))
			break
		}

		// Break at the last whitespace inside the window; mid-word only
		// when the window contains no whitespace at all.
		if ws := lastWhitespace(runes[start:end]); ws > 0 {
			end = start + ws
		}

		parts = append(parts, string(runes[start:end]))

		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return parts
}

func lastWhitespace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case ' ', '\t', '\n', '\r':
			return i
		}
	}
	return -1
}

// isNoLotSentinel reports whether a lot is the upstream parser's placeholder
// for "notice has no lot division".
func isNoLotSentinel(lot core.Lot) bool {
	title := strings.TrimSpace(strings.ToLower(lot.Title))
	if title == "no lot" || title == "no lot division" {
		return true
	}
	return lot.Number <= 0 && title == "" && strings.TrimSpace(lot.Description) == ""
}

func lotText(lot core.Lot, budget float64, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lot %d: %s", lot.Number, strings.TrimSpace(lot.Title))
	if desc := strings.TrimSpace(lot.Description); desc != "" {
		b.WriteString(". ")
		b.WriteString(desc)
	}
	if budget > 0 {
		b.WriteString(". ")
		b.WriteString(budgetText(budget, currency))
	}
	return b.String()
}

func awardCriteriaText(criteria []core.AwardCriterion) string {
	var b strings.Builder
	b.WriteString("Award criteria:")
	for i, crit := range criteria {
		fmt.Fprintf(&b, " %d. %s (weight %g, %s);", i+1, crit.Name, crit.Weight, crit.Kind)
	}
	return strings.TrimSuffix(b.String(), ";")
}

func budgetText(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("Estimated budget: %.2f", amount)
	}
	return fmt.Sprintf("Estimated budget: %.2f %s", amount, currency)
}

// buildMetadata denormalizes notice-level fields onto chunk metadata.
// CPV codes are deduplicated preserving first appearance.
func buildMetadata(notice *core.Notice) core.ChunkMetadata {
	return core.ChunkMetadata{
		SourcePath:      notice.SourcePath,
		Buyer:           notice.Buyer,
		CPVCodes:        dedupe(notice.CPVCodes),
		NUTSRegions:     dedupe(notice.NUTSRegions),
		PublicationDate: notice.PublicationDate,
		Budget:          notice.Budget,
		Deadline:        notice.Deadline,
		ContractType:    notice.ContractType,
		ProcedureType:   notice.ProcedureType,
	}
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
