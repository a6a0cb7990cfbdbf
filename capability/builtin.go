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


package capability

import (
	"context"
	"errors"
	"time"

	"github.com/poiesic/tenderit/search"
	"github.com/poiesic/tenderit/storage"
)

// Builtin capability names.
const (
	CapSearchTenders   = "search_tenders"
	CapGetTenderDetail = "get_tender_detail"
	CapFindBestTender  = "find_best_tender"
	CapFindTopTenders  = "find_top_tenders"
)

const defaultSearchLimit = 5

// BuiltinDefinitions returns the standard tender capabilities. They read the
// registry's Retriever, Finder, and Notices collaborators.
func BuiltinDefinitions() []*Definition {
	return []*Definition{
		{
			Name:        CapSearchTenders,
			Description: "Search tender notices by natural-language query with optional metadata filters.",
			Category:    "search",
			Params: []Param{
				{Name: "query", Type: "string", Description: "natural-language search query", Required: true},
				{Name: "limit", Type: "int", Description: "maximum number of chunks to return"},
				{Name: "cpv_codes", Type: "[]string", Description: "CPV code prefixes"},
				{Name: "country", Type: "string", Description: "two-letter country code"},
				{Name: "buyer", Type: "string", Description: "buyer name fragment"},
				{Name: "budget_min", Type: "float", Description: "minimum budget"},
				{Name: "budget_max", Type: "float", Description: "maximum budget"},
				{Name: "contract_type", Type: "string", Description: "exact contract type"},
				{Name: "procedure_type", Type: "string", Description: "exact procedure type"},
			},
			Handler: searchTendersHandler,
		},
		{
			Name:        CapGetTenderDetail,
			Description: "Fetch the full stored notice for a tender record identifier.",
			Category:    "detail",
			Params: []Param{
				{Name: "tender_id", Type: "string", Description: "record identifier of the notice", Required: true},
			},
			Handler: getTenderDetailHandler,
		},
		{
			Name:        CapFindBestTender,
			Description: "Find the single notice best matching the query by chunk concentration.",
			Category:    "search",
			Params: []Param{
				{Name: "query", Type: "string", Description: "natural-language search query", Required: true},
			},
			Handler: findBestTenderHandler,
		},
		{
			Name:        CapFindTopTenders,
			Description: "Find up to limit distinct notices matching the query by chunk concentration.",
			Category:    "search",
			Params: []Param{
				{Name: "query", Type: "string", Description: "natural-language search query", Required: true},
				{Name: "limit", Type: "int", Description: "maximum number of notices", Required: true},
			},
			Handler: findTopTendersHandler,
		},
	}
}

func searchTendersHandler(ctx context.Context, deps *Deps, args map[string]any) *Result {
	if deps.Retriever == nil {
		return Failf("retriever not configured")
	}
	query := stringArg(args, "query")
	if query == "" {
		return Failf("query is required")
	}
	limit := intArg(args, "limit", defaultSearchLimit)

	filters := filtersFromArgs(args)
	chunks := deps.Retriever.RetrieveWithScores(ctx, query, filters, limit, -1)

	results := make([]map[string]any, 0, len(chunks))
	for _, sc := range chunks {
		results = append(results, map[string]any{
			"tender_id": sc.Chunk.RecordID,
			"section":   sc.Chunk.Section,
			"text":      sc.Chunk.Text,
			"score":     sc.Score,
		})
	}
	return Ok(map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func getTenderDetailHandler(ctx context.Context, deps *Deps, args map[string]any) *Result {
	if deps.Notices == nil {
		return Failf("notice repository not configured")
	}
	tenderID := stringArg(args, "tender_id")
	if tenderID == "" {
		return Failf("tender_id is required")
	}

	notice, err := deps.Notices.GetNoticeByRecordID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Failf("tender not found: %s", tenderID)
		}
		return Failf("lookup failed: %v", err)
	}

	lots := make([]map[string]any, 0, len(notice.Lots))
	for _, lot := range notice.Lots {
		lots = append(lots, map[string]any{
			"number":      lot.Number,
			"title":       lot.Title,
			"description": lot.Description,
			"budget":      lot.Budget,
		})
	}
	criteria := make([]map[string]any, 0, len(notice.AwardCriteria))
	for _, c := range notice.AwardCriteria {
		criteria = append(criteria, map[string]any{
			"name":   c.Name,
			"weight": c.Weight,
			"kind":   c.Kind,
		})
	}

	return Ok(map[string]any{
		"tender_id":        notice.RecordID,
		"title":            notice.Title,
		"description":      notice.Description,
		"buyer":            notice.Buyer,
		"cpv_codes":        notice.CPVCodes,
		"nuts_regions":     notice.NUTSRegions,
		"publication_date": formatDate(notice.PublicationDate),
		"budget":           notice.Budget,
		"currency":         notice.Currency,
		"deadline":         formatDate(notice.Deadline),
		"eligibility":      notice.Eligibility,
		"contract_type":    notice.ContractType,
		"procedure_type":   notice.ProcedureType,
		"lots":             lots,
		"award_criteria":   criteria,
	})
}

func findBestTenderHandler(ctx context.Context, deps *Deps, args map[string]any) *Result {
	if deps.Finder == nil {
		return Failf("finder not configured")
	}
	query := stringArg(args, "query")
	if query == "" {
		return Failf("query is required")
	}

	winner := deps.Finder.FindBest(ctx, query, filtersFromArgs(args))
	if winner == nil {
		return Failf("no matching tender found")
	}
	return Ok(candidateData(winner))
}

func findTopTendersHandler(ctx context.Context, deps *Deps, args map[string]any) *Result {
	if deps.Finder == nil {
		return Failf("finder not configured")
	}
	query := stringArg(args, "query")
	if query == "" {
		return Failf("query is required")
	}
	limit := intArg(args, "limit", 0)
	if limit <= 0 {
		return Failf("limit must be positive")
	}

	candidates := deps.Finder.FindTop(ctx, query, filtersFromArgs(args), limit)
	entries := make([]map[string]any, 0, len(candidates))
	for _, cand := range candidates {
		entries = append(entries, candidateData(cand))
	}
	return Ok(map[string]any{
		"tenders":   entries,
		"count":     len(entries),
		"requested": limit,
	})
}

func candidateData(cand *search.Candidate) map[string]any {
	return map[string]any{
		"tender_id":     cand.RecordID,
		"concentration": cand.Concentration,
		"best_score":    cand.BestScore,
	}
}

// filtersFromArgs maps the optional filter arguments onto a search.Filters.
// Unset arguments leave the corresponding filter unset.
func filtersFromArgs(args map[string]any) *search.Filters {
	filters := &search.Filters{
		CPVCodes:      stringListArg(args, "cpv_codes"),
		Country:       stringArg(args, "country"),
		Buyer:         stringArg(args, "buyer"),
		ContractType:  stringArg(args, "contract_type"),
		ProcedureType: stringArg(args, "procedure_type"),
	}
	if v, ok := floatArg(args, "budget_min"); ok {
		filters.BudgetMin = &v
	}
	if v, ok := floatArg(args, "budget_max"); ok {
		filters.BudgetMax = &v
	}
	if filters.IsZero() {
		return nil
	}
	return filters
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Argument coercion helpers. Arguments often arrive from parsed JSON, so
// numbers may be float64.

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func floatArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func stringListArg(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
