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
	"strings"
	"time"

	"github.com/poiesic/tenderit/core"
)

// Filters constrains retrieval results by chunk metadata. Every field is
// optional; the zero value matches everything. Set fields compose with AND.
type Filters struct {
	// CPVCodes passes when any listed code is a prefix of any of the chunk's
	// CPV codes. Prefix matching on the parsed list, so "72" matches
	// "72000000" but not "45720000".
	CPVCodes []string

	// NUTSRegions passes when any listed region is a prefix of any of the
	// chunk's NUTS regions.
	NUTSRegions []string

	// Country passes when it is a prefix of any of the chunk's NUTS regions.
	// NUTS codes start with the two-letter country code.
	Country string

	// Buyer passes on a case-insensitive substring match against the buyer name.
	Buyer string

	// BudgetMin and BudgetMax bound the budget inclusively. A chunk without
	// a budget value fails any budget bound.
	BudgetMin *float64
	BudgetMax *float64

	// DeadlineFrom and DeadlineTo bound the submission deadline inclusively.
	// A chunk without a deadline fails any deadline bound.
	DeadlineFrom time.Time
	DeadlineTo   time.Time

	// PublicationFrom and PublicationTo bound the publication date inclusively.
	// A chunk without a publication date fails any publication bound.
	PublicationFrom time.Time
	PublicationTo   time.Time

	// ContractType and ProcedureType require an exact match.
	ContractType  string
	ProcedureType string
}

// IsZero reports whether no filter field is set.
func (f *Filters) IsZero() bool {
	if f == nil {
		return true
	}
	return len(f.CPVCodes) == 0 &&
		len(f.NUTSRegions) == 0 &&
		f.Country == "" &&
		f.Buyer == "" &&
		f.BudgetMin == nil &&
		f.BudgetMax == nil &&
		f.DeadlineFrom.IsZero() &&
		f.DeadlineTo.IsZero() &&
		f.PublicationFrom.IsZero() &&
		f.PublicationTo.IsZero() &&
		f.ContractType == "" &&
		f.ProcedureType == ""
}

// Matches reports whether the chunk metadata satisfies every set filter.
func (f *Filters) Matches(meta *core.ChunkMetadata) bool {
	if f == nil {
		return true
	}

	if len(f.CPVCodes) > 0 && !anyPrefixMatch(f.CPVCodes, meta.CPVCodes) {
		return false
	}
	if len(f.NUTSRegions) > 0 && !anyPrefixMatch(f.NUTSRegions, meta.NUTSRegions) {
		return false
	}
	if f.Country != "" && !anyPrefixMatch([]string{f.Country}, meta.NUTSRegions) {
		return false
	}
	if f.Buyer != "" && !strings.Contains(strings.ToLower(meta.Buyer), strings.ToLower(f.Buyer)) {
		return false
	}

	if f.BudgetMin != nil || f.BudgetMax != nil {
		if meta.Budget <= 0 {
			return false
		}
		if f.BudgetMin != nil && meta.Budget < *f.BudgetMin {
			return false
		}
		if f.BudgetMax != nil && meta.Budget > *f.BudgetMax {
			return false
		}
	}

	if !f.DeadlineFrom.IsZero() || !f.DeadlineTo.IsZero() {
		if meta.Deadline.IsZero() {
			return false
		}
		if !f.DeadlineFrom.IsZero() && meta.Deadline.Before(f.DeadlineFrom) {
			return false
		}
		if !f.DeadlineTo.IsZero() && meta.Deadline.After(f.DeadlineTo) {
			return false
		}
	}

	if !f.PublicationFrom.IsZero() || !f.PublicationTo.IsZero() {
		if meta.PublicationDate.IsZero() {
			return false
		}
		if !f.PublicationFrom.IsZero() && meta.PublicationDate.Before(f.PublicationFrom) {
			return false
		}
		if !f.PublicationTo.IsZero() && meta.PublicationDate.After(f.PublicationTo) {
			return false
		}
	}

	if f.ContractType != "" && meta.ContractType != f.ContractType {
		return false
	}
	if f.ProcedureType != "" && meta.ProcedureType != f.ProcedureType {
		return false
	}

	return true
}

// anyPrefixMatch reports whether any wanted value is a prefix of any
// candidate value. Comparisons trim surrounding whitespace.
func anyPrefixMatch(wanted, candidates []string) bool {
	for _, w := range wanted {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		for _, c := range candidates {
			if strings.HasPrefix(strings.TrimSpace(c), w) {
				return true
			}
		}
	}
	return false
}
