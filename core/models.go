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


package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk section names. Every chunk belongs to exactly one section of its
// parent notice. Lot sections are numbered ("lot_1", "lot_2", ...).
const (
	SectionTitle         = "title"
	SectionDescription   = "description"
	SectionAwardCriteria = "award_criteria"
	SectionBudget        = "budget"
	SectionDeadline      = "deadline"
	SectionEligibility   = "eligibility"
)

// LotSection returns the section name for a lot, 1-indexed.
func LotSection(number int) string {
	return fmt.Sprintf("lot_%d", number)
}

// Lot is a single lot of a procurement notice.
type Lot struct {
	Number      int
	Title       string
	Description string
	Budget      float64 // 0 means the lot inherits the notice budget
}

// AwardCriterion describes one award criterion of a notice with its weight.
type AwardCriterion struct {
	Name   string
	Weight float64
	Kind   string // e.g. "price", "quality"
}

// Notice is a structured procurement notice record as produced by an
// upstream parser. It is the unit of ingestion; retrieval operates on the
// chunks derived from it.
type Notice struct {
	Id              ID     // content hash of RecordID
	RecordID        string // stable external identifier, e.g. "TED-2025-104233"
	Title           string
	Description     string
	Buyer           string
	CPVCodes        []string
	NUTSRegions     []string
	PublicationDate time.Time
	Budget          float64 // 0 means not stated
	Currency        string
	Deadline        time.Time // zero means not stated
	Eligibility     string
	ContractType    string
	ProcedureType   string
	SourcePath      string
	Lots            []Lot
	AwardCriteria   []AwardCriterion
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// ChunkMetadata carries notice-level fields denormalized onto every chunk so
// that retrieval can filter without loading the parent notice. Fields copied
// from the same notice are identical across all of its chunks.
type ChunkMetadata struct {
	SourcePath      string
	Buyer           string
	CPVCodes        []string // deduplicated, original order preserved
	NUTSRegions     []string
	PublicationDate time.Time
	Budget          float64 // 0 means not stated
	Deadline        time.Time
	ContractType    string
	ProcedureType   string
	ProvenancePath  string // originating field, e.g. "notice.lots[2].description"
}

// Chunk is one retrievable unit of text derived from a notice.
//
// Chunks are immutable once created. Re-indexing a notice replaces all of its
// chunks atomically; chunks are never patched in place.
type Chunk struct {
	Id         ID     // content hash of ChunkID
	ChunkID    string // deterministic: "{record_id}_{section}_{index}"
	NoticeID   ID
	RecordID   string
	Section    string
	ChunkIndex int // 0-based position within the section's split
	Text       string
	Metadata   ChunkMetadata
	Vector     []float32 // embedding, populated during ingestion
	InsertedAt time.Time
}

// MakeChunkID builds the deterministic chunk identifier.
func MakeChunkID(recordID, section string, index int) string {
	return fmt.Sprintf("%s_%s_%d", recordID, section, index)
}

// ScoredChunk pairs a chunk with its similarity score from vector search.
// The pairing survives deduplication because the score travels with the
// value, not with object identity.
// Score convention: cosine similarity, higher is better.
type ScoredChunk struct {
	Chunk *Chunk
	Score float32
}

// SearchIteration records one round of an iterative search session:
// the query used, the concentration winner, and the judge's verdict.
// Iterations are append-only and discarded when the session ends.
type SearchIteration struct {
	Number            int
	Query             string
	CandidateID       ID
	CandidateRecordID string
	Concentration     int
	Similarity        float32
	Corresponds       bool
	Score             int // judge score, 0-10
	Reasoning         string
	MissingInfo       string
	NoResult          bool // true when retrieval produced no usable window
}
