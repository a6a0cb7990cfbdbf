// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice0d0l3jU0ΣHhDKuqVvfΔ3BwΞΞ = ord.NewSliceSer[AwardCriterion](AwardCriterionMUS)
	sliceBXzΣcSJqCbudY13snyde5AΞΞ = ord.NewSliceSer[string](ord.String)
	sliceOfmEm2znMhSxn2zoi6pyVwΞΞ = ord.NewSliceSer[Lot](LotMUS)
	slicerAk6wXbt8SwRYprkisqRBAΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var LotMUS = lotMUS{}

type lotMUS struct{}

func (s lotMUS) Marshal(v Lot, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Number, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	return n + varint.Float64.Marshal(v.Budget, bs[n:])
}

func (s lotMUS) Unmarshal(bs []byte) (v Lot, n int, err error) {
	v.Number, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Budget, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s lotMUS) Size(v Lot) (size int) {
	size = varint.Int.Size(v.Number)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	return size + varint.Float64.Size(v.Budget)
}

func (s lotMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	return
}

var AwardCriterionMUS = awardCriterionMUS{}

type awardCriterionMUS struct{}

func (s awardCriterionMUS) Marshal(v AwardCriterion, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += varint.Float64.Marshal(v.Weight, bs[n:])
	return n + ord.String.Marshal(v.Kind, bs[n:])
}

func (s awardCriterionMUS) Unmarshal(bs []byte) (v AwardCriterion, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Weight, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Kind, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s awardCriterionMUS) Size(v AwardCriterion) (size int) {
	size = ord.String.Size(v.Name)
	size += varint.Float64.Size(v.Weight)
	return size + ord.String.Size(v.Kind)
}

func (s awardCriterionMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var ChunkMetadataMUS = chunkMetadataMUS{}

type chunkMetadataMUS struct{}

func (s chunkMetadataMUS) Marshal(v ChunkMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.SourcePath, bs)
	n += ord.String.Marshal(v.Buyer, bs[n:])
	n += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Marshal(v.CPVCodes, bs[n:])
	n += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Marshal(v.NUTSRegions, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.PublicationDate, bs[n:])
	n += varint.Float64.Marshal(v.Budget, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Deadline, bs[n:])
	n += ord.String.Marshal(v.ContractType, bs[n:])
	n += ord.String.Marshal(v.ProcedureType, bs[n:])
	return n + ord.String.Marshal(v.ProvenancePath, bs[n:])
}

func (s chunkMetadataMUS) Unmarshal(bs []byte) (v ChunkMetadata, n int, err error) {
	v.SourcePath, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Buyer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CPVCodes, n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NUTSRegions, n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PublicationDate, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Budget, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Deadline, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContractType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcedureType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProvenancePath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMetadataMUS) Size(v ChunkMetadata) (size int) {
	size = ord.String.Size(v.SourcePath)
	size += ord.String.Size(v.Buyer)
	size += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Size(v.CPVCodes)
	size += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Size(v.NUTSRegions)
	size += raw.TimeUnixMicro.Size(v.PublicationDate)
	size += varint.Float64.Size(v.Budget)
	size += raw.TimeUnixMicro.Size(v.Deadline)
	size += ord.String.Size(v.ContractType)
	size += ord.String.Size(v.ProcedureType)
	return size + ord.String.Size(v.ProvenancePath)
}

func (s chunkMetadataMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var NoticeMUS = noticeMUS{}

type noticeMUS struct{}

func (s noticeMUS) Marshal(v Notice, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.RecordID, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Buyer, bs[n:])
	n += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Marshal(v.CPVCodes, bs[n:])
	n += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Marshal(v.NUTSRegions, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.PublicationDate, bs[n:])
	n += varint.Float64.Marshal(v.Budget, bs[n:])
	n += ord.String.Marshal(v.Currency, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Deadline, bs[n:])
	n += ord.String.Marshal(v.Eligibility, bs[n:])
	n += ord.String.Marshal(v.ContractType, bs[n:])
	n += ord.String.Marshal(v.ProcedureType, bs[n:])
	n += ord.String.Marshal(v.SourcePath, bs[n:])
	n += sliceOfmEm2znMhSxn2zoi6pyVwΞΞ.Marshal(v.Lots, bs[n:])
	n += slice0d0l3jU0ΣHhDKuqVvfΔ3BwΞΞ.Marshal(v.AwardCriteria, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s noticeMUS) Unmarshal(bs []byte) (v Notice, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.RecordID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Buyer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CPVCodes, n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NUTSRegions, n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PublicationDate, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Budget, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Currency, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Deadline, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Eligibility, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContractType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcedureType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourcePath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Lots, n1, err = sliceOfmEm2znMhSxn2zoi6pyVwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AwardCriteria, n1, err = slice0d0l3jU0ΣHhDKuqVvfΔ3BwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s noticeMUS) Size(v Notice) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.RecordID)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Buyer)
	size += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Size(v.CPVCodes)
	size += sliceBXzΣcSJqCbudY13snyde5AΞΞ.Size(v.NUTSRegions)
	size += raw.TimeUnixMicro.Size(v.PublicationDate)
	size += varint.Float64.Size(v.Budget)
	size += ord.String.Size(v.Currency)
	size += raw.TimeUnixMicro.Size(v.Deadline)
	size += ord.String.Size(v.Eligibility)
	size += ord.String.Size(v.ContractType)
	size += ord.String.Size(v.ProcedureType)
	size += ord.String.Size(v.SourcePath)
	size += sliceOfmEm2znMhSxn2zoi6pyVwΞΞ.Size(v.Lots)
	size += slice0d0l3jU0ΣHhDKuqVvfΔ3BwΞΞ.Size(v.AwardCriteria)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s noticeMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceBXzΣcSJqCbudY13snyde5AΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceOfmEm2znMhSxn2zoi6pyVwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice0d0l3jU0ΣHhDKuqVvfΔ3BwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ChunkID, bs[n:])
	n += IDMUS.Marshal(v.NoticeID, bs[n:])
	n += ord.String.Marshal(v.RecordID, bs[n:])
	n += ord.String.Marshal(v.Section, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ChunkMetadataMUS.Marshal(v.Metadata, bs[n:])
	n += slicerAk6wXbt8SwRYprkisqRBAΞΞ.Marshal(v.Vector, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ChunkID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NoticeID, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RecordID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Section, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = ChunkMetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicerAk6wXbt8SwRYprkisqRBAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.ChunkID)
	size += IDMUS.Size(v.NoticeID)
	size += ord.String.Size(v.RecordID)
	size += ord.String.Size(v.Section)
	size += varint.Int.Size(v.ChunkIndex)
	size += ord.String.Size(v.Text)
	size += ChunkMetadataMUS.Size(v.Metadata)
	size += slicerAk6wXbt8SwRYprkisqRBAΞΞ.Size(v.Vector)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkMetadataMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicerAk6wXbt8SwRYprkisqRBAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
