// Copyright 2022 AxionDB Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package column

import (
	"github.com/axiondb/axion/pkg/container/types"
)

// ValueIterator is the evaluation contract every iterator satisfies: At is a
// pure function of the index-vector slot, finite and restartable, safe to
// evaluate out of order or concurrently. Kernels take concrete iterator
// types as generic parameters, so the call binds at instantiation instead of
// going through an interface table in the hot loop.
type ValueIterator[T any] interface {
	At(i int) (v T, valid bool)
}

// Iterator reads a fixed-width column slice through the row index vector:
// slot i resolves to batch row indexVector[i], then to the slice-relative
// row by subtracting the call's startRow.
type Iterator[T types.ElemT] struct {
	slice       *Slice
	indexVector []uint32
	startRow    uint32
	def         T
	defValid    bool
	absent      bool
}

func NewIterator[T types.ElemT](s *Slice, indexVector []uint32, startRow uint32) Iterator[T] {
	it := Iterator[T]{slice: s, indexVector: indexVector, startRow: startRow}
	if s.Base == nil {
		it.absent = true
		it.defValid = s.Default.Valid
		if s.Default.Valid {
			it.def = types.GetFixedValue[T](s.Default)
		}
	}
	return it
}

func (it Iterator[T]) At(i int) (T, bool) {
	if it.absent {
		return it.def, it.defValid
	}
	row := int(it.indexVector[i] - it.startRow)
	if !nullAt(it.slice, row) {
		var z T
		return z, false
	}
	return valueAt[T](it.slice, row), true
}

// BoolIterator is the bit-packed counterpart of Iterator for bool columns.
type BoolIterator struct {
	slice       *Slice
	indexVector []uint32
	startRow    uint32
	def         bool
	defValid    bool
	absent      bool
}

func NewBoolIterator(s *Slice, indexVector []uint32, startRow uint32) BoolIterator {
	it := BoolIterator{slice: s, indexVector: indexVector, startRow: startRow}
	if s.Base == nil {
		it.absent = true
		it.defValid = s.Default.Valid
		if s.Default.Valid {
			it.def = types.GetFixedValue[bool](s.Default)
		}
	}
	return it
}

func (it BoolIterator) At(i int) (bool, bool) {
	if it.absent {
		return it.def, it.defValid
	}
	row := int(it.indexVector[i] - it.startRow)
	if !nullAt(it.slice, row) {
		return false, false
	}
	return boolAt(it.slice, row), true
}

// ConstIterator yields one (value, valid) pair for every slot.
type ConstIterator[T any] struct {
	val   T
	valid bool
}

func NewConstIterator[T any](v T, valid bool) ConstIterator[T] {
	return ConstIterator[T]{val: v, valid: valid}
}

func (it ConstIterator[T]) At(int) (T, bool) {
	return it.val, it.valid
}

// ScratchIterator reads an intermediate result positionally: scratch vectors
// are already aligned to the current index-vector order.
type ScratchIterator[T types.ElemT] struct {
	values []T
	nulls  []uint8
}

func NewScratchIterator[T types.ElemT](sv *ScratchVector) ScratchIterator[T] {
	return ScratchIterator[T]{
		values: types.DecodeSlice[T](sv.Values),
		nulls:  sv.Nulls,
	}
}

func (it ScratchIterator[T]) At(i int) (T, bool) {
	return it.values[i], it.nulls[i] != 0
}

// ForeignIterator joins slot i through RecordIDs[i] into one of the upstream
// batches. A RecordID outside the populated range (unknown batch, or a row
// at or past NumRecordsInLastBatch in the final batch) yields the configured
// default, or null when none is configured. The batch resolution is a single
// array index per element, never a loop.
type ForeignIterator[T types.ElemT] struct {
	recordIDs        []types.RecordID
	batches          []Slice
	baseBatchID      int32
	numBatches       int32
	lastBatchRecords int32
	def              T
	defValid         bool
}

func NewForeignIterator[T types.ElemT](fc *ForeignColumn) ForeignIterator[T] {
	it := ForeignIterator[T]{
		recordIDs:        fc.RecordIDs,
		batches:          fc.Batches,
		baseBatchID:      fc.BaseBatchID,
		numBatches:       int32(len(fc.Batches)),
		lastBatchRecords: fc.NumRecordsInLastBatch,
		defValid:         fc.Default.Valid,
	}
	if fc.Default.Valid {
		it.def = types.GetFixedValue[T](fc.Default)
	}
	return it
}

func (it ForeignIterator[T]) At(i int) (T, bool) {
	r := it.recordIDs[i]
	b := r.BatchID - it.baseBatchID
	if b >= 0 && b < it.numBatches &&
		(b != it.numBatches-1 || int32(r.Index) < it.lastBatchRecords) {
		s := &it.batches[b]
		if !nullAt(s, int(r.Index)) {
			var z T
			return z, false
		}
		return valueAt[T](s, int(r.Index)), true
	}
	return it.def, it.defValid
}

// ForeignBoolIterator is the bit-packed counterpart of ForeignIterator.
type ForeignBoolIterator struct {
	recordIDs        []types.RecordID
	batches          []Slice
	baseBatchID      int32
	numBatches       int32
	lastBatchRecords int32
	def              bool
	defValid         bool
}

func NewForeignBoolIterator(fc *ForeignColumn) ForeignBoolIterator {
	it := ForeignBoolIterator{
		recordIDs:        fc.RecordIDs,
		batches:          fc.Batches,
		baseBatchID:      fc.BaseBatchID,
		numBatches:       int32(len(fc.Batches)),
		lastBatchRecords: fc.NumRecordsInLastBatch,
		defValid:         fc.Default.Valid,
	}
	if fc.Default.Valid {
		it.def = types.GetFixedValue[bool](fc.Default)
	}
	return it
}

func (it ForeignBoolIterator) At(i int) (bool, bool) {
	r := it.recordIDs[i]
	b := r.BatchID - it.baseBatchID
	if b >= 0 && b < it.numBatches &&
		(b != it.numBatches-1 || int32(r.Index) < it.lastBatchRecords) {
		s := &it.batches[b]
		if !nullAt(s, int(r.Index)) {
			return false, false
		}
		return boolAt(s, int(r.Index)), true
	}
	return it.def, it.defValid
}
