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

// Package testutil builds the column slices, scratch vectors and device
// runtimes the package tests share. Slices are laid out the way batches
// arrive from the storage layer: values first (8-aligned by allocation),
// null bitmap behind them.
package testutil

import (
	"unsafe"

	"github.com/axiondb/axion/pkg/config"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vm/device"
)

// NewSequentialRuntime returns a one-device runtime in host-sequential mode.
func NewSequentialRuntime() *device.Runtime {
	ep := &config.EngineParameters{}
	ep.SetDefaultValues()
	ep.HostSequential = true
	rt, err := device.NewRuntime(ep)
	if err != nil {
		panic(err)
	}
	return rt
}

// NewParallelRuntime returns a one-device runtime with a real worker pool
// and a tiny fan-out grain so even small test batches exercise the
// parallel path.
func NewParallelRuntime(workers int) *device.Runtime {
	ep := &config.EngineParameters{}
	ep.SetDefaultValues()
	ep.HostSequential = false
	ep.WorkerPoolSize = workers
	ep.ParallelGrain = 4
	rt, err := device.NewRuntime(ep)
	if err != nil {
		panic(err)
	}
	return rt
}

// MakeIndexVector returns [start, start+1, ..., start+size-1].
func MakeIndexVector(size int, start uint32) []uint32 {
	iv := make([]uint32, size)
	for i := range iv {
		iv[i] = start + uint32(i)
	}
	return iv
}

// MakeFixedSlice builds a column slice over values, marking the listed rows
// null. nulls == nil builds a slice without a null bitmap (all rows valid).
func MakeFixedSlice[T types.ElemT](typ types.T, values []T, nulls []uint64) column.Slice {
	return MakeFixedSliceAt(typ, 0, values, nulls)
}

// MakeFixedSliceAt is MakeFixedSlice with the first covered row placed at
// element offset startingIndex inside the buffer, to exercise non-zero
// StartingIndex reads.
func MakeFixedSliceAt[T types.ElemT](typ types.T, startingIndex int, values []T, nulls []uint64) column.Slice {
	var z T
	step := int(unsafe.Sizeof(z))
	n := startingIndex + len(values)
	valuesLen := n * step
	nullsOffset := -1
	total := valuesLen
	if nulls != nil {
		nullsOffset = valuesLen
		total += (n + 7) / 8
	}
	base := make([]byte, total)
	copy(base[startingIndex*step:], types.EncodeSlice(values))
	if nulls != nil {
		for i := startingIndex; i < n; i++ {
			base[nullsOffset+i>>3] |= 1 << uint(i&7)
		}
		for _, r := range nulls {
			bit := startingIndex + int(r)
			base[nullsOffset+bit>>3] &^= 1 << uint(bit&7)
		}
	}
	return column.Slice{
		Base:          base,
		NullsOffset:   nullsOffset,
		ValuesOffset:  0,
		StartingIndex: startingIndex,
		Length:        len(values),
		DataType:      typ,
	}
}

// MakeBoolSlice builds a bit-packed bool column slice.
func MakeBoolSlice(values []bool, nulls []uint64) column.Slice {
	n := len(values)
	valuesLen := (n + 7) / 8
	nullsOffset := -1
	total := valuesLen
	if nulls != nil {
		nullsOffset = valuesLen
		total += (n + 7) / 8
	}
	base := make([]byte, total)
	for i, v := range values {
		if v {
			base[i>>3] |= 1 << uint(i&7)
		}
	}
	if nulls != nil {
		for i := 0; i < n; i++ {
			base[nullsOffset+i>>3] |= 1 << uint(i&7)
		}
		for _, r := range nulls {
			base[nullsOffset+int(r)>>3] &^= 1 << uint(r&7)
		}
	}
	return column.Slice{
		Base:        base,
		NullsOffset: nullsOffset,
		Length:      n,
		DataType:    types.T_bool,
	}
}

// MakeGeoSlice builds a GeoPoint column slice.
func MakeGeoSlice(points []types.GeoPoint, nulls []uint64) column.Slice {
	return MakeFixedSlice(types.T_geopoint, points, nulls)
}

// MakeScratch builds an intermediate-result vector, marking the listed
// elements null.
func MakeScratch[T types.ElemT](typ types.T, values []T, nulls []uint64) column.ScratchVector {
	sv := column.ScratchVector{
		Values:   append([]byte(nil), types.EncodeSlice(values)...),
		Nulls:    make([]uint8, len(values)),
		DataType: typ,
	}
	for i := range sv.Nulls {
		sv.Nulls[i] = 1
	}
	for _, r := range nulls {
		sv.Nulls[r] = 0
	}
	return sv
}

// MakeForeignColumn builds a foreign column over per-batch value slices.
func MakeForeignColumn[T types.ElemT](typ types.T, recordIDs []types.RecordID,
	batches [][]T, batchNulls [][]uint64, baseBatchID, lastBatchRecords int32,
	def types.DataValue) column.ForeignColumn {
	fc := column.ForeignColumn{
		RecordIDs:             recordIDs,
		BaseBatchID:           baseBatchID,
		NumRecordsInLastBatch: lastBatchRecords,
		DataType:              typ,
		Default:               def,
	}
	for i, b := range batches {
		var nl []uint64
		if batchNulls != nil {
			nl = batchNulls[i]
		}
		fc.Batches = append(fc.Batches, MakeFixedSlice(typ, b, nl))
	}
	return fc
}
