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
	"unsafe"

	"github.com/axiondb/axion/pkg/container/types"
)

// Slice is a decoded, borrowed view over one column's batch: values plus an
// optional null bitmap inside one backing buffer. It is immutable for the
// duration of a call and never copied by the iterator layer.
//
// The slice covers batch rows [startRow, startRow+Length) of the call that
// binds it; StartingIndex is the element (for bools and nulls: bit) offset of
// the first covered row inside the buffer. A nil Base means the column is
// absent for this batch and every row reads as Default.
type Slice struct {
	Base          []byte
	NullsOffset   int // byte offset of the null bitmap; negative when absent
	ValuesOffset  int // byte offset of the value array
	StartingIndex int
	Length        int
	DataType      types.T
	Default       types.DataValue
}

// HasNulls reports whether the slice carries a null bitmap. Without one all
// covered rows are valid.
func (s *Slice) HasNulls() bool {
	return s.NullsOffset >= 0
}

// nullAt reads the validity bit of a slice-relative row. Bit set = value
// present.
func nullAt(s *Slice, row int) bool {
	if !s.HasNulls() {
		return true
	}
	bit := s.StartingIndex + row
	return s.Base[s.NullsOffset+bit>>3]&(1<<uint(bit&7)) != 0
}

// valueAt reads a fixed-width element of a slice-relative row.
func valueAt[T types.ElemT](s *Slice, row int) T {
	var z T
	step := int(unsafe.Sizeof(z))
	off := s.ValuesOffset + (s.StartingIndex+row)*step
	return types.DecodeFixed[T](s.Base[off : off+step])
}

// boolAt reads a bit-packed bool element of a slice-relative row.
func boolAt(s *Slice, row int) bool {
	bit := s.StartingIndex + row
	return s.Base[s.ValuesOffset+bit>>3]&(1<<uint(bit&7)) != 0
}

// ScratchVector holds an intermediate expression result, already aligned to
// the current index-vector order: element i belongs to index-vector slot i.
// Nulls are one byte per element, non-zero = valid.
type ScratchVector struct {
	Values   []byte
	Nulls    []uint8
	DataType types.T
}

// ForeignColumn is a dimension-table column reached through per-row
// RecordIDs. RecordIDs stay positionally aligned with the row index vector.
// A RecordID pointing past the populated range yields Default, or null when
// no default is configured.
type ForeignColumn struct {
	RecordIDs             []types.RecordID
	Batches               []Slice
	BaseBatchID           int32
	NumRecordsInLastBatch int32
	DataType              types.T
	Default               types.DataValue
}
