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

package types

// T is the scalar data type tag carried by column slices, scratch vectors
// and output descriptors. The set is closed: dispatch tables switch over it
// exhaustively and instantiate one generic kernel per member.
type T uint8

const (
	T_any T = 0

	T_bool T = 1

	T_int8  T = 2
	T_int16 T = 3
	T_int32 T = 4
	T_int64 T = 5

	T_uint8  T = 6
	T_uint16 T = 7
	T_uint32 T = 8
	T_uint64 T = 9

	T_float32 T = 10
	T_float64 T = 11

	T_geopoint T = 12
	T_uuid     T = 13
)

// GeoPoint is a 2-word geographic coordinate. Lat comes first to match the
// flattened shape vector layout.
type GeoPoint struct {
	Lat  float32
	Long float32
}

// RecordID addresses one row of an upstream dimension table: the batch it
// lives in and the row offset inside that batch. RecordID vectors stay
// positionally aligned with the row index vector and compact in lockstep
// with it.
type RecordID struct {
	BatchID int32
	Index   uint32
}

// Uuid is a 16-byte column value.
type Uuid [16]byte

// FixedSizeT is the constraint for every fixed-width value the iterator and
// kernel layers handle.
type FixedSizeT interface {
	bool | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | GeoPoint | RecordID | Uuid
}

// ElemT are the fixed-width types stored one element per stride slot. Bools
// are bit-packed in column slices and go through the dedicated bool
// iterators instead.
type ElemT interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | GeoPoint | RecordID | Uuid
}

var typeNames = map[T]string{
	T_any:      "ANY",
	T_bool:     "BOOL",
	T_int8:     "TINYINT",
	T_int16:    "SMALLINT",
	T_int32:    "INT",
	T_int64:    "BIGINT",
	T_uint8:    "TINYINT UNSIGNED",
	T_uint16:   "SMALLINT UNSIGNED",
	T_uint32:   "INT UNSIGNED",
	T_uint64:   "BIGINT UNSIGNED",
	T_float32:  "FLOAT",
	T_float64:  "DOUBLE",
	T_geopoint: "GEOPOINT",
	T_uuid:     "UUID",
}

func (t T) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// FixedLength returns the element stride in bytes. Bool columns store one
// bit per value; their stride is reported as 1 and the iterator layer does
// the bit addressing.
func (t T) FixedLength() int {
	switch t {
	case T_bool, T_int8, T_uint8:
		return 1
	case T_int16, T_uint16:
		return 2
	case T_int32, T_uint32, T_float32:
		return 4
	case T_int64, T_uint64, T_float64, T_geopoint:
		return 8
	case T_uuid:
		return 16
	}
	return 0
}

func (t T) IsInteger() bool {
	return t >= T_int8 && t <= T_uint64
}

func (t T) IsSignedInt() bool {
	return t >= T_int8 && t <= T_int64
}

func (t T) IsUnsignedInt() bool {
	return t >= T_uint8 && t <= T_uint64
}

func (t T) IsFloat() bool {
	return t == T_float32 || t == T_float64
}

func (t T) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}
