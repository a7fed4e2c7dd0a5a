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

// Package binder resolves runtime input and output descriptors into typed
// iterators and buffer views. Descriptors are tagged variants; the bind
// functions switch over {representation tag x data type} and hand back a
// generic-instantiated iterator, so everything downstream of a bind is
// statically typed. The dispatch tables are closed: any combination outside
// them fails with a typed error before device work is issued.
package binder

import (
	"github.com/axiondb/axion/pkg/colexec"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/types"
)

// InputKind tags the representation of an InputVector.
type InputKind uint8

const (
	ConstantInput InputKind = iota
	ScratchSpaceInput
	VectorPartyInput
	ForeignColumnInput
)

var inputKindNames = map[InputKind]string{
	ConstantInput:      "ConstantInput",
	ScratchSpaceInput:  "ScratchSpaceInput",
	VectorPartyInput:   "VectorPartyInput",
	ForeignColumnInput: "ForeignColumnInput",
}

func (k InputKind) String() string {
	if name, ok := inputKindNames[k]; ok {
		return name
	}
	return "InvalidInput"
}

// InputVector is the type-erased input descriptor an entry point receives.
// Exactly one payload field is set, named by Kind.
type InputVector struct {
	Kind InputKind

	// ConstantInput payload and its type tag.
	Const     types.DataValue
	ConstType types.T

	Scratch *column.ScratchVector
	Slice   *column.Slice
	Foreign *column.ForeignColumn
}

func NewConstantInput(val types.DataValue, typ types.T) InputVector {
	return InputVector{Kind: ConstantInput, Const: val, ConstType: typ}
}

func NewScratchInput(sv *column.ScratchVector) InputVector {
	return InputVector{Kind: ScratchSpaceInput, Scratch: sv}
}

func NewVectorPartyInput(s *column.Slice) InputVector {
	return InputVector{Kind: VectorPartyInput, Slice: s}
}

func NewForeignInput(fc *column.ForeignColumn) InputVector {
	return InputVector{Kind: ForeignColumnInput, Foreign: fc}
}

// DataType resolves the element type tag of whichever payload is set.
func (in *InputVector) DataType() types.T {
	switch in.Kind {
	case ConstantInput:
		return in.ConstType
	case ScratchSpaceInput:
		return in.Scratch.DataType
	case VectorPartyInput:
		return in.Slice.DataType
	case ForeignColumnInput:
		return in.Foreign.DataType
	}
	return types.T_any
}

// Absent reports a direct columnar input whose batch carries no data for the
// column. Geo entries short-circuit on it with zero rows processed.
func (in *InputVector) Absent() bool {
	return in.Kind == VectorPartyInput && in.Slice.Base == nil && !in.Slice.Default.Valid
}

// OutputKind tags the representation of an OutputVector.
type OutputKind uint8

const (
	MeasureOutput OutputKind = iota
	DimensionOutput
)

// MeasureOutputVector binds a raw aggregate buffer to its element type and
// fold. The buffer is pre-seeded with the fold's identity value and
// accumulates across batches.
type MeasureOutputVector struct {
	Values   []byte
	DataType types.T
	AggFunc  colexec.AggFunc
}

// DimensionOutputVector binds dimension value and null-flag buffers. Values
// of null slots keep whatever they held; DimNulls is authoritative.
type DimensionOutputVector struct {
	DimValues []byte
	DimNulls  []uint8
	DataType  types.T
}

// OutputVector is the type-erased output descriptor handed to transform
// entries.
type OutputVector struct {
	Kind      OutputKind
	Measure   MeasureOutputVector
	Dimension DimensionOutputVector
}

func NewMeasureOutput(m MeasureOutputVector) OutputVector {
	return OutputVector{Kind: MeasureOutput, Measure: m}
}

func NewDimensionOutput(d DimensionOutputVector) OutputVector {
	return OutputVector{Kind: DimensionOutput, Dimension: d}
}

// DataType resolves the element type tag of whichever payload is set.
func (out *OutputVector) DataType() types.T {
	if out.Kind == MeasureOutput {
		return out.Measure.DataType
	}
	return out.Dimension.DataType
}
