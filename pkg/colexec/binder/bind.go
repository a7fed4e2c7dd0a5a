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

package binder

import (
	"golang.org/x/exp/constraints"

	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/types"
)

// BindValue resolves the input to an iterator over its own element type.
// The caller has already matched T against the input's type tag; BindValue
// only dispatches on the representation.
func BindValue[T types.ElemT](in *InputVector, indexVector []uint32, startRow uint32) (column.ValueIterator[T], error) {
	switch in.Kind {
	case ConstantInput:
		return column.NewConstIterator(types.GetFixedValue[T](in.Const), in.Const.Valid), nil
	case ScratchSpaceInput:
		return column.NewScratchIterator[T](in.Scratch), nil
	case VectorPartyInput:
		return column.NewIterator[T](in.Slice, indexVector, startRow), nil
	case ForeignColumnInput:
		return column.NewForeignIterator[T](in.Foreign), nil
	}
	return nil, axerr.NewInvalidInputRepresentation("cannot bind input kind %s", in.Kind)
}

// BindBool is BindValue for bit-packed bool columns. Scratch vectors never
// hold bools; predicates live in their own byte vectors.
func BindBool(in *InputVector, indexVector []uint32, startRow uint32) (column.ValueIterator[bool], error) {
	switch in.Kind {
	case ConstantInput:
		return column.NewConstIterator(types.GetFixedValue[bool](in.Const), in.Const.Valid), nil
	case VectorPartyInput:
		return column.NewBoolIterator(in.Slice, indexVector, startRow), nil
	case ForeignColumnInput:
		return column.NewForeignBoolIterator(in.Foreign), nil
	}
	return nil, axerr.NewInvalidInputRepresentation("cannot bind bool input kind %s", in.Kind)
}

// BindGeoPoints resolves the point input of the geo contexts. Points come
// from a direct column or through a foreign join; constant and scratch
// representations have no geo producers upstream and are rejected.
func BindGeoPoints(in *InputVector, indexVector []uint32, startRow uint32) (column.ValueIterator[types.GeoPoint], error) {
	if dt := in.DataType(); dt != types.T_geopoint {
		return nil, axerr.NewUnsupportedType(dt)
	}
	switch in.Kind {
	case VectorPartyInput:
		return column.NewIterator[types.GeoPoint](in.Slice, indexVector, startRow), nil
	case ForeignColumnInput:
		return column.NewForeignIterator[types.GeoPoint](in.Foreign), nil
	}
	return nil, axerr.NewInvalidInputRepresentation("geo points cannot bind %s", in.Kind)
}

// BindNumeric resolves the input to an iterator over the computation type T,
// converting elements at the iterator boundary. The grid below is the whole
// {representation x element type} dispatch; anything outside it is not a
// numeric input.
func BindNumeric[T constraints.Integer | constraints.Float](in *InputVector, indexVector []uint32, startRow uint32) (column.ValueIterator[T], error) {
	switch in.Kind {
	case ConstantInput:
		return bindNumericConst[T](in)
	case ScratchSpaceInput:
		return bindNumericScratch[T](in, in.Scratch.DataType)
	case VectorPartyInput:
		return bindNumericSlice[T](in, indexVector, startRow)
	case ForeignColumnInput:
		return bindNumericForeign[T](in)
	}
	return nil, axerr.NewInvalidInputRepresentation("cannot bind input kind %s", in.Kind)
}

func bindNumericConst[T constraints.Integer | constraints.Float](in *InputVector) (column.ValueIterator[T], error) {
	if !in.Const.Valid {
		return column.NewConstIterator[T](0, false), nil
	}
	switch in.ConstType {
	case types.T_bool:
		v := T(0)
		if types.GetFixedValue[bool](in.Const) {
			v = 1
		}
		return column.NewConstIterator(v, true), nil
	case types.T_int8:
		return column.NewConstIterator(T(types.GetFixedValue[int8](in.Const)), true), nil
	case types.T_int16:
		return column.NewConstIterator(T(types.GetFixedValue[int16](in.Const)), true), nil
	case types.T_int32:
		return column.NewConstIterator(T(types.GetFixedValue[int32](in.Const)), true), nil
	case types.T_int64:
		return column.NewConstIterator(T(types.GetFixedValue[int64](in.Const)), true), nil
	case types.T_uint8:
		return column.NewConstIterator(T(types.GetFixedValue[uint8](in.Const)), true), nil
	case types.T_uint16:
		return column.NewConstIterator(T(types.GetFixedValue[uint16](in.Const)), true), nil
	case types.T_uint32:
		return column.NewConstIterator(T(types.GetFixedValue[uint32](in.Const)), true), nil
	case types.T_uint64:
		return column.NewConstIterator(T(types.GetFixedValue[uint64](in.Const)), true), nil
	case types.T_float32:
		return column.NewConstIterator(T(types.GetFixedValue[float32](in.Const)), true), nil
	case types.T_float64:
		return column.NewConstIterator(T(types.GetFixedValue[float64](in.Const)), true), nil
	}
	return nil, axerr.NewUnsupportedType(in.ConstType)
}

func bindNumericScratch[T constraints.Integer | constraints.Float](in *InputVector, dt types.T) (column.ValueIterator[T], error) {
	switch dt {
	case types.T_int8:
		return column.NewConvertIterator[int8, T](column.NewScratchIterator[int8](in.Scratch)), nil
	case types.T_int16:
		return column.NewConvertIterator[int16, T](column.NewScratchIterator[int16](in.Scratch)), nil
	case types.T_int32:
		return column.NewConvertIterator[int32, T](column.NewScratchIterator[int32](in.Scratch)), nil
	case types.T_int64:
		return column.NewConvertIterator[int64, T](column.NewScratchIterator[int64](in.Scratch)), nil
	case types.T_uint8:
		return column.NewConvertIterator[uint8, T](column.NewScratchIterator[uint8](in.Scratch)), nil
	case types.T_uint16:
		return column.NewConvertIterator[uint16, T](column.NewScratchIterator[uint16](in.Scratch)), nil
	case types.T_uint32:
		return column.NewConvertIterator[uint32, T](column.NewScratchIterator[uint32](in.Scratch)), nil
	case types.T_uint64:
		return column.NewConvertIterator[uint64, T](column.NewScratchIterator[uint64](in.Scratch)), nil
	case types.T_float32:
		return column.NewConvertIterator[float32, T](column.NewScratchIterator[float32](in.Scratch)), nil
	case types.T_float64:
		return column.NewConvertIterator[float64, T](column.NewScratchIterator[float64](in.Scratch)), nil
	}
	return nil, axerr.NewUnsupportedType(dt)
}

func bindNumericSlice[T constraints.Integer | constraints.Float](in *InputVector, iv []uint32, startRow uint32) (column.ValueIterator[T], error) {
	s := in.Slice
	switch s.DataType {
	case types.T_bool:
		return column.NewConvertBoolIterator[T](column.NewBoolIterator(s, iv, startRow)), nil
	case types.T_int8:
		return column.NewConvertIterator[int8, T](column.NewIterator[int8](s, iv, startRow)), nil
	case types.T_int16:
		return column.NewConvertIterator[int16, T](column.NewIterator[int16](s, iv, startRow)), nil
	case types.T_int32:
		return column.NewConvertIterator[int32, T](column.NewIterator[int32](s, iv, startRow)), nil
	case types.T_int64:
		return column.NewConvertIterator[int64, T](column.NewIterator[int64](s, iv, startRow)), nil
	case types.T_uint8:
		return column.NewConvertIterator[uint8, T](column.NewIterator[uint8](s, iv, startRow)), nil
	case types.T_uint16:
		return column.NewConvertIterator[uint16, T](column.NewIterator[uint16](s, iv, startRow)), nil
	case types.T_uint32:
		return column.NewConvertIterator[uint32, T](column.NewIterator[uint32](s, iv, startRow)), nil
	case types.T_uint64:
		return column.NewConvertIterator[uint64, T](column.NewIterator[uint64](s, iv, startRow)), nil
	case types.T_float32:
		return column.NewConvertIterator[float32, T](column.NewIterator[float32](s, iv, startRow)), nil
	case types.T_float64:
		return column.NewConvertIterator[float64, T](column.NewIterator[float64](s, iv, startRow)), nil
	}
	return nil, axerr.NewUnsupportedType(s.DataType)
}

func bindNumericForeign[T constraints.Integer | constraints.Float](in *InputVector) (column.ValueIterator[T], error) {
	fc := in.Foreign
	switch fc.DataType {
	case types.T_bool:
		return column.NewConvertBoolIterator[T](column.NewForeignBoolIterator(fc)), nil
	case types.T_int8:
		return column.NewConvertIterator[int8, T](column.NewForeignIterator[int8](fc)), nil
	case types.T_int16:
		return column.NewConvertIterator[int16, T](column.NewForeignIterator[int16](fc)), nil
	case types.T_int32:
		return column.NewConvertIterator[int32, T](column.NewForeignIterator[int32](fc)), nil
	case types.T_int64:
		return column.NewConvertIterator[int64, T](column.NewForeignIterator[int64](fc)), nil
	case types.T_uint8:
		return column.NewConvertIterator[uint8, T](column.NewForeignIterator[uint8](fc)), nil
	case types.T_uint16:
		return column.NewConvertIterator[uint16, T](column.NewForeignIterator[uint16](fc)), nil
	case types.T_uint32:
		return column.NewConvertIterator[uint32, T](column.NewForeignIterator[uint32](fc)), nil
	case types.T_uint64:
		return column.NewConvertIterator[uint64, T](column.NewForeignIterator[uint64](fc)), nil
	case types.T_float32:
		return column.NewConvertIterator[float32, T](column.NewForeignIterator[float32](fc)), nil
	case types.T_float64:
		return column.NewConvertIterator[float64, T](column.NewForeignIterator[float64](fc)), nil
	}
	return nil, axerr.NewUnsupportedType(fc.DataType)
}
