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

// Package measure holds the scalar transform operators and the output
// binding dispatch. The computation type is the output element type; inputs
// convert to it at the iterator boundary. Measure outputs fold through the
// aggregation tag, dimension outputs get plain writes plus null flags.
// Transform ops leave their work on the stream and return the slot count;
// callers sync before reading outputs.
package measure

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/axiondb/axion/pkg/colexec"
	"github.com/axiondb/axion/pkg/colexec/binder"
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vectorize/transform"
	"github.com/axiondb/axion/pkg/vm/device"
)

// UnaryTransform applies functor per index-vector slot and writes through
// the bound output. Output types outside {int32, uint32, float32, int64,
// float64} are rejected.
func UnaryTransform(d *device.Device, s *device.Stream, functor colexec.UnaryFunctor,
	in *binder.InputVector, out *binder.OutputVector, indexVector []uint32,
	size int, startRow uint32) (int, error) {
	switch out.DataType() {
	case types.T_int32:
		return unaryTransform[int32](d, s, functor, in, out, indexVector, size, startRow)
	case types.T_uint32:
		return unaryTransform[uint32](d, s, functor, in, out, indexVector, size, startRow)
	case types.T_float32:
		return unaryTransform[float32](d, s, functor, in, out, indexVector, size, startRow)
	case types.T_int64:
		return unaryTransform[int64](d, s, functor, in, out, indexVector, size, startRow)
	case types.T_float64:
		return unaryTransform[float64](d, s, functor, in, out, indexVector, size, startRow)
	}
	return 0, axerr.NewUnsupportedType(out.DataType())
}

// BinaryTransform is UnaryTransform over a two-operand functor. Integer and
// float output types dispatch separately because Mod and the bitwise tags
// only exist for integers.
func BinaryTransform(d *device.Device, s *device.Stream, functor colexec.BinaryFunctor,
	in1, in2 *binder.InputVector, out *binder.OutputVector, indexVector []uint32,
	size int, startRow uint32) (int, error) {
	switch out.DataType() {
	case types.T_int32:
		return binaryTransformInt[int32](d, s, functor, in1, in2, out, indexVector, size, startRow)
	case types.T_uint32:
		return binaryTransformInt[uint32](d, s, functor, in1, in2, out, indexVector, size, startRow)
	case types.T_int64:
		return binaryTransformInt[int64](d, s, functor, in1, in2, out, indexVector, size, startRow)
	case types.T_float32:
		return binaryTransformFloat[float32](d, s, functor, in1, in2, out, indexVector, size, startRow)
	case types.T_float64:
		return binaryTransformFloat[float64](d, s, functor, in1, in2, out, indexVector, size, startRow)
	}
	return 0, axerr.NewUnsupportedType(out.DataType())
}

// InitMeasureVector seeds the first size slots of the measure buffer with
// the aggregation tag's identity: 0 for sums, the type maximum for min, the
// type minimum for max.
func InitMeasureVector(out binder.MeasureOutputVector, size int) error {
	switch out.DataType {
	case types.T_int32:
		return initMeasure[int32](out, size, math.MinInt32, math.MaxInt32)
	case types.T_uint32:
		return initMeasure[uint32](out, size, 0, math.MaxUint32)
	case types.T_float32:
		return initMeasure[float32](out, size, -math.MaxFloat32, math.MaxFloat32)
	case types.T_int64:
		return initMeasure[int64](out, size, math.MinInt64, math.MaxInt64)
	case types.T_float64:
		return initMeasure[float64](out, size, -math.MaxFloat64, math.MaxFloat64)
	}
	return axerr.NewUnsupportedType(out.DataType)
}

func initMeasure[T constraints.Integer | constraints.Float](out binder.MeasureOutputVector,
	size int, lo, hi T) error {
	if !out.AggFunc.TypeMatches(out.DataType) {
		return axerr.NewUnsupportedFunctor(out.AggFunc.String())
	}
	var id T
	switch {
	case out.AggFunc.IsMin():
		id = hi
	case out.AggFunc.IsMax():
		id = lo
	}
	values := types.DecodeSlice[T](out.Values)
	for j := 0; j < size; j++ {
		values[j] = id
	}
	return nil
}

func unaryTransform[T constraints.Integer | constraints.Float](d *device.Device, s *device.Stream,
	functor colexec.UnaryFunctor, in *binder.InputVector, out *binder.OutputVector,
	indexVector []uint32, size int, startRow uint32) (int, error) {
	it, err := binder.BindNumeric[T](in, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	fn, err := unaryTransformFunc[T](functor, out.DataType())
	if err != nil {
		return 0, err
	}
	return submitUnary(d, s, it, fn, out, size)
}

func binaryTransformInt[T constraints.Integer](d *device.Device, s *device.Stream,
	functor colexec.BinaryFunctor, in1, in2 *binder.InputVector, out *binder.OutputVector,
	indexVector []uint32, size int, startRow uint32) (int, error) {
	it1, err := binder.BindNumeric[T](in1, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	it2, err := binder.BindNumeric[T](in2, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	fn, err := binaryTransformFuncInt[T](functor)
	if err != nil {
		return 0, err
	}
	return submitBinary(d, s, it1, it2, fn, out, size)
}

func binaryTransformFloat[T constraints.Float](d *device.Device, s *device.Stream,
	functor colexec.BinaryFunctor, in1, in2 *binder.InputVector, out *binder.OutputVector,
	indexVector []uint32, size int, startRow uint32) (int, error) {
	it1, err := binder.BindNumeric[T](in1, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	it2, err := binder.BindNumeric[T](in2, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	fn, err := binaryTransformFuncFloat[T](functor)
	if err != nil {
		return 0, err
	}
	return submitBinary(d, s, it1, it2, fn, out, size)
}

func submitUnary[T constraints.Integer | constraints.Float](d *device.Device, s *device.Stream,
	it column.ValueIterator[T], fn transform.UnaryFunc[T], out *binder.OutputVector, size int) (int, error) {
	switch out.Kind {
	case binder.MeasureOutput:
		fold, err := foldFunc[T](out.Measure.AggFunc, out.Measure.DataType)
		if err != nil {
			return 0, err
		}
		values := types.DecodeSlice[T](out.Measure.Values)
		s.Submit(func() {
			transform.MeasureUnary(d, it, fn, fold, values, size)
		})
		return size, nil
	case binder.DimensionOutput:
		values := types.DecodeSlice[T](out.Dimension.DimValues)
		nulls := out.Dimension.DimNulls
		s.Submit(func() {
			transform.DimensionUnary(d, it, fn, values, nulls, size)
		})
		return size, nil
	}
	return 0, axerr.NewInvalidInputRepresentation("cannot bind output kind %d", out.Kind)
}

func submitBinary[T constraints.Integer | constraints.Float](d *device.Device, s *device.Stream,
	it1, it2 column.ValueIterator[T], fn transform.BinaryFunc[T], out *binder.OutputVector, size int) (int, error) {
	switch out.Kind {
	case binder.MeasureOutput:
		fold, err := foldFunc[T](out.Measure.AggFunc, out.Measure.DataType)
		if err != nil {
			return 0, err
		}
		values := types.DecodeSlice[T](out.Measure.Values)
		s.Submit(func() {
			transform.MeasureBinary(d, it1, it2, fn, fold, values, size)
		})
		return size, nil
	case binder.DimensionOutput:
		values := types.DecodeSlice[T](out.Dimension.DimValues)
		nulls := out.Dimension.DimNulls
		s.Submit(func() {
			transform.DimensionBinary(d, it1, it2, fn, values, nulls, size)
		})
		return size, nil
	}
	return 0, axerr.NewInvalidInputRepresentation("cannot bind output kind %d", out.Kind)
}

func foldFunc[T constraints.Integer | constraints.Float](agg colexec.AggFunc, typ types.T) (transform.FoldFunc[T], error) {
	if !agg.TypeMatches(typ) {
		return nil, axerr.NewUnsupportedFunctor(agg.String())
	}
	switch {
	case agg.IsSum():
		return transform.SumFold[T], nil
	case agg.IsMin():
		return transform.MinFold[T], nil
	case agg.IsMax():
		return transform.MaxFold[T], nil
	}
	return nil, axerr.NewUnsupportedFunctor(agg.String())
}

func unaryTransformFunc[T constraints.Integer | constraints.Float](f colexec.UnaryFunctor, typ types.T) (transform.UnaryFunc[T], error) {
	switch f {
	case colexec.UnaryNoop:
		return transform.Noop[T], nil
	case colexec.UnaryNot:
		return transform.Not[T], nil
	case colexec.UnaryIsNull:
		return transform.IsNull[T], nil
	case colexec.UnaryIsNotNull:
		return transform.IsNotNull[T], nil
	case colexec.UnaryNegate:
		if typ.IsUnsignedInt() {
			return nil, axerr.NewUnsupportedFunctor(f.String())
		}
		return transform.Negate[T], nil
	}
	return nil, axerr.NewUnsupportedFunctor(f.String())
}

func binaryTransformFuncInt[T constraints.Integer](f colexec.BinaryFunctor) (transform.BinaryFunc[T], error) {
	switch f {
	case colexec.BinaryAnd:
		return transform.And[T], nil
	case colexec.BinaryOr:
		return transform.Or[T], nil
	case colexec.BinaryEqual:
		return transform.Equal[T], nil
	case colexec.BinaryNotEqual:
		return transform.NotEqual[T], nil
	case colexec.BinaryLessThan:
		return transform.LessThan[T], nil
	case colexec.BinaryLessThanOrEqual:
		return transform.LessThanOrEqual[T], nil
	case colexec.BinaryGreaterThan:
		return transform.GreaterThan[T], nil
	case colexec.BinaryGreaterThanOrEqual:
		return transform.GreaterThanOrEqual[T], nil
	case colexec.BinaryPlus:
		return transform.Plus[T], nil
	case colexec.BinaryMinus:
		return transform.Minus[T], nil
	case colexec.BinaryMultiply:
		return transform.Multiply[T], nil
	case colexec.BinaryDivide:
		return transform.Divide[T], nil
	case colexec.BinaryMod:
		return transform.Mod[T], nil
	case colexec.BinaryBitwiseAnd:
		return transform.BitwiseAnd[T], nil
	case colexec.BinaryBitwiseOr:
		return transform.BitwiseOr[T], nil
	}
	return nil, axerr.NewUnsupportedFunctor(f.String())
}

func binaryTransformFuncFloat[T constraints.Float](f colexec.BinaryFunctor) (transform.BinaryFunc[T], error) {
	switch f {
	case colexec.BinaryAnd:
		return transform.And[T], nil
	case colexec.BinaryOr:
		return transform.Or[T], nil
	case colexec.BinaryEqual:
		return transform.Equal[T], nil
	case colexec.BinaryNotEqual:
		return transform.NotEqual[T], nil
	case colexec.BinaryLessThan:
		return transform.LessThan[T], nil
	case colexec.BinaryLessThanOrEqual:
		return transform.LessThanOrEqual[T], nil
	case colexec.BinaryGreaterThan:
		return transform.GreaterThan[T], nil
	case colexec.BinaryGreaterThanOrEqual:
		return transform.GreaterThanOrEqual[T], nil
	case colexec.BinaryPlus:
		return transform.Plus[T], nil
	case colexec.BinaryMinus:
		return transform.Minus[T], nil
	case colexec.BinaryMultiply:
		return transform.Multiply[T], nil
	case colexec.BinaryDivide:
		return transform.Divide[T], nil
	}
	return nil, axerr.NewUnsupportedFunctor(f.String())
}
