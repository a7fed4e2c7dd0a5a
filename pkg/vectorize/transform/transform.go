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

// Package transform holds the generic per-slot kernels behind the scalar
// transform and filter operators. All kernels are flat for-each passes over
// index-vector slots; slot j touches only outputs at position j, so the
// passes parallelize across the device pool without coordination. Inputs are
// already converted to the computation type at the iterator boundary.
package transform

import (
	"golang.org/x/exp/constraints"

	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/vm/device"
)

// UnaryFunc is a scalar functor over one operand and its validity. The
// returned bool is the validity of the result; functors like IsNull produce
// valid results from invalid operands.
type UnaryFunc[T any] func(v T, valid bool) (T, bool)

// BinaryFunc is a scalar functor over two operands and their validities.
type BinaryFunc[T any] func(a T, aValid bool, b T, bValid bool) (T, bool)

// FoldFunc merges one transformed value into the running aggregate for a
// slot. Output buffers are pre-seeded with the aggregate's identity value.
type FoldFunc[T any] func(cur, v T) T

// MeasureUnary folds fn(input) into out slot by slot, skipping slots whose
// result is invalid. out keeps its prior value on skipped slots, which is
// what lets a second batch accumulate into the first batch's aggregates.
func MeasureUnary[T constraints.Integer | constraints.Float, I column.ValueIterator[T]](
	d *device.Device, it I, fn UnaryFunc[T], fold FoldFunc[T], out []T, size int) {
	d.ForEach(size, func(j int) {
		if v, ok := fn(it.At(j)); ok {
			out[j] = fold(out[j], v)
		}
	})
}

// MeasureBinary is MeasureUnary over a two-operand functor.
func MeasureBinary[T constraints.Integer | constraints.Float, I1, I2 column.ValueIterator[T]](
	d *device.Device, it1 I1, it2 I2, fn BinaryFunc[T], fold FoldFunc[T], out []T, size int) {
	d.ForEach(size, func(j int) {
		a, aOK := it1.At(j)
		b, bOK := it2.At(j)
		if v, ok := fn(a, aOK, b, bOK); ok {
			out[j] = fold(out[j], v)
		}
	})
}

// DimensionUnary writes fn(input) and its validity byte per slot. Values of
// invalid slots are left untouched; only the null byte records them.
func DimensionUnary[T constraints.Integer | constraints.Float, I column.ValueIterator[T]](
	d *device.Device, it I, fn UnaryFunc[T], outValues []T, outNulls []uint8, size int) {
	d.ForEach(size, func(j int) {
		if v, ok := fn(it.At(j)); ok {
			outValues[j] = v
			outNulls[j] = 1
		} else {
			outNulls[j] = 0
		}
	})
}

// DimensionBinary is DimensionUnary over a two-operand functor.
func DimensionBinary[T constraints.Integer | constraints.Float, I1, I2 column.ValueIterator[T]](
	d *device.Device, it1 I1, it2 I2, fn BinaryFunc[T], outValues []T, outNulls []uint8, size int) {
	d.ForEach(size, func(j int) {
		a, aOK := it1.At(j)
		b, bOK := it2.At(j)
		if v, ok := fn(a, aOK, b, bOK); ok {
			outValues[j] = v
			outNulls[j] = 1
		} else {
			outNulls[j] = 0
		}
	})
}

// PredicateUnary evaluates fn per slot into a byte predicate: 1 where the
// result is valid and non-zero, 0 otherwise. A null operand therefore fails
// the predicate unless the functor itself absorbs validity (IsNull).
func PredicateUnary[T constraints.Integer | constraints.Float, I column.ValueIterator[T]](
	d *device.Device, it I, fn UnaryFunc[T], pred []uint8, size int) {
	d.ForEach(size, func(j int) {
		if v, ok := fn(it.At(j)); ok && v != 0 {
			pred[j] = 1
		} else {
			pred[j] = 0
		}
	})
}

// PredicateBinary is PredicateUnary over a two-operand functor.
func PredicateBinary[T constraints.Integer | constraints.Float, I1, I2 column.ValueIterator[T]](
	d *device.Device, it1 I1, it2 I2, fn BinaryFunc[T], pred []uint8, size int) {
	d.ForEach(size, func(j int) {
		a, aOK := it1.At(j)
		b, bOK := it2.At(j)
		if v, ok := fn(a, aOK, b, bOK); ok && v != 0 {
			pred[j] = 1
		} else {
			pred[j] = 0
		}
	})
}
