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

// Package filter holds the scalar filter operators: a boolean functor is
// evaluated per index-vector slot into a byte predicate, then the index
// vector and any attached foreign RecordID vectors compact in lockstep,
// keeping rows with a non-zero predicate byte. Filters evaluate in a
// promoted computation type; both passes run as stream ops and the call
// blocks for the data-dependent row count.
package filter

import (
	"golang.org/x/exp/constraints"

	"github.com/axiondb/axion/pkg/colexec"
	"github.com/axiondb/axion/pkg/colexec/binder"
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vectorize/compact"
	"github.com/axiondb/axion/pkg/vectorize/transform"
	"github.com/axiondb/axion/pkg/vm/device"
)

// UnaryFilter evaluates functor over the bound input and compacts
// indexVector plus fks to the surviving rows. predicate is caller-owned
// scratch of at least size bytes.
func UnaryFilter(d *device.Device, s *device.Stream, functor colexec.UnaryFunctor,
	in *binder.InputVector, indexVector []uint32, predicate []uint8,
	fks [][]types.RecordID, size int, startRow uint32) (int, error) {
	if len(fks) > colexec.MaxForeignTables {
		return 0, axerr.NewUnsupportedArity("foreign tables", len(fks), colexec.MaxForeignTables)
	}
	comp, err := binder.PromoteUnary(in.DataType())
	if err != nil {
		return 0, err
	}
	switch comp {
	case types.T_int32:
		return unaryFilter[int32](d, s, functor, in, indexVector, predicate, fks, size, startRow)
	case types.T_uint32:
		return unaryFilter[uint32](d, s, functor, in, indexVector, predicate, fks, size, startRow)
	case types.T_int64:
		return unaryFilter[int64](d, s, functor, in, indexVector, predicate, fks, size, startRow)
	case types.T_uint64:
		return unaryFilter[uint64](d, s, functor, in, indexVector, predicate, fks, size, startRow)
	case types.T_float32:
		return unaryFilter[float32](d, s, functor, in, indexVector, predicate, fks, size, startRow)
	case types.T_float64:
		return unaryFilter[float64](d, s, functor, in, indexVector, predicate, fks, size, startRow)
	}
	return 0, axerr.NewUnsupportedType(comp)
}

// BinaryFilter is UnaryFilter over a two-operand boolean functor. The
// computation type is the promoted common type of the two inputs.
func BinaryFilter(d *device.Device, s *device.Stream, functor colexec.BinaryFunctor,
	in1, in2 *binder.InputVector, indexVector []uint32, predicate []uint8,
	fks [][]types.RecordID, size int, startRow uint32) (int, error) {
	if len(fks) > colexec.MaxForeignTables {
		return 0, axerr.NewUnsupportedArity("foreign tables", len(fks), colexec.MaxForeignTables)
	}
	comp, err := binder.Promote(in1.DataType(), in2.DataType())
	if err != nil {
		return 0, err
	}
	switch comp {
	case types.T_int32:
		return binaryFilter[int32](d, s, functor, in1, in2, indexVector, predicate, fks, size, startRow)
	case types.T_uint32:
		return binaryFilter[uint32](d, s, functor, in1, in2, indexVector, predicate, fks, size, startRow)
	case types.T_int64:
		return binaryFilter[int64](d, s, functor, in1, in2, indexVector, predicate, fks, size, startRow)
	case types.T_uint64:
		return binaryFilter[uint64](d, s, functor, in1, in2, indexVector, predicate, fks, size, startRow)
	case types.T_float32:
		return binaryFilter[float32](d, s, functor, in1, in2, indexVector, predicate, fks, size, startRow)
	case types.T_float64:
		return binaryFilter[float64](d, s, functor, in1, in2, indexVector, predicate, fks, size, startRow)
	}
	return 0, axerr.NewUnsupportedType(comp)
}

func unaryFilter[T constraints.Integer | constraints.Float](d *device.Device, s *device.Stream,
	functor colexec.UnaryFunctor, in *binder.InputVector, indexVector []uint32,
	predicate []uint8, fks [][]types.RecordID, size int, startRow uint32) (int, error) {
	it, err := binder.BindNumeric[T](in, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	fn, err := unaryPredicateFunc[T](functor)
	if err != nil {
		return 0, err
	}
	s.Submit(func() {
		transform.PredicateUnary(d, it, fn, predicate, size)
	})
	newSize := 0
	s.Submit(func() {
		newSize = compact.IndexWithForeign(func(j int) bool {
			return predicate[j] != 0
		}, indexVector, fks, size)
	})
	s.Sync()
	return newSize, nil
}

func binaryFilter[T constraints.Integer | constraints.Float](d *device.Device, s *device.Stream,
	functor colexec.BinaryFunctor, in1, in2 *binder.InputVector, indexVector []uint32,
	predicate []uint8, fks [][]types.RecordID, size int, startRow uint32) (int, error) {
	it1, err := binder.BindNumeric[T](in1, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	it2, err := binder.BindNumeric[T](in2, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	fn, err := binaryPredicateFunc[T](functor)
	if err != nil {
		return 0, err
	}
	s.Submit(func() {
		transform.PredicateBinary(d, it1, it2, fn, predicate, size)
	})
	newSize := 0
	s.Submit(func() {
		newSize = compact.IndexWithForeign(func(j int) bool {
			return predicate[j] != 0
		}, indexVector, fks, size)
	})
	s.Sync()
	return newSize, nil
}

// Filters accept the boolean functor subset; arithmetic tags belong to the
// transform path.
func unaryPredicateFunc[T constraints.Integer | constraints.Float](f colexec.UnaryFunctor) (transform.UnaryFunc[T], error) {
	switch f {
	case colexec.UnaryNoop:
		return transform.Noop[T], nil
	case colexec.UnaryNot:
		return transform.Not[T], nil
	case colexec.UnaryIsNull:
		return transform.IsNull[T], nil
	case colexec.UnaryIsNotNull:
		return transform.IsNotNull[T], nil
	}
	return nil, axerr.NewUnsupportedFunctor(f.String())
}

func binaryPredicateFunc[T constraints.Integer | constraints.Float](f colexec.BinaryFunctor) (transform.BinaryFunc[T], error) {
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
	}
	return nil, axerr.NewUnsupportedFunctor(f.String())
}
