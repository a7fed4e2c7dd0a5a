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

// Package distinct estimates the number of distinct values a bound input
// takes over the surviving rows. The estimate feeds planner statistics; it
// runs on the host and never mutates the index vector.
package distinct

import (
	"github.com/axiomhq/hyperloglog"

	"github.com/axiondb/axion/pkg/colexec/binder"
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/types"
)

// EstimateDistinct sketches the input's values over index-vector slots
// [0, size) with HyperLogLog and returns the cardinality estimate. Null
// values are skipped.
func EstimateDistinct(in *binder.InputVector, indexVector []uint32, size int, startRow uint32) (uint64, error) {
	switch in.DataType() {
	case types.T_bool:
		return estimateBool(in, indexVector, size, startRow)
	case types.T_int8:
		return estimateFixed[int8](in, indexVector, size, startRow)
	case types.T_int16:
		return estimateFixed[int16](in, indexVector, size, startRow)
	case types.T_int32:
		return estimateFixed[int32](in, indexVector, size, startRow)
	case types.T_int64:
		return estimateFixed[int64](in, indexVector, size, startRow)
	case types.T_uint8:
		return estimateFixed[uint8](in, indexVector, size, startRow)
	case types.T_uint16:
		return estimateFixed[uint16](in, indexVector, size, startRow)
	case types.T_uint32:
		return estimateFixed[uint32](in, indexVector, size, startRow)
	case types.T_uint64:
		return estimateFixed[uint64](in, indexVector, size, startRow)
	case types.T_float32:
		return estimateFixed[float32](in, indexVector, size, startRow)
	case types.T_float64:
		return estimateFixed[float64](in, indexVector, size, startRow)
	case types.T_geopoint:
		return estimateFixed[types.GeoPoint](in, indexVector, size, startRow)
	case types.T_uuid:
		return estimateFixed[types.Uuid](in, indexVector, size, startRow)
	}
	return 0, axerr.NewUnsupportedType(in.DataType())
}

func estimateFixed[T types.ElemT](in *binder.InputVector, indexVector []uint32, size int, startRow uint32) (uint64, error) {
	it, err := binder.BindValue[T](in, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	sk := hyperloglog.New16()
	for j := 0; j < size; j++ {
		if v, ok := it.At(j); ok {
			sk.Insert(types.EncodeFixed(v))
		}
	}
	return sk.Estimate(), nil
}

func estimateBool(in *binder.InputVector, indexVector []uint32, size int, startRow uint32) (uint64, error) {
	it, err := binder.BindBool(in, indexVector, startRow)
	if err != nil {
		return 0, err
	}
	sk := hyperloglog.New16()
	for j := 0; j < size; j++ {
		if v, ok := it.At(j); ok {
			b := byte(0)
			if v {
				b = 1
			}
			sk.Insert([]byte{b})
		}
	}
	return sk.Estimate(), nil
}
