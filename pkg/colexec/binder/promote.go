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
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/types"
)

// Filters evaluate in a promoted computation type so both operands share one
// representation. The ladder follows the usual arithmetic conversions:
// narrow integers widen to their 4-byte class, then
// int32 < uint32 < int64 < uint64 < float32 < float64.
var promoteRank = map[types.T]int{
	types.T_int32:   1,
	types.T_uint32:  2,
	types.T_int64:   3,
	types.T_uint64:  4,
	types.T_float32: 5,
	types.T_float64: 6,
}

// PromoteUnary maps an input element type to its filter computation type.
func PromoteUnary(t types.T) (types.T, error) {
	switch t {
	case types.T_int8, types.T_int16, types.T_int32:
		return types.T_int32, nil
	case types.T_bool, types.T_uint8, types.T_uint16, types.T_uint32:
		return types.T_uint32, nil
	case types.T_int64, types.T_uint64, types.T_float32, types.T_float64:
		return t, nil
	}
	return types.T_any, axerr.NewUnsupportedType(t)
}

// Promote picks the computation type for a two-operand filter.
func Promote(a, b types.T) (types.T, error) {
	pa, err := PromoteUnary(a)
	if err != nil {
		return types.T_any, err
	}
	pb, err := PromoteUnary(b)
	if err != nil {
		return types.T_any, err
	}
	if promoteRank[pa] >= promoteRank[pb] {
		return pa, nil
	}
	return pb, nil
}
