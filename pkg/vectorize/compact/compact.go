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

// Package compact holds the stable remove-if pass shared by every filter
// stage: the row index vector and up to eight foreign RecordID vectors move
// in lockstep, preserving the relative order of survivors. Compaction is
// memory bound and linear in the row count, so it runs as one sequential op
// on the stream on every device kind; the result is identical either way.
package compact

import (
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/types"
)

// MaxForeignVectors is the hard capacity bound of the lockstep zip. One
// explicit case exists per arity below; the bound is part of the engine
// contract, not a tunable.
const MaxForeignVectors = 8

// IndexWithForeign keeps slot j of indexVector and of every foreign vector
// iff keep(j), compacting all of them in place in one stable pass. Each
// arity gets its own loop so the per-slot move has no inner loop over the
// foreign vectors.
func IndexWithForeign(keep func(j int) bool, indexVector []uint32, fks [][]types.RecordID, size int) int {
	switch len(fks) {
	case 0:
		return compact0(keep, indexVector, size)
	case 1:
		return compact1(keep, indexVector, fks[0], size)
	case 2:
		return compact2(keep, indexVector, fks[0], fks[1], size)
	case 3:
		return compact3(keep, indexVector, fks[0], fks[1], fks[2], size)
	case 4:
		return compact4(keep, indexVector, fks[0], fks[1], fks[2], fks[3], size)
	case 5:
		return compact5(keep, indexVector, fks[0], fks[1], fks[2], fks[3], fks[4], size)
	case 6:
		return compact6(keep, indexVector, fks[0], fks[1], fks[2], fks[3], fks[4], fks[5], size)
	case 7:
		return compact7(keep, indexVector, fks[0], fks[1], fks[2], fks[3], fks[4], fks[5], fks[6], size)
	case 8:
		return compact8(keep, indexVector, fks[0], fks[1], fks[2], fks[3], fks[4], fks[5], fks[6], fks[7], size)
	}
	panic(axerr.NewUnsupportedArity("foreign tables", len(fks), MaxForeignVectors))
}

func compact0(keep func(int) bool, iv []uint32, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			cnt++
		}
	}
	return cnt
}

func compact1(keep func(int) bool, iv []uint32, f0 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			cnt++
		}
	}
	return cnt
}

func compact2(keep func(int) bool, iv []uint32, f0, f1 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			cnt++
		}
	}
	return cnt
}

func compact3(keep func(int) bool, iv []uint32, f0, f1, f2 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			f2[cnt] = f2[j]
			cnt++
		}
	}
	return cnt
}

func compact4(keep func(int) bool, iv []uint32, f0, f1, f2, f3 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			f2[cnt] = f2[j]
			f3[cnt] = f3[j]
			cnt++
		}
	}
	return cnt
}

func compact5(keep func(int) bool, iv []uint32, f0, f1, f2, f3, f4 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			f2[cnt] = f2[j]
			f3[cnt] = f3[j]
			f4[cnt] = f4[j]
			cnt++
		}
	}
	return cnt
}

func compact6(keep func(int) bool, iv []uint32, f0, f1, f2, f3, f4, f5 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			f2[cnt] = f2[j]
			f3[cnt] = f3[j]
			f4[cnt] = f4[j]
			f5[cnt] = f5[j]
			cnt++
		}
	}
	return cnt
}

func compact7(keep func(int) bool, iv []uint32, f0, f1, f2, f3, f4, f5, f6 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			f2[cnt] = f2[j]
			f3[cnt] = f3[j]
			f4[cnt] = f4[j]
			f5[cnt] = f5[j]
			f6[cnt] = f6[j]
			cnt++
		}
	}
	return cnt
}

func compact8(keep func(int) bool, iv []uint32, f0, f1, f2, f3, f4, f5, f6, f7 []types.RecordID, size int) int {
	cnt := 0
	for j := 0; j < size; j++ {
		if keep(j) {
			iv[cnt] = iv[j]
			f0[cnt] = f0[j]
			f1[cnt] = f1[j]
			f2[cnt] = f2[j]
			f3[cnt] = f3[j]
			f4[cnt] = f4[j]
			f5[cnt] = f5[j]
			f6[cnt] = f6[j]
			f7[cnt] = f7[j]
			cnt++
		}
	}
	return cnt
}
