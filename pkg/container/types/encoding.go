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

import (
	"unsafe"

	"github.com/axiondb/axion/pkg/common/axerr"
)

// EncodeSlice reinterprets a typed slice as its raw bytes without copying.
// The caller keeps ownership; the returned view aliases v.
func EncodeSlice[T any](v []T) []byte {
	var t T
	sz := int(unsafe.Sizeof(t))
	if len(v) > 0 {
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*sz)
	}
	return nil
}

// DecodeSlice reinterprets raw bytes as a typed slice without copying.
func DecodeSlice[T any](v []byte) []T {
	var t T
	sz := int(unsafe.Sizeof(t))

	if len(v)%sz != 0 {
		panic(axerr.NewInternalError("decode slice that is not a multiple of element size"))
	}

	if len(v) > 0 {
		return unsafe.Slice((*T)(unsafe.Pointer(&v[0])), len(v)/sz)
	}
	return nil
}

func EncodeFixed[T FixedSizeT](v T) []byte {
	sz := unsafe.Sizeof(v)
	return unsafe.Slice((*byte)(unsafe.Pointer(&v)), sz)
}

func DecodeFixed[T FixedSizeT](v []byte) T {
	return *(*T)(unsafe.Pointer(&v[0]))
}

// DataValue is a typed scalar constant: foreign column defaults and constant
// inputs travel as one of these. An invalid DataValue stands for NULL.
type DataValue struct {
	Valid bool
	buf   [16]byte
}

// MakeValue packs a fixed-size value into a DataValue.
func MakeValue[T FixedSizeT](v T) DataValue {
	d := DataValue{Valid: true}
	copy(d.buf[:], EncodeFixed(v))
	return d
}

// GetFixedValue unpacks the value at the type it was stored with. Reading an
// invalid DataValue yields the zero value.
func GetFixedValue[T FixedSizeT](d DataValue) T {
	return DecodeFixed[T](d.buf[:])
}
