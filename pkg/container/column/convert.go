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

package column

import (
	"golang.org/x/exp/constraints"
)

// ConvertIterator adapts an iterator's element type F to the computation
// type T of the consuming kernel. Conversion follows Go conversion rules;
// the planner chooses output widths, so conversions may narrow.
type ConvertIterator[F, T constraints.Integer | constraints.Float, I ValueIterator[F]] struct {
	it I
}

func NewConvertIterator[F, T constraints.Integer | constraints.Float, I ValueIterator[F]](it I) ConvertIterator[F, T, I] {
	return ConvertIterator[F, T, I]{it: it}
}

func (c ConvertIterator[F, T, I]) At(i int) (T, bool) {
	v, ok := c.it.At(i)
	return T(v), ok
}

// ConvertBoolIterator widens a bit-packed bool iterator into the numeric
// computation type, true mapping to 1.
type ConvertBoolIterator[T constraints.Integer | constraints.Float, I ValueIterator[bool]] struct {
	it I
}

func NewConvertBoolIterator[T constraints.Integer | constraints.Float, I ValueIterator[bool]](it I) ConvertBoolIterator[T, I] {
	return ConvertBoolIterator[T, I]{it: it}
}

func (c ConvertBoolIterator[T, I]) At(i int) (T, bool) {
	v, ok := c.it.At(i)
	if v {
		return 1, ok
	}
	return 0, ok
}
