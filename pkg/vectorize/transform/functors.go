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

package transform

import (
	"golang.org/x/exp/constraints"
)

func fromBool[T constraints.Integer | constraints.Float](b bool) T {
	if b {
		return 1
	}
	return 0
}

// Noop passes the operand through unchanged.
func Noop[T constraints.Integer | constraints.Float](v T, valid bool) (T, bool) {
	return v, valid
}

// Not treats the operand as a boolean (non-zero is true) and inverts it.
func Not[T constraints.Integer | constraints.Float](v T, valid bool) (T, bool) {
	return fromBool[T](v == 0), valid
}

// IsNull yields 1 for a null operand, 0 otherwise. The result is always
// valid; this is the one functor that turns missing inputs into rows a
// filter keeps.
func IsNull[T constraints.Integer | constraints.Float](_ T, valid bool) (T, bool) {
	return fromBool[T](!valid), true
}

// IsNotNull yields 1 for a present operand, 0 otherwise. Always valid.
func IsNotNull[T constraints.Integer | constraints.Float](_ T, valid bool) (T, bool) {
	return fromBool[T](valid), true
}

// Negate flips the operand's sign. Unsigned computation types reject the
// tag at bind time, so the wrapping negation below never runs for them.
func Negate[T constraints.Integer | constraints.Float](v T, valid bool) (T, bool) {
	return -v, valid
}

func And[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a != 0 && b != 0), aValid && bValid
}

func Or[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a != 0 || b != 0), aValid && bValid
}

func Equal[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a == b), aValid && bValid
}

func NotEqual[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a != b), aValid && bValid
}

func LessThan[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a < b), aValid && bValid
}

func LessThanOrEqual[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a <= b), aValid && bValid
}

func GreaterThan[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a > b), aValid && bValid
}

func GreaterThanOrEqual[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return fromBool[T](a >= b), aValid && bValid
}

func Plus[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return a + b, aValid && bValid
}

func Minus[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return a - b, aValid && bValid
}

func Multiply[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	return a * b, aValid && bValid
}

// Divide yields a null result on a zero divisor instead of faulting the
// whole pass.
func Divide[T constraints.Integer | constraints.Float](a T, aValid bool, b T, bValid bool) (T, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, aValid && bValid
}

// Mod yields a null result on a zero divisor. Integer computation types
// only; float modulo is rejected at bind time.
func Mod[T constraints.Integer](a T, aValid bool, b T, bValid bool) (T, bool) {
	if b == 0 {
		return 0, false
	}
	return a % b, aValid && bValid
}

func BitwiseAnd[T constraints.Integer](a T, aValid bool, b T, bValid bool) (T, bool) {
	return a & b, aValid && bValid
}

func BitwiseOr[T constraints.Integer](a T, aValid bool, b T, bValid bool) (T, bool) {
	return a | b, aValid && bValid
}

// SumFold, MinFold and MaxFold are the aggregation folds behind measure
// outputs. They assume the output slot was seeded with the aggregate's
// identity value.
func SumFold[T constraints.Integer | constraints.Float](cur, v T) T {
	return cur + v
}

func MinFold[T constraints.Integer | constraints.Float](cur, v T) T {
	if v < cur {
		return v
	}
	return cur
}

func MaxFold[T constraints.Integer | constraints.Float](cur, v T) T {
	if v > cur {
		return v
	}
	return cur
}
