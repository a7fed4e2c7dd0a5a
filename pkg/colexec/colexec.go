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

// Package colexec holds the tags shared by the column execution operators:
// scalar functor tags, aggregation tags, and the hard capacity bounds of the
// engine. The tags are a closed set; dispatchers switch over them
// exhaustively and reject everything else at bind time.
package colexec

import (
	"github.com/axiondb/axion/pkg/container/types"
)

// MaxForeignTables bounds the number of foreign RecordID vectors a filter
// can compact in lockstep with the row index vector.
const MaxForeignTables = 8

type UnaryFunctor uint32

const (
	UnaryNoop UnaryFunctor = iota
	UnaryNot
	UnaryIsNull
	UnaryIsNotNull
	UnaryNegate
)

var unaryFunctorNames = map[UnaryFunctor]string{
	UnaryNoop:      "NOOP",
	UnaryNot:       "NOT",
	UnaryIsNull:    "IS_NULL",
	UnaryIsNotNull: "IS_NOT_NULL",
	UnaryNegate:    "NEGATE",
}

func (f UnaryFunctor) String() string {
	if name, ok := unaryFunctorNames[f]; ok {
		return name
	}
	return "INVALID_UNARY_FUNCTOR"
}

type BinaryFunctor uint32

const (
	BinaryAnd BinaryFunctor = iota
	BinaryOr
	BinaryEqual
	BinaryNotEqual
	BinaryLessThan
	BinaryLessThanOrEqual
	BinaryGreaterThan
	BinaryGreaterThanOrEqual
	BinaryPlus
	BinaryMinus
	BinaryMultiply
	BinaryDivide
	BinaryMod
	BinaryBitwiseAnd
	BinaryBitwiseOr
)

var binaryFunctorNames = map[BinaryFunctor]string{
	BinaryAnd:                "AND",
	BinaryOr:                 "OR",
	BinaryEqual:              "EQUAL",
	BinaryNotEqual:           "NOT_EQUAL",
	BinaryLessThan:           "LESS_THAN",
	BinaryLessThanOrEqual:    "LESS_THAN_OR_EQUAL",
	BinaryGreaterThan:        "GREATER_THAN",
	BinaryGreaterThanOrEqual: "GREATER_THAN_OR_EQUAL",
	BinaryPlus:               "PLUS",
	BinaryMinus:              "MINUS",
	BinaryMultiply:           "MULTIPLY",
	BinaryDivide:             "DIVIDE",
	BinaryMod:                "MOD",
	BinaryBitwiseAnd:         "BITWISE_AND",
	BinaryBitwiseOr:          "BITWISE_OR",
}

func (f BinaryFunctor) String() string {
	if name, ok := binaryFunctorNames[f]; ok {
		return name
	}
	return "INVALID_BINARY_FUNCTOR"
}

// IsBoolean reports whether the functor yields a truth value; filters accept
// only these. Arithmetic tags ride the transform path.
func (f BinaryFunctor) IsBoolean() bool {
	return f <= BinaryGreaterThanOrEqual
}

// AggFunc names the fold applied when a transform writes through a measure
// output. The Unsigned/Signed/Float suffix must agree with the output's type
// class; the dispatcher rejects mismatches.
type AggFunc uint32

const (
	AggSumUnsigned AggFunc = iota
	AggSumSigned
	AggSumFloat
	AggMinUnsigned
	AggMinSigned
	AggMinFloat
	AggMaxUnsigned
	AggMaxSigned
	AggMaxFloat
)

var aggFuncNames = map[AggFunc]string{
	AggSumUnsigned: "SUM_UNSIGNED",
	AggSumSigned:   "SUM_SIGNED",
	AggSumFloat:    "SUM_FLOAT",
	AggMinUnsigned: "MIN_UNSIGNED",
	AggMinSigned:   "MIN_SIGNED",
	AggMinFloat:    "MIN_FLOAT",
	AggMaxUnsigned: "MAX_UNSIGNED",
	AggMaxSigned:   "MAX_SIGNED",
	AggMaxFloat:    "MAX_FLOAT",
}

func (a AggFunc) String() string {
	if name, ok := aggFuncNames[a]; ok {
		return name
	}
	return "INVALID_AGG_FUNC"
}

func (a AggFunc) IsSum() bool {
	return a <= AggSumFloat
}

func (a AggFunc) IsMin() bool {
	return a >= AggMinUnsigned && a <= AggMinFloat
}

func (a AggFunc) IsMax() bool {
	return a >= AggMaxUnsigned && a <= AggMaxFloat
}

// TypeMatches reports whether the tag's class agrees with the measure
// output type.
func (a AggFunc) TypeMatches(typ types.T) bool {
	switch a {
	case AggSumUnsigned, AggMinUnsigned, AggMaxUnsigned:
		return typ.IsUnsignedInt()
	case AggSumSigned, AggMinSigned, AggMaxSigned:
		return typ.IsSignedInt()
	case AggSumFloat, AggMinFloat, AggMaxFloat:
		return typ.IsFloat()
	}
	return false
}
