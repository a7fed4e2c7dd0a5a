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

package axerr

import (
	"errors"
	"fmt"
)

// Error codes are stable uint16 values grouped by class. Codes are part of
// the engine's contract with its callers and must not be renumbered.
const (
	// Group 1: internal errors.
	ErrStart         uint16 = 20100
	ErrInternal      uint16 = 20101
	ErrNYI           uint16 = 20102
	ErrKernelPanic   uint16 = 20103
	ErrDeviceUnknown uint16 = 20104

	// Group 2: invalid argument errors, detected before device work issues.
	ErrInvalidArg         uint16 = 20201
	ErrUnsupportedType    uint16 = 20202
	ErrUnsupportedArity   uint16 = 20203
	ErrUnsupportedFunctor uint16 = 20204

	// Group 3: invalid input errors.
	ErrInvalidInput               uint16 = 20301
	ErrInvalidInputRepresentation uint16 = 20302

	// Group End: max value of error code.
	ErrEnd uint16 = 20399
)

var errorMsgRefer = map[uint16]string{
	ErrInternal:      "internal error: %s",
	ErrNYI:           "%s is not yet implemented",
	ErrKernelPanic:   "kernel panic: %v",
	ErrDeviceUnknown: "unknown device: %d",

	ErrInvalidArg:         "invalid argument %s, bad value %v",
	ErrUnsupportedType:    "unsupported data type: %s",
	ErrUnsupportedArity:   "unsupported arity: %s %d exceeds the bound %d",
	ErrUnsupportedFunctor: "unsupported functor: %s",

	ErrInvalidInput:               "invalid input: %s",
	ErrInvalidInputRepresentation: "invalid input representation: %s",
}

// Error carries a stable code plus a rendered message. Entry points convert
// every failure, including kernel panics, into one of these before returning.
type Error struct {
	code    uint16
	message string
}

func newError(code uint16, args ...any) *Error {
	format, ok := errorMsgRefer[code]
	if !ok {
		panic(fmt.Sprintf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		return &Error{code: code, message: format}
	}
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// IsAxErrCode reports whether err is an *Error carrying the given code.
func IsAxErrCode(err error, code uint16) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}
	return false
}

func NewInternalError(msg string, args ...any) *Error {
	return newError(ErrInternal, fmt.Sprintf(msg, args...))
}

func NewNYI(msg string, args ...any) *Error {
	return newError(ErrNYI, fmt.Sprintf(msg, args...))
}

func NewKernelPanic(cause any) *Error {
	return newError(ErrKernelPanic, cause)
}

func NewDeviceUnknown(device int) *Error {
	return newError(ErrDeviceUnknown, device)
}

func NewInvalidArg(arg string, val any) *Error {
	return newError(ErrInvalidArg, arg, val)
}

func NewUnsupportedType(typ fmt.Stringer) *Error {
	return newError(ErrUnsupportedType, typ.String())
}

func NewUnsupportedArity(what string, got, bound int) *Error {
	return newError(ErrUnsupportedArity, what, got, bound)
}

func NewUnsupportedFunctor(name string) *Error {
	return newError(ErrUnsupportedFunctor, name)
}

func NewInvalidInput(msg string, args ...any) *Error {
	return newError(ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewInvalidInputRepresentation(msg string, args ...any) *Error {
	return newError(ErrInvalidInputRepresentation, fmt.Sprintf(msg, args...))
}
