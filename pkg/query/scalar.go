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

package query

import (
	"github.com/axiondb/axion/pkg/colexec"
	"github.com/axiondb/axion/pkg/colexec/binder"
	"github.com/axiondb/axion/pkg/colexec/distinct"
	"github.com/axiondb/axion/pkg/colexec/filter"
	"github.com/axiondb/axion/pkg/colexec/measure"
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vm/device"
)

// UnaryFilter evaluates a boolean functor over the bound input and compacts
// indexVector plus the first numForeignTables RecordID vectors in lockstep,
// keeping rows with a non-zero predicate. predicate is caller-owned scratch
// of at least size bytes. Returns the new row count; on error the index
// vector and RecordID vectors are untouched.
func UnaryFilter(in *binder.InputVector, indexVector []uint32, predicate []uint8,
	size int, recordIDVectors [][]types.RecordID, numForeignTables int,
	startRow uint32, functor colexec.UnaryFunctor,
	stream *device.Stream, deviceID int) (newSize int, err error) {
	err = run(func() error {
		if numForeignTables < 0 || numForeignTables > colexec.MaxForeignTables {
			return axerr.NewUnsupportedArity("foreign tables", numForeignTables, colexec.MaxForeignTables)
		}
		if numForeignTables > len(recordIDVectors) {
			return axerr.NewInvalidArg("numForeignTables", numForeignTables)
		}
		if len(predicate) < size {
			return axerr.NewInvalidArg("predicate", len(predicate))
		}
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		newSize, err = filter.UnaryFilter(d, stream, functor, in, indexVector,
			predicate, recordIDVectors[:numForeignTables], size, startRow)
		return err
	})
	if err != nil {
		newSize = 0
	}
	return newSize, err
}

// BinaryFilter is UnaryFilter over a two-operand boolean functor.
func BinaryFilter(in1, in2 *binder.InputVector, indexVector []uint32, predicate []uint8,
	size int, recordIDVectors [][]types.RecordID, numForeignTables int,
	startRow uint32, functor colexec.BinaryFunctor,
	stream *device.Stream, deviceID int) (newSize int, err error) {
	err = run(func() error {
		if numForeignTables < 0 || numForeignTables > colexec.MaxForeignTables {
			return axerr.NewUnsupportedArity("foreign tables", numForeignTables, colexec.MaxForeignTables)
		}
		if numForeignTables > len(recordIDVectors) {
			return axerr.NewInvalidArg("numForeignTables", numForeignTables)
		}
		if len(predicate) < size {
			return axerr.NewInvalidArg("predicate", len(predicate))
		}
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		newSize, err = filter.BinaryFilter(d, stream, functor, in1, in2, indexVector,
			predicate, recordIDVectors[:numForeignTables], size, startRow)
		return err
	})
	if err != nil {
		newSize = 0
	}
	return newSize, err
}

// UnaryTransform applies functor per index-vector slot and writes through
// the bound output. The work stays on the stream; callers sync before
// reading outputs. Returns the slot count written.
func UnaryTransform(in *binder.InputVector, out *binder.OutputVector,
	indexVector []uint32, size int, startRow uint32, functor colexec.UnaryFunctor,
	stream *device.Stream, deviceID int) (written int, err error) {
	err = run(func() error {
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		written, err = measure.UnaryTransform(d, stream, functor, in, out, indexVector, size, startRow)
		return err
	})
	if err != nil {
		written = 0
	}
	return written, err
}

// BinaryTransform is UnaryTransform over a two-operand functor.
func BinaryTransform(in1, in2 *binder.InputVector, out *binder.OutputVector,
	indexVector []uint32, size int, startRow uint32, functor colexec.BinaryFunctor,
	stream *device.Stream, deviceID int) (written int, err error) {
	err = run(func() error {
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		written, err = measure.BinaryTransform(d, stream, functor, in1, in2, out, indexVector, size, startRow)
		return err
	})
	if err != nil {
		written = 0
	}
	return written, err
}

// EstimateDistinct returns a HyperLogLog estimate of the distinct values the
// input takes over the surviving rows. Host side; nothing is mutated.
func EstimateDistinct(in *binder.InputVector, indexVector []uint32, size int,
	startRow uint32) (ndv uint64, err error) {
	err = run(func() error {
		ndv, err = distinct.EstimateDistinct(in, indexVector, size, startRow)
		return err
	})
	if err != nil {
		ndv = 0
	}
	return ndv, err
}

// InitIndexVector fills indexVector[0:size] with start, start+1, ... as a
// device pass on the stream.
func InitIndexVector(indexVector []uint32, start uint32, size int,
	stream *device.Stream, deviceID int) error {
	return run(func() error {
		if len(indexVector) < size {
			return axerr.NewInvalidArg("indexVector", len(indexVector))
		}
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		stream.Submit(func() {
			d.ForEach(size, func(j int) {
				indexVector[j] = start + uint32(j)
			})
		})
		return nil
	})
}

// InitMeasureVector seeds the measure buffer with the aggregation tag's
// identity value. Host side; run it before queueing transforms that fold
// into the buffer.
func InitMeasureVector(out binder.MeasureOutputVector, size int) error {
	return run(func() error {
		return measure.InitMeasureVector(out, size)
	})
}
