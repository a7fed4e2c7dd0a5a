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
	"github.com/axiondb/axion/pkg/colexec/geointersect"
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/geo"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vm/device"
)

// GeoBatchIntersects filters indexVector to the rows whose point matches the
// requested polarity against the shape batch: inOrOut true keeps rows inside
// any shape, false keeps rows inside none. The first numForeignTables
// RecordID vectors compact in lockstep with the index vector. outputPredicate
// is caller-owned scratch of at least size*shapes.TotalWords words. Returns
// the new row count; on error the index vector and RecordID vectors are
// untouched. An absent points column short-circuits to zero rows.
func GeoBatchIntersects(shapes *geo.ShapeBatch, points *binder.InputVector,
	indexVector []uint32, size int, startRow uint32,
	recordIDVectors [][]types.RecordID, numForeignTables int,
	outputPredicate []uint32, inOrOut bool,
	stream *device.Stream, deviceID int) (newSize int, err error) {
	err = run(func() error {
		if numForeignTables < 0 || numForeignTables > colexec.MaxForeignTables {
			return axerr.NewUnsupportedArity("foreign tables", numForeignTables, colexec.MaxForeignTables)
		}
		if numForeignTables > len(recordIDVectors) {
			return axerr.NewInvalidArg("numForeignTables", numForeignTables)
		}
		if len(outputPredicate) < size*int(shapes.TotalWords) {
			return axerr.NewInvalidArg("outputPredicate", len(outputPredicate))
		}
		if points.Absent() {
			return nil
		}
		it, err := binder.BindGeoPoints(points, indexVector, startRow)
		if err != nil {
			return err
		}
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		ctx := geointersect.NewContext(d, stream, shapes, outputPredicate)
		newSize = ctx.RunFilter(it, indexVector, recordIDVectors[:numForeignTables], size, inOrOut)
		return nil
	})
	if err != nil {
		newSize = 0
	}
	return newSize, err
}

// GeoBatchIntersectsJoin projects containment into the geo dimension output:
// slot j gets 1 when its point lies in any shape, keeps its prior value
// otherwise, and is always marked non-null. The payload is always 0; the
// work stays on the stream and callers sync before reading dimOut.
func GeoBatchIntersectsJoin(shapes *geo.ShapeBatch, points *binder.InputVector,
	dimOut binder.DimensionOutputVector, indexVector []uint32, size int,
	startRow uint32, outputPredicate []uint32,
	stream *device.Stream, deviceID int) (int, error) {
	err := run(func() error {
		if dimOut.DataType != types.T_uint8 {
			return axerr.NewUnsupportedType(dimOut.DataType)
		}
		if len(dimOut.DimValues) < size || len(dimOut.DimNulls) < size {
			return axerr.NewInvalidArg("dimOut", size)
		}
		if len(outputPredicate) < size*int(shapes.TotalWords) {
			return axerr.NewInvalidArg("outputPredicate", len(outputPredicate))
		}
		if points.Absent() {
			return nil
		}
		it, err := binder.BindGeoPoints(points, indexVector, startRow)
		if err != nil {
			return err
		}
		d, err := deviceFor(deviceID)
		if err != nil {
			return err
		}
		ctx := geointersect.NewContext(d, stream, shapes, outputPredicate)
		ctx.RunJoin(it, dimOut.DimValues, dimOut.DimNulls, size)
		return nil
	})
	return 0, err
}
